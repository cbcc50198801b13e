package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/99minutos/job-board/internal/core/ports"
	"github.com/99minutos/job-board/internal/core/service"
	mongodb "github.com/99minutos/job-board/internal/infrastructure/db/mongo"
	"github.com/99minutos/job-board/pkg/logger"
)

func newCreateAdminCmd() *cobra.Command {
	var input ports.RegisterInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long: `Creates an account with the admin role. Public registration only ever
assigns the user role, so this is the way to bootstrap administrators:

	jobboard create-admin --name "Ada" --email ada@example.com --password s3cret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}

			client, db, err := mongodb.Connect(ctx, mongodb.Config{
				URI:      cfg.Mongo.URI,
				Database: cfg.Mongo.Database,
				Timeout:  cfg.Mongo.ConnectTimeout,
			})
			if err != nil {
				return err
			}
			defer client.Disconnect(ctx)

			repo := mongodb.NewAuthRepository(db)
			if err := mongodb.EnsureIndexes(ctx, repo); err != nil {
				return err
			}

			svc := service.NewAuthService(repo, service.AuthConfig{
				JWTSecret:  cfg.Auth.JWTSecret,
				TokenTTL:   cfg.Auth.TokenTTL,
				BcryptCost: cfg.Auth.BcryptCost,
			}, logger.Component("auth"))

			user, err := svc.CreateAdmin(ctx, input)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin account created")
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "display name")
	cmd.Flags().StringVar(&input.Email, "email", "", "login email")
	cmd.Flags().StringVar(&input.Password, "password", "", "login password")
	cmd.Flags().StringVar(&input.Picture, "picture", "", "avatar URL")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
