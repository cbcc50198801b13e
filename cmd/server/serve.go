package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/job-board/internal/api"
	"github.com/99minutos/job-board/internal/core/service"
	"github.com/99minutos/job-board/internal/infrastructure/config"
	mongodb "github.com/99minutos/job-board/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/job-board/internal/infrastructure/db/redis"
	"github.com/99minutos/job-board/internal/infrastructure/http"
	"github.com/99minutos/job-board/internal/infrastructure/http/handlers"
	"github.com/99minutos/job-board/internal/infrastructure/mail"
	"github.com/99minutos/job-board/internal/infrastructure/queue"
	"github.com/99minutos/job-board/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the notification workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	authRepo := mongodb.NewAuthRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	if err := mongodb.EnsureIndexes(ctx, authRepo, jobRepo); err != nil {
		return err
	}

	readiness := map[string]handlers.CheckFunc{"mongodb": handlers.MongoCheck(db)}

	// Redis only backs notification dedup, so the API still starts without it.
	var dedup service.DedupChecker
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, notification dedup disabled")
	} else {
		defer rdb.Close()
		dedup = redisdb.NewDedupChecker(rdb)
		readiness["redis"] = handlers.RedisCheck(rdb)
	}

	renderer, err := mail.NewTemplateRenderer()
	if err != nil {
		return err
	}
	mailer, err := mail.NewSender(mail.Config{
		Enabled:       cfg.Mail.Enabled,
		MailgunDomain: cfg.Mail.MailgunDomain,
		MailgunAPIKey: cfg.Mail.MailgunAPIKey,
		FromAddress:   cfg.Mail.FromAddress,
		FromName:      cfg.Mail.FromName,
	}, log)
	if err != nil {
		return err
	}

	notifications := service.NewNotificationService(authRepo, renderer, mailer, dedup, service.NotificationConfig{
		RecipientRole: cfg.Mail.RecipientRole,
	}, logger.Component("notifications"))

	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, notifications, logger.Component("dispatcher"))
	dispatcher.Start(ctx)
	defer dispatcher.Wait()

	e := api.NewRouter(api.Dependencies{
		AuthService: service.NewAuthService(authRepo, service.AuthConfig{
			JWTSecret:  cfg.Auth.JWTSecret,
			TokenTTL:   cfg.Auth.TokenTTL,
			BcryptCost: cfg.Auth.BcryptCost,
		}, logger.Component("auth")),
		JobService: service.NewJobService(jobRepo, dispatcher, logger.Component("jobs")),
		Readiness:  readiness,
		Logger:     log,
	})

	log.Info().Str("env", cfg.Env).Bool("mail_enabled", cfg.Mail.Enabled).Msg("starting job board")
	return http.NewServer(e, cfg.Port, log).Run(ctx)
}
