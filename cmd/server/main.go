package main

import (
	"fmt"
	"os"
)

// @title           Job Board API
// @version         1.0
// @description     Job postings with JWT authentication, role-gated administration and email notifications.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
