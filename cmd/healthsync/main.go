// HealthSync API
//
// Personal health tracking service: progress trends, health reports,
// symptom and meal analysis, alerts, an AI health assistant and an
// HTML dashboard.
//
//	@title			HealthSync API
//	@version		1.0
//	@description	Track weight, blood pressure and blood sugar, log meals and symptoms, and get analysis and advice.
//
//	@BasePath	/
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			progress
//	@tag.description	Measurements, trends and goals
//
//	@tag.name			dashboard
//	@tag.description	Server-rendered dashboard sessions and fragments
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "healthsync",
		Short: "HealthSync health tracking service",
		Long:  "HealthSync stores health measurements, meals and symptoms and serves analysis, alerts and an AI assistant over HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	root.AddCommand(newLangfuseCheckCommand())
	return root
}
