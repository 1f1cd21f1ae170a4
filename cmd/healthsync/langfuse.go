package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/config"
	"github.com/healthsync/healthsync/internal/langfuse"
)

func newLangfuseCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "langfuse-check",
		Short: "Verify Langfuse connectivity by creating a test trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			lfCfg := langfuse.Config{
				BaseURL:     cfg.LangfuseBaseURL,
				PublicKey:   cfg.LangfusePublicKey,
				SecretKey:   cfg.LangfuseSecretKey,
				Environment: cfg.LangfuseEnv,
			}
			return checkLangfuse(cmd.Context(), cmd.OutOrStdout(), lfCfg, langfuse.NewClient(lfCfg, zap.NewNop()))
		},
	}
}

func checkLangfuse(ctx context.Context, out io.Writer, cfg langfuse.Config, client langfuse.Client) error {
	fmt.Fprintln(out, "=== Langfuse Connection Test ===")
	fmt.Fprintf(out, "Base URL:    %s\n", cfg.BaseURL)
	fmt.Fprintf(out, "Public Key:  %s\n", maskKey(cfg.PublicKey))
	fmt.Fprintf(out, "Secret Key:  %s\n", maskKey(cfg.SecretKey))
	fmt.Fprintf(out, "Environment: %s\n\n", cfg.Environment)

	if !client.IsEnabled() {
		return errors.New("langfuse client is disabled, check LANGFUSE_* variables")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
		UserID: "healthsync-check",
		Name:   "connectivity-check",
		Input: map[string]any{
			"message": "Hello from healthsync langfuse-check",
			"time":    time.Now().Format(time.RFC3339),
		},
		Output: map[string]any{"status": "success"},
		Tags:   []string{"test", "manual"},
	})
	if err != nil {
		return fmt.Errorf("create trace: %w", err)
	}

	fmt.Fprintln(out, "Test trace created")
	fmt.Fprintf(out, "  Trace ID: %s\n", traceID)
	fmt.Fprintf(out, "  View at:  %s/trace/%s\n", cfg.BaseURL, traceID)
	return nil
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
