package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/socialjobs/workmatch/internal/app"
	"github.com/socialjobs/workmatch/internal/infrastructure/config"
	"github.com/socialjobs/workmatch/internal/infrastructure/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "workmatch",
	Short:        "WorkMatch job board backend",
	SilenceUsage: true,
}

// Execute runs the CLI with a context cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// bootstrap loads config and builds the app. console switches the logger to
// the human readable writer used by one-shot commands.
func bootstrap(ctx context.Context, console bool) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.LogLevel)
	if console {
		log = logger.NewConsole(cfg.LogLevel)
	}
	return app.New(ctx, cfg, log)
}
