package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/romantomjak/wolctl/cmd/hosts"
	"github.com/romantomjak/wolctl/cmd/validate"
	"github.com/romantomjak/wolctl/cmd/wake"
	"github.com/romantomjak/wolctl/config"
)

var (
	flagConfig  string
	flagVerbose bool
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wolctl",
		Short: "wolctl wakes machines on the local network",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(flagVerbose)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			cmd.SetContext(logr.NewContext(cmd.Context(), log))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultFile, "configuration file")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every packet sent")

	cmd.AddCommand(wake.Command())
	cmd.AddCommand(validate.Command())
	cmd.AddCommand(hosts.Command())

	return cmd
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := Command().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

// newLogger logs errors to stderr, and debug output as well when verbose.
func newLogger(verbose bool) (logr.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.DisableStacktrace = true
	zc.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	zl, err := zc.Build()
	if err != nil {
		return logr.Discard(), err
	}

	return zapr.NewLogger(zl), nil
}
