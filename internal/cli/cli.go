// Package cli wires the cmsseed command tree and maps outcomes to exit codes.
package cli

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/octobees/cms-seeder/internal/config"
	"github.com/octobees/cms-seeder/internal/logging"
)

// Run executes the command named by args and returns the process exit code:
// 0 on completion (per-item failures included), 1 on any fatal condition.
func Run(ctx context.Context, args []string, out io.Writer) int {
	log := logging.New(config.LoadLogConfig(), out)

	root := NewRootCommand(log)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	if err := root.ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("aborted")
		return 1
	}
	return 0
}

// NewRootCommand builds the command tree. Every subcommand loads its own
// configuration so a missing token is reported before any request is made.
func NewRootCommand(log *logrus.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "cmsseed",
		Short:         "Precheck and seed a CMS through its REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPrecheckCommand(log),
		newUsersCommand(log),
		newEventsCommand(log),
		newPagesCommand(log),
		newAllCommand(log),
		newStubCommand(log),
	)
	return root
}

// loadConfig reads configuration and reapplies the log settings it carries.
func loadConfig(log *logrus.Logger) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}
	return cfg, nil
}
