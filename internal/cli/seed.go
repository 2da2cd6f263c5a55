package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/octobees/cms-seeder/internal/config"
	"github.com/octobees/cms-seeder/internal/content"
	"github.com/octobees/cms-seeder/internal/precheck"
	"github.com/octobees/cms-seeder/internal/seed"
	"github.com/octobees/cms-seeder/internal/strapi"
)

func newPrecheckCommand(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "precheck",
		Short: "Check connectivity, token permissions and required roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(log)
			if err != nil {
				return err
			}
			return runPrecheck(cmd.Context(), cfg, strapi.NewFromConfig(cfg), log)
		},
	}
}

func newUsersCommand(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Register the demo accounts and assign their roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(log)
			if err != nil {
				return err
			}
			return runUsers(cmd.Context(), strapi.NewFromConfig(cfg), log)
		},
	}
}

func newEventsCommand(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Create a random batch of events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(log)
			if err != nil {
				return err
			}
			runEvents(cmd.Context(), cfg, strapi.NewFromConfig(cfg), log)
			return nil
		},
	}
}

func newPagesCommand(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "Create a random batch of pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(log)
			if err != nil {
				return err
			}
			runPages(cmd.Context(), cfg, strapi.NewFromConfig(cfg), log)
			return nil
		},
	}
}

func newAllCommand(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run precheck, users, events and pages in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(log)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			client := strapi.NewFromConfig(cfg)

			if err := runPrecheck(ctx, cfg, client, log); err != nil {
				return err
			}
			if err := runUsers(ctx, client, log); err != nil {
				return err
			}
			runEvents(ctx, cfg, client, log)
			runPages(ctx, cfg, client, log)
			return nil
		},
	}
}

func runPrecheck(ctx context.Context, cfg *config.Config, client *strapi.Client, log logrus.FieldLogger) error {
	_, err := precheck.NewRunner(client, log, cfg.BaseURL, config.RequiredRoles).Run(ctx)
	return err
}

func runUsers(ctx context.Context, client *strapi.Client, log logrus.FieldLogger) error {
	log.WithField("url", client.BaseURL()).Info("connecting to cms")
	_, err := seed.NewUserSeeder(client, log, seed.DemoUsers, config.RequiredRoles).Run(ctx)
	return err
}

func runEvents(ctx context.Context, cfg *config.Config, client *strapi.Client, log logrus.FieldLogger) {
	seed.NewEventSeeder(client, content.NewGenerator(0), log, cfg.Concurrency).Run(ctx)
}

func runPages(ctx context.Context, cfg *config.Config, client *strapi.Client, log logrus.FieldLogger) {
	seed.NewPageSeeder(client, content.NewGenerator(0), log, cfg.Concurrency).Run(ctx)
}
