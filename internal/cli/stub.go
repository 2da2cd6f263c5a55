package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/octobees/cms-seeder/internal/router"
)

const shutdownTimeout = 10 * time.Second

func newStubCommand(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "stub",
		Short: "Serve an in-memory CMS for rehearsing seed runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(log)
			if err != nil {
				return err
			}

			e := router.New(cfg, log)

			serverErr := make(chan error, 1)
			go func() {
				serverErr <- e.Start(":" + cfg.Stub.Port)
			}()
			log.WithFields(logrus.Fields{
				"port":  cfg.Stub.Port,
				"roles": cfg.Stub.Roles,
			}).Info("cms stub listening")

			select {
			case <-cmd.Context().Done():
				log.Info("shutting down cms stub")
			case err := <-serverErr:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := e.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("graceful shutdown failed")
			}
			return nil
		},
	}
}
