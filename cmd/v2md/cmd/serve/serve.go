package serve

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"video2md/internal/app"
	"video2md/internal/config"
	"video2md/internal/logger"
	"video2md/web"
)

var (
	configPath string
	addr       string
)

func init() {
	Cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "config file path")
	Cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run history over HTTP",
	Long: `Serve the run history over HTTP

- GET /api/runs lists recorded runs (limit query parameter supported)
- GET /api/runs/:id returns one run with its transcript
- /healthz and /metrics for liveness and Prometheus scraping`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(configPath)
		if err != nil {
			return err
		}

		zl := logger.MustNew(settings.Logging.Level, settings.Logging.File, false)
		defer zl.Sync()
		log := zl.Sugar()

		dao, err := app.NewHistoryDAO(settings)
		if err != nil {
			return err
		}
		defer dao.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return web.NewServer(addr, dao, log).Run(ctx)
	},
}
