package serve

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"s2x/cmd/s2x/cmd/cli"
	"s2x/internal/api/server"
	v1routes "s2x/internal/api/v1/routes"
	"s2x/internal/api/v1/services"
)

var (
	addr        string
	environment string
)

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config serve_addr)")
	Cmd.Flags().StringVar(&environment, "env", "production", "gin mode: production or development")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a local HTTP API over the client",
	Long: `Serve a local HTTP API over the client

- POST /api/v1/transcriptions submits and polls in the background
- GET /api/v1/transcriptions/current, /api/v1/history and /api/v1/library read state
- GET /metrics exposes prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := cli.SignalContext(cmd.Context())
		defer stop()

		a, err := cli.Open(ctx, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.EnsureIdentity(ctx, false); err != nil {
			a.Logger.Warn("bootstrap failed; retrying on the next submission", zap.Error(err))
		}

		listen := addr
		if listen == "" {
			listen = a.Config.ServeAddr
		}
		cfg := server.DefaultConfig(listen)
		cfg.Environment = environment

		srv := server.NewServer(cfg, server.Dependencies{
			Services: &v1routes.ServiceContainer{
				TranscriptionService: services.NewTranscriptionService(a.Orchestrator, a),
				HistoryService:       services.NewHistoryService(a.Store),
				LibraryService:       services.NewLibraryService(a.Library),
			},
			Health:  services.NewHealthService(a.Remote),
			Metrics: a.Metrics.Handler(),
		}, a.Logger.Named("api"))

		return srv.Run(ctx)
	},
}
