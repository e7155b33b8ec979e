package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"options-payoff/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the payoff calculation HTTP API.

Endpoints:
  GET    /api/health
  POST   /api/payoff/calculate
  POST   /api/payoff/exit
  POST   /api/strategies
  GET    /api/strategies
  GET    /api/strategies/{id}
  PUT    /api/strategies/{id}
  DELETE /api/strategies/{id}`,
		Example: `  payoff serve
  payoff serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := requireStore(app); err != nil {
				return err
			}

			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				app.Config.Server.Addr = addr
			}

			srv := server.New(app.Config, app.Store, app.Logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			output.Info("Serving on %s (Ctrl+C to stop)", app.Config.Server.Addr)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return err
				}
			case sig := <-sigCh:
				app.Logger.Info().Str("signal", sig.String()).Msg("Shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (default from config)")
	return cmd
}
