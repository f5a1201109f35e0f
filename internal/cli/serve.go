package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/backend/internal/app"
	"github.com/pageza/recipebox/backend/internal/server"
)

func serveCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, Serve)
		},
	}
}

// Serve runs the HTTP API for a until SIGINT or SIGTERM, then shuts it
// down gracefully.
func Serve(a *app.App) error {
	srv := server.New(a.Config.Addr(), a.Router(), a.Log)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		a.Log.Info("Received signal, shutting down", "signal", sig.String())
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		return err
	}
	a.Log.Info("Server stopped")
	return nil
}
