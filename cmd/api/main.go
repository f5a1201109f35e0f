package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pageza/recipebox/backend/internal/app"
	"github.com/pageza/recipebox/backend/internal/cli"
)

func main() {
	a, err := app.Bootstrap(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Log.Info("Starting server", "addr", a.Config.Addr(), "env", string(a.Config.Env))
	if err := cli.Serve(a); err != nil {
		a.Log.Error("Server error", "error", err)
		a.Close()
		os.Exit(1)
	}
}
