package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pageza/recipebox/backend/internal/app"
	"github.com/pageza/recipebox/backend/internal/seed"
)

func main() {
	ctx := context.Background()

	a, err := app.Bootstrap(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	forms, err := seed.Samples()
	if err != nil {
		a.Log.Fatal("Failed to load sample recipes", "error", err)
	}

	n, err := seed.Seed(ctx, a.Store, forms, a.Log)
	if err != nil {
		a.Log.Fatal("Seeding stopped", "error", err, "created", n)
	}
	a.Log.Info("Successfully seeded recipes", "created", n, "samples", len(forms))
}
