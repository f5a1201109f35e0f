package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/backend/internal/app"
)

// Opener builds the application the commands run against. Commands close
// the returned App when they finish.
type Opener func(ctx context.Context) (*app.App, error)

var (
	idColor      = color.New(color.FgCyan)
	titleColor   = color.New(color.Bold)
	successColor = color.New(color.FgGreen)
	mutedColor   = color.New(color.FgHiBlack)
)

// NewRootCmd returns the recipes command tree.
func NewRootCmd(open Opener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recipes",
		Short: "Browse and manage the recipe box",
		Long: `recipes reads and writes the same recipe collection as the API server.
The storage backend is chosen with STORAGE_BACKEND (see .env).`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(listCmd(open))
	rootCmd.AddCommand(showCmd(open))
	rootCmd.AddCommand(addCmd(open))
	rootCmd.AddCommand(deleteCmd(open))
	rootCmd.AddCommand(serveCmd(open))

	return rootCmd
}

// withApp opens the application, runs fn and closes it again.
func withApp(cmd *cobra.Command, open Opener, fn func(a *app.App) error) error {
	a, err := open(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
