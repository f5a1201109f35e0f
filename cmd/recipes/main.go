package main

import (
	"os"

	"github.com/pageza/recipebox/backend/internal/app"
	"github.com/pageza/recipebox/backend/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(app.Bootstrap).Execute(); err != nil {
		os.Exit(1)
	}
}
