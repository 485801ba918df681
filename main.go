package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	config.LoadDotEnv()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog front end (default)",
		Run: func(cmd *cobra.Command, args []string) {
			entrypoint.RunServe(config.NewConfig(), Version)
		},
	}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Library catalog management UI",
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Run:           serve.Run,
	}

	api := &cobra.Command{
		Use:   "api",
		Short: "Start the development catalog API",
		Run: func(cmd *cobra.Command, args []string) {
			entrypoint.RunAPI(config.NewConfig())
		},
	}

	var reset bool
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load sample data into the catalog API database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.RunSeed(config.NewConfig(), reset)
		},
	}
	seed.Flags().BoolVar(&reset, "reset", false, "wipe existing data before seeding")

	root.AddCommand(serve, api, seed)
	return root
}
