// Package cli provides the tracker command-line interface.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/design-tracker/internal/client"
	"github.com/yukikurage/design-tracker/internal/logging"
)

// DefaultAPI is used when neither --api nor TRACKER_API is set.
const DefaultAPI = "http://localhost:8080/api"

// launchTUIFunc is a function variable so tests can replace the terminal UI.
var launchTUIFunc = launchTUI

type globalOptions struct {
	API      string
	LogLevel string
	LogFile  string
}

func (o *globalOptions) client() *client.Client {
	return client.New(o.API)
}

func (o *globalOptions) logger(quiet bool) *logrus.Logger {
	return logging.New(logging.Options{
		Service: "tracker",
		Level:   o.LogLevel,
		File:    o.LogFile,
		Quiet:   quiet,
	})
}

// NewRootCommand creates the root command for tracker.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "tracker",
		Short: "Design task tracker",
		Long: `tracker talks to the design tracker API.

Tasks can be listed, filtered and edited from the command line,
or interactively with 'tracker ui'.`,
		Version: version,
		// Errors are printed once by main
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	api := os.Getenv("TRACKER_API")
	if api == "" {
		api = DefaultAPI
	}
	root.PersistentFlags().StringVar(&opts.API, "api", api, "API base URL (env TRACKER_API)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "Log level")
	root.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "Also write logs to this rotated file")

	root.AddCommand(
		newTasksCommand(opts),
		newMembersCommand(opts),
		newUICommand(opts),
	)
	return root
}
