package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version is the carousel CLI version.
const Version = "0.1.0"

type rootOptions struct {
	configPath string
	debug      bool
	logFile    string
}

// NewRootCommand builds the carousel CLI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "carousel",
		Short: "Looping image carousel",
		Long: `carousel - a looping, auto-advancing image carousel.

Configuration:
  Settings are read from carousel.toml (or a .yaml file given with --config).
  Run 'carousel init' to write a default configuration.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default carousel.toml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "append logs to this file")

	root.AddCommand(
		newRunCommand(opts),
		newTraceCommand(opts),
		newInitCommand(opts),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "carousel %s\n", Version)
		},
	}
}

// logger builds the CLI logger. Logs go to --log-file when set, otherwise
// to fallback.
func (o *rootOptions) logger(fallback io.Writer) (*log.Logger, func(), error) {
	w := fallback
	closeFn := func() {}
	if o.logFile != "" {
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "carousel",
		ReportTimestamp: true,
		Level:           log.WarnLevel,
	})
	if o.debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
