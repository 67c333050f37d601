package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/scenereplace/cmd/scenereplace/commands"
	"github.com/walteh/scenereplace/cmd/scenereplace/opts"
	"github.com/walteh/scenereplace/pkg/config"
	"github.com/walteh/scenereplace/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigFile = ".scenereplace.yaml"

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
}

// newRootCmd builds the command tree. The returned opts are populated once flags are parsed.
func newRootCmd() (*cobra.Command, *opts.RootOpts) {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "scenereplace",
		Short: "Find and replace text across the text layers of scenegraph documents",
		Long: `scenereplace rewrites the text of every text layer in a document, or in the
focused artboard only. Layers whose name mirrors their text are renamed along with it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupRoot(cmd, flags, rootOpts)
		},
	}

	// Add shared flags
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(
		commands.NewReplaceCmd(rootOpts),
		commands.NewBatchCmd(rootOpts),
		commands.NewInspectCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd, rootOpts
}

// setupRoot configures logging and loads the config for the command about to run
func setupRoot(cmd *cobra.Command, flags *rootFlags, rootOpts *opts.RootOpts) error {
	level := zerolog.InfoLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	// the console logger only records structured events in debug mode
	consoleLevel := zerolog.Disabled
	if flags.debug {
		consoleLevel = zerolog.DebugLevel
	}
	rootOpts.Console = log.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), consoleLevel)
	ctx = log.NewContext(ctx, rootOpts.Console)
	cmd.SetContext(ctx)

	cfg, err := config.LoadOptional(ctx, flags.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	rootOpts.Config = cfg

	return nil
}
