package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// app carries the state shared by all commands of one run.
type app struct {
	outW io.Writer
	errW io.Writer

	flagCatalogs  []string
	flagLogLevel  string
	flagLogFormat string

	log *slog.Logger
}

func newRootCmd(outW, errW io.Writer) *cobra.Command {
	a := &app{outW: outW, errW: errW, log: slog.New(slog.DiscardHandler)}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Compile AMPscript block canvases",
		Long: appName + " compiles ordered lists of AMPscript blocks into a single %%[ ... ]%% fragment.\n\n" +
			"Canvases are YAML, JSON or HCL files. Custom block types are loaded from\n" +
			"~/.config/" + appName + "/catalog/*.yml, $" + envCatalog + " and --catalog.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := checkLogFlags(a.flagLogLevel, a.flagLogFormat); err != nil {
				return err
			}
			a.log = newLogger(a.flagLogLevel, a.flagLogFormat, a.errW)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetOut(outW)
	rootCmd.SetErr(errW)

	rootCmd.PersistentFlags().StringArrayVar(&a.flagCatalogs, "catalog", nil,
		"catalog YAML file or directory with custom block definitions (repeatable)")
	rootCmd.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "warn",
		"log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&a.flagLogFormat, "log-format", "text",
		"log format: text or json")

	rootCmd.AddCommand(
		a.newCompileCmd(),
		a.newValidateCmd(),
		a.newBlocksCmd(),
		a.newExampleCmd(),
	)
	return rootCmd
}

// load resolves catalog files and reads them together with canvasFiles.
func (a *app) load(canvasFiles []string) (*sources, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}
	catalogFiles, err := resolveCatalogFiles(configDir, a.flagCatalogs)
	if err != nil {
		return nil, err
	}
	a.log.Debug("resolved catalog", "config_dir", configDir, "files", len(catalogFiles))
	return loadSources(a.log, catalogFiles, canvasFiles)
}
