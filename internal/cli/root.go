package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bangs/internal/buildinfo"
	"github.com/aalvaropc/bangs/internal/infra/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir string
	debug   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "bangs",
		Short:        "bangs: search shortcuts that redirect queries like \"!g rust\"",
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			dir, err := resolveDataDir(flags.dataDir)
			if err != nil {
				return err
			}
			flags.dataDir = dir

			// Logging is best effort; commands still run without a log file.
			cleanup, _ = logger.Setup(logger.Config{Dir: dir, Debug: flags.debug || debugFromSettings(dir)})
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if cleanup != nil {
				return cleanup()
			}
			return nil
		},
	}
	cmd.SetVersionTemplate(buildinfo.String() + "\n")

	cmd.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "Data directory (default $BANGS_HOME or <user config dir>/bangs)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose logging to <data-dir>/logs/bangs.log")

	cmd.AddCommand(
		resolveCmd(flags),
		bangsCmd(flags),
		configCmd(flags),
		storageCmd(flags),
		serveCmd(flags),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
