package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bangs/internal/infra/configquery"
	"github.com/aalvaropc/bangs/internal/infra/exportfile"
	"github.com/aalvaropc/bangs/internal/usecase"
)

func configCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Inspect, export and import the bang configuration",
	}

	c.AddCommand(
		configShowCmd(flags),
		configExportCmd(flags),
		configImportCmd(flags),
		configQueryCmd(flags),
	)
	return c
}

func configShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadReady(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return writeIndented(cmd.OutOrStdout(), app.store.Config())
		},
	}
}

func configExportCmd(flags *rootFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write bangs to an export file (stdout by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadReady(cmd.Context(), flags)
			if err != nil {
				return err
			}

			uc := usecase.NewExportBangs(app.store, exportfile.Codec{}, usecase.WithLogger(app.log))
			if out == "" || out == "-" {
				_, err := uc.Execute(cmd.OutOrStdout())
				return err
			}

			n, err := uc.ExecuteFile(out)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d bang(s) to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func configImportCmd(flags *rootFlags) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import bangs from an export file ('-' reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadReady(cmd.Context(), flags)
			if err != nil {
				return err
			}

			mode := usecase.ImportMerge
			if replace {
				mode = usecase.ImportReplace
			}

			uc := usecase.NewImportBangs(app.saver(), exportfile.Codec{}, usecase.WithLogger(app.log))
			var n int
			if args[0] == "-" {
				n, err = uc.Execute(cmd.Context(), cmd.InOrStdin(), mode)
			} else {
				n, err = uc.ExecuteFile(cmd.Context(), args[0], mode)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bang(s)\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Drop existing bangs instead of merging by keyword")
	return cmd
}

func configQueryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "query <jsonpath>",
		Short:   "Evaluate a JSONPath expression against the active configuration",
		Example: `  bangs config query '$.bangs[?(@.keyword=="g")].urls'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadReady(cmd.Context(), flags)
			if err != nil {
				return err
			}

			v, err := configquery.Query(app.store.Config(), args[0])
			if err != nil {
				return err
			}
			return writeIndented(cmd.OutOrStdout(), v)
		},
	}
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
