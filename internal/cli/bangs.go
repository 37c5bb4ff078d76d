package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bangs/internal/domain"
)

func bangsCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "bangs",
		Short: "Manage bang keywords",
	}

	c.AddCommand(bangsListCmd(flags), bangsAddCmd(flags), bangsRemoveCmd(flags), bangsCheckCmd(flags))
	return c
}

func bangsListCmd(flags *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured bangs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadReady(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return printBangs(cmd.OutOrStdout(), app.store.Config(), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func bangsAddCmd(flags *rootFlags) *cobra.Command {
	var urls []string
	var alias string
	var defaultURL string
	var raw bool

	cmd := &cobra.Command{
		Use:   "add <keyword>",
		Short: "Add a bang, or replace the one with the same keyword",
		Example: `  bangs bangs add rs --url 'https://docs.rs/releases/search?query=%s' --default-url https://docs.rs
  bangs bangs add gg --alias g`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if alias == "" && len(urls) == 0 && defaultURL == "" {
				return fmt.Errorf("one of --url, --alias or --default-url is required")
			}
			if alias != "" && len(urls) > 0 {
				return fmt.Errorf("--alias and --url are mutually exclusive")
			}

			app, err := loadReady(cmd.Context(), flags)
			if err != nil {
				return err
			}

			entry := domain.BangEntry{
				Keyword:     strings.TrimSpace(args[0]),
				Alias:       strings.TrimSpace(alias),
				DefaultURL:  strings.TrimSpace(defaultURL),
				URLs:        urls,
				EncodeQuery: !raw,
			}
			if _, err := app.saver().Update(cmd.Context(), func(c domain.Config) (domain.Config, error) {
				return c.WithBang(entry), nil
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s%s\n", app.store.Config().Options.Trigger, entry.Keyword)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&urls, "url", "u", nil, "URL template with %s for the query (repeatable; first is primary)")
	cmd.Flags().StringVarP(&alias, "alias", "a", "", "Reuse the URLs of another keyword")
	cmd.Flags().StringVar(&defaultURL, "default-url", "", "Destination when the bang is used without a query")
	cmd.Flags().BoolVar(&raw, "raw", false, "Substitute the query without percent-encoding")
	return cmd
}

func bangsRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <keyword>",
		Aliases: []string{"rm"},
		Short:   "Remove every bang with the given keyword",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadReady(cmd.Context(), flags)
			if err != nil {
				return err
			}

			keyword := strings.TrimSpace(args[0])
			if _, err := app.saver().Update(cmd.Context(), func(c domain.Config) (domain.Config, error) {
				return c.WithoutBang(keyword)
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", keyword)
			return nil
		},
	}
}

func printBangs(w io.Writer, cfg domain.Config, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg.Bangs)
	case "pretty", "":
		if len(cfg.Bangs) == 0 {
			fmt.Fprintln(w, "(no bangs configured)")
			return nil
		}
		for _, b := range cfg.Bangs {
			name := cfg.Options.Trigger + b.Keyword
			switch {
			case b.IsAlias():
				fmt.Fprintf(w, "- %s -> %s%s\n", name, cfg.Options.Trigger, b.Alias)
			case len(b.URLs) == 0:
				fmt.Fprintf(w, "- %s  %s\n", name, b.DefaultURL)
			default:
				fmt.Fprintf(w, "- %s  %s\n", name, strings.Join(b.URLs, " , "))
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
