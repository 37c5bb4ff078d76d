package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/infra/httpclient"
	"github.com/aalvaropc/bangs/internal/usecase"
)

func bangsCheckCmd(flags *rootFlags) *cobra.Command {
	var query string
	var timeout time.Duration
	var workers int
	var format string

	cmd := &cobra.Command{
		Use:   "check [keyword...]",
		Short: "Request every destination of the given bangs (all by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadReady(cmd.Context(), flags)
			if err != nil {
				return err
			}

			prober := httpclient.NewProber(httpclient.WithTimeout(timeout))
			uc := usecase.NewCheckBangs(app.store, prober, workers, usecase.WithLogger(app.log))

			results, err := uc.Execute(cmd.Context(), args, query)
			if perr := printProbes(cmd.OutOrStdout(), results, format); perr != nil {
				return perr
			}
			if err != nil {
				return err
			}
			return usecase.Failed(results)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", usecase.DefaultCheckQuery, "Query substituted into templates")
	cmd.Flags().DurationVar(&timeout, "timeout", httpclient.DefaultConfig().Timeout, "Timeout per destination")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent requests")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return cmd
}

func printProbes(w io.Writer, results []domain.ProbeResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "pretty", "":
		for _, r := range results {
			status := "OK"
			if !r.OK() {
				status = "FAIL"
			}
			fmt.Fprintf(w, "- [%s] %s %s", status, r.Keyword, r.URL)
			switch {
			case r.Error != "":
				fmt.Fprintf(w, "\n  error: %s\n", r.Error)
			default:
				fmt.Fprintf(w, " (%d, %dms)\n", r.Status, r.LatencyMS)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
