package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/usecase"
)

func resolveCmd(flags *rootFlags) *cobra.Command {
	var method string
	var form []string
	var format string

	c := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Resolve a search URL the way an intercepted navigation would be",
		Example: `  bangs resolve 'https://duckduckgo.com/?q=!gh+bbolt'
  bangs resolve --method POST --form 'query=!w gopher' https://www.startpage.com/sp/search`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildNavigation(args[0], method, form)
			if err != nil {
				return err
			}

			app, err := loadReady(cmd.Context(), flags)
			if err != nil {
				return err
			}

			r, ok := usecase.NewResolveRequest(app.store, usecase.WithLogger(app.log)).Execute(req)
			return printRedirect(cmd.OutOrStdout(), r, ok, format)
		},
	}

	c.Flags().StringVarP(&method, "method", "X", "GET", "Request method: GET|POST")
	c.Flags().StringArrayVarP(&form, "form", "F", nil, "Form field for POST submissions (name=value, repeatable)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func buildNavigation(rawURL, method string, form []string) (domain.NavigationRequest, error) {
	req := domain.NavigationRequest{URL: rawURL}

	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "", "GET":
		req.Method = domain.MethodGet
	case "POST":
		req.Method = domain.MethodPost
	default:
		return req, fmt.Errorf("unsupported method %q (expected GET|POST)", method)
	}

	if len(form) > 0 {
		if req.Method != domain.MethodPost {
			return req, fmt.Errorf("--form requires --method POST")
		}
		req.FormData = domain.FormData{}
		for _, kv := range form {
			name, value, ok := strings.Cut(kv, "=")
			if !ok || name == "" {
				return req, fmt.Errorf("invalid form field %q (expected name=value)", kv)
			}
			req.FormData[name] = append(req.FormData[name], value)
		}
	}
	return req, nil
}

func printRedirect(w io.Writer, r domain.Redirect, ok bool, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{"matched": ok}
		if ok {
			payload["redirect"] = r
		}
		return enc.Encode(payload)
	case "pretty", "":
		if !ok {
			fmt.Fprintln(w, "(no redirect)")
			return nil
		}
		fmt.Fprintf(w, "primary:   %s\n", r.PrimaryURL)
		for _, u := range r.SecondaryURLs {
			fmt.Fprintf(w, "secondary: %s\n", u)
		}
		if r.CancelOriginal {
			fmt.Fprintln(w, "cancel original request: yes")
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
