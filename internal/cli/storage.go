package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/bangs/internal/domain"
	"github.com/aalvaropc/bangs/internal/usecase"
)

func storageCmd(flags *rootFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "storage",
		Short: "Inspect and switch storage backends",
	}

	c.AddCommand(storageStatusCmd(flags), storageUseCmd(flags), storageClearCmd(flags))
	return c
}

func storageStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active backend and its usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags.dataDir)
			if err != nil {
				return err
			}

			st, err := usecase.NewManageStorage(app.manager, app.selector, usecase.WithLogger(app.log)).Status(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Data dir: %s\n", app.dir)
			fmt.Fprintf(w, "Backend:  %s\n", st.Active)
			pct := 0.0
			if st.Quota > 0 {
				pct = float64(st.Used) * 100 / float64(st.Quota)
			}
			fmt.Fprintf(w, "Usage:    %d / %d bytes (%.1f%%)\n", st.Used, st.Quota, pct)
			return nil
		},
	}
}

func storageUseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "use <sync|local>",
		Short:     "Switch the active backend (data is not copied)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.BackendSync), string(domain.BackendLocal)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseBackend(args[0])
			if err != nil {
				return err
			}

			app, err := loadApp(flags.dataDir)
			if err != nil {
				return err
			}
			if err := usecase.NewManageStorage(app.manager, app.selector, usecase.WithLogger(app.log)).Switch(kind); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Active backend: %s\n", kind)
			return nil
		},
	}
}

func storageClearCmd(flags *rootFlags) *cobra.Command {
	var unused bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear data held by backends other than the active one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !unused {
				return fmt.Errorf("refusing to clear without --unused")
			}

			app, err := loadApp(flags.dataDir)
			if err != nil {
				return err
			}

			cleared, err := usecase.NewManageStorage(app.manager, app.selector, usecase.WithLogger(app.log)).ClearUnused(cmd.Context())
			if err != nil {
				return err
			}

			for _, b := range cleared {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", b)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unused, "unused", false, "Clear every backend except the active one")
	return cmd
}
