package main

import (
	"fmt"
	"os"

	"event_rsvp/internal/config"
	"event_rsvp/internal/repository"
	"event_rsvp/internal/service"
	"event_rsvp/internal/utils"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			return config.AutoMigrate(cmd.Context(), pool, a.log)
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import guests from a CSV file of name and phone columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			rows, err := utils.ParseGuestCSV(f)
			if err != nil {
				return err
			}

			a, err := loadApp()
			if err != nil {
				return err
			}
			pool, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			guests := service.NewGuestService(repository.NewGuestRepository(pool), a.log)
			result, err := guests.ImportGuests(cmd.Context(), rows)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d guests\n", result.Imported)
			for _, r := range result.Rejected {
				fmt.Fprintf(out, "rejected row %d (%q, %q): %s\n", r.Row, r.Name, r.Phone, r.Reason)
			}
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash usable as ADMIN_PASSWORD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
