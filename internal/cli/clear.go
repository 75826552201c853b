package cli

import (
	"errors"
	"fmt"

	"github.com/sadopc/streakr/internal/store"
	"github.com/spf13/cobra"
)

func newClearCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks, journal entries, stats and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all data without --yes")
			}
			return a.withStore(func(s *store.Store) error {
				if err := s.Clear(); err != nil {
					return err
				}
				a.log.Warnw("all data cleared", "db", a.cfg.DBPath)
				fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting everything")
	return cmd
}
