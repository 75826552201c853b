package cli

import (
	"fmt"

	"github.com/sadopc/streakr/internal/export"
	"github.com/sadopc/streakr/internal/store"
	"github.com/spf13/cobra"
)

func newExportCommand(a *app) *cobra.Command {
	var what, format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write daily stats or journal entries to CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := export.ParseKind(what)
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = export.FileName(kind, f, a.now())
			}

			return a.withTracker(func(tr *store.Tracker) error {
				var count int
				if kind == export.KindJournal {
					entries := tr.Journal.Entries()
					count = len(entries)
					err = export.Journal(entries, f, path)
				} else {
					records := tr.Stats.All()
					count = len(records)
					err = export.Stats(records, f, path)
				}
				if err != nil {
					return err
				}
				a.log.Infow("exported", "kind", kind, "format", f, "path", path, "count", count)
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d %s records to %s\n", count, kind, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&what, "what", string(export.KindStats), "what to export: stats or journal")
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "output format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default streakr-<what>-<date>.<format>)")
	return cmd
}
