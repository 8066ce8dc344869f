package cmd

import (
	"fmt"

	"github.com/msalah0e/fastkey/internal/activity"
	"github.com/msalah0e/fastkey/internal/ui"
	"github.com/spf13/cobra"
)

func logCmd() *cobra.Command {
	var (
		count    int
		search   string
		clearLog bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent generate, token and vault activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if clearLog {
				if err := activity.Clear(); err != nil {
					return err
				}
				fmt.Fprintf(w, "  %s activity log cleared\n", ui.StatusIcon(true))
				return nil
			}

			var entries []activity.Entry
			var err error
			if search != "" {
				entries, err = activity.Search(search, count)
			} else {
				entries, err = activity.Read(count)
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(w, "  No activity recorded.")
				return nil
			}

			ui.Banner(w, "activity")
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				result := ui.StatusIcon(e.OK)
				if e.Error != "" {
					result += " " + e.Error
				}
				rows = append(rows, []string{
					e.Timestamp.Local().Format("2006-01-02 15:04:05"),
					e.Action,
					e.Profile,
					e.KeyID,
					e.Output,
					result,
				})
			}
			ui.Table(w, []string{"TIME", "ACTION", "PROFILE", "KEY ID", "OUTPUT", "RESULT"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "Number of entries to show (0 for all)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show entries matching this text")
	cmd.Flags().BoolVar(&clearLog, "clear", false, "Delete the activity log")
	return cmd
}
