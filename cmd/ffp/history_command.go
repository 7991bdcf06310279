package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffp/internal/store"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [DIRECTORY]",
		Short: "List recorded fingerprint runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var root string
			if len(args) == 1 {
				key, err := storeKey(args[0])
				if err != nil {
					return err
				}
				root = key
			}

			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.List(cmd.Context(), root, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				if runs == nil {
					runs = []store.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs")
				return nil
			}
			fmt.Fprintln(out, renderRunTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
