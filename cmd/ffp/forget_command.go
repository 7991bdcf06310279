package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newForgetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "forget DIRECTORY",
		Short: "Delete recorded runs for a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := storeKey(args[0])
			if err != nil {
				return err
			}
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			removed, err := s.Forget(cmd.Context(), key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d recorded run(s) for %s\n", removed, key)
			return nil
		},
	}
}
