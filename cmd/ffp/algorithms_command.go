package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffp/internal/fingerprint"
)

func newAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "algorithms",
		Short:       "List supported digest algorithms",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range fingerprint.Algorithms() {
				if name == fingerprint.DefaultAlgorithm {
					fmt.Fprintf(out, "%s (default)\n", name)
					continue
				}
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
