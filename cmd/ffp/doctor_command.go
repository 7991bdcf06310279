package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffp/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor [DIRECTORY...]",
		Short: "Check that the store, log directory, and scan roots are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, args...)

			if jsonOutput {
				if results == nil {
					results = []preflight.Result{}
				}
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				if len(results) == 0 {
					fmt.Fprintln(out, "Nothing to check")
				} else {
					fmt.Fprintln(out, doctorReport(results).render(isTerminal(out)))
				}
			}

			if !preflight.AllPassed(results) {
				return &exitError{code: exitFatal, msg: "one or more checks failed", silent: true}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
