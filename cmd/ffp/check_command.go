package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ffp/internal/fingerprint"
	"ffp/internal/logging"
	"ffp/internal/store"
)

type checkView struct {
	Match    bool       `json:"match"`
	Root     string     `json:"root"`
	Current  scanView   `json:"current"`
	Recorded *store.Run `json:"recorded"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var flags scanFlags
	var jsonOutput bool
	var update bool

	cmd := &cobra.Command{
		Use:   "check DIRECTORY",
		Short: "Compare a directory with its last recorded fingerprint",
		Long: "Fingerprint the directory with the effective settings and compare the result with the\n" +
			"most recent run recorded for the same root and settings. Exits with status 3 on mismatch.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}
			settings, err := resolveScanSettings(cmd, cfg, &flags, logger)
			if err != nil {
				return err
			}

			root := args[0]
			key, err := storeKey(root)
			if err != nil {
				return err
			}
			s, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			previous, err := s.Latest(cmd.Context(), key, settings.params())
			if err != nil {
				return err
			}
			if previous == nil {
				return fmt.Errorf("no fingerprint recorded for %s with these settings; run `ffp scan --record %s` first", key, root)
			}

			fp, err := computeFingerprint(cmd, logger, root, settings, false)
			if err != nil {
				return err
			}
			match, err := matchesRecorded(fp, previous)
			if err != nil {
				logging.ErrorWithContext(logger, "recorded run unreadable", "store_corrupt_run",
					logging.String(logging.FieldRoot, key),
					logging.String("recorded_run", previous.ID),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, fmt.Sprintf("run `ffp forget %s` and record a new baseline", root)),
				)
				return err
			}
			if !match {
				logging.WarnWithContext(logger, "fingerprint changed", "fingerprint_mismatch",
					logging.String(logging.FieldRoot, key),
					logging.String("recorded_run", previous.ID),
					logging.String("recorded_digest", previous.Digest),
					logging.String("digest", fp.Digest.String()),
					logging.String(logging.FieldErrorHint, "inspect the tree for added, removed, or modified files"),
					logging.String(logging.FieldImpact, "directory contents differ from the recorded run"),
				)
			}

			if update {
				if err := s.Record(cmd.Context(), runFromFingerprint(key, fp, settings)); err != nil {
					return fmt.Errorf("record run: %w", err)
				}
			}

			if jsonOutput {
				view := checkView{Match: match, Root: key, Current: newScanView(fp, update), Recorded: previous}
				if err := writeJSON(cmd, view); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, checkReport(fp, previous, match).render(isTerminal(out)))
			}

			if !match {
				return newExitError(exitMismatch, fmt.Sprintf("fingerprint of %s changed", key))
			}
			if fp.Partial() && settings.strict {
				return newExitError(exitPartial, fmt.Sprintf("%d entries could not be fingerprinted", len(fp.Failures)))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&update, "update", false, "Record the new fingerprint after comparing")
	return cmd
}

// matchesRecorded reports whether fp has the same digest and file count as the
// recorded run. A stored digest that does not decode is an error, not a mismatch.
func matchesRecorded(fp *fingerprint.DirectoryFingerprint, previous *store.Run) (bool, error) {
	recorded, err := fingerprint.ParseDigest(previous.Digest)
	if err != nil {
		return false, fmt.Errorf("recorded run %s: %w", previous.ID, err)
	}
	return fp.Digest == recorded && fp.FileCount == previous.FileCount, nil
}
