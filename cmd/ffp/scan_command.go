package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"ffp/internal/fingerprint"
	"ffp/internal/logging"
)

type failureView struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type scanView struct {
	*fingerprint.DirectoryFingerprint
	DurationMS int64         `json:"duration_ms"`
	Failures   []failureView `json:"failures"`
	Recorded   bool          `json:"recorded"`
}

func newScanView(fp *fingerprint.DirectoryFingerprint, recorded bool) scanView {
	failures := make([]failureView, 0, len(fp.Failures))
	for _, f := range fp.Failures {
		failures = append(failures, failureView{Path: f.Path, Kind: string(f.Kind), Error: f.Err.Error()})
	}
	return scanView{
		DirectoryFingerprint: fp,
		DurationMS:           fp.Duration.Milliseconds(),
		Failures:             failures,
		Recorded:             recorded,
	}
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var flags scanFlags
	var jsonOutput bool
	var showFiles bool
	var record bool

	cmd := &cobra.Command{
		Use:   "scan DIRECTORY",
		Short: "Fingerprint a directory tree",
		Args:  cobra.ExactArgs(1),
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
			if !cmd.Flags().Changed("record") {
				record = cfg.Scan.Record
			}

			root := args[0]
			fp, err := computeFingerprint(cmd, logger, root, settings, showFiles)
			if err != nil {
				return err
			}

			recorded := false
			if record {
				if err := recordRun(ctx, cmd, root, fp, settings); err != nil {
					logging.WarnWithContext(logger, "recording run failed", "store_record_failed",
						logging.String(logging.FieldRunID, fp.RunID),
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "run `ffp doctor` to check the store"),
						logging.String(logging.FieldImpact, "fingerprint printed but not kept for `ffp check`"),
					)
				} else {
					recorded = true
				}
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if err := writeJSON(cmd, newScanView(fp, recorded)); err != nil {
					return err
				}
			} else {
				if showFiles {
					fmt.Fprintln(out, renderFileTable(fp.Files))
				}
				printFingerprint(out, fp)
			}

			if fp.Partial() {
				stderr := cmd.ErrOrStderr()
				fmt.Fprintln(stderr, failureReport(fp).render(isTerminal(stderr)))
				if settings.strict {
					return newExitError(exitPartial, fmt.Sprintf("%d entries could not be fingerprinted", len(fp.Failures)))
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&showFiles, "files", false, "List the per-file digests")
	cmd.Flags().BoolVar(&record, "record", false, "Record the run in the fingerprint store (defaults to scan.record)")
	return cmd
}

func recordRun(ctx *commandContext, cmd *cobra.Command, root string, fp *fingerprint.DirectoryFingerprint, settings scanSettings) error {
	key, err := storeKey(root)
	if err != nil {
		return err
	}
	s, err := ctx.openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Record(cmd.Context(), runFromFingerprint(key, fp, settings)); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func printFingerprint(out io.Writer, fp *fingerprint.DirectoryFingerprint) {
	fmt.Fprintf(out, "root:   %s\n", fp.Root)
	fmt.Fprintf(out, "files:  %d\n", fp.FileCount)
	fmt.Fprintf(out, "digest: %s\n", fp.Digest)
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}
