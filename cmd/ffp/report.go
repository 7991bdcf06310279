package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"ffp/internal/fingerprint"
	"ffp/internal/preflight"
	"ffp/internal/store"
)

// verdict tags one line of a report. Notes carry no tag.
type verdict int

const (
	verdictNote verdict = iota
	verdictOK
	verdictWarn
	verdictFail
)

func (v verdict) tag() string {
	switch v {
	case verdictOK:
		return "[OK]"
	case verdictWarn:
		return "[WARN]"
	case verdictFail:
		return "[FAIL]"
	default:
		return ""
	}
}

func (v verdict) color() text.Color {
	switch v {
	case verdictOK:
		return text.FgGreen
	case verdictWarn:
		return text.FgYellow
	case verdictFail:
		return text.FgRed
	default:
		return text.Reset
	}
}

type reportLine struct {
	label   string
	verdict verdict
	detail  string
}

// report is a block of "label: [TAG] detail" lines with labels padded to the
// widest one in the block.
type report struct {
	lines []reportLine
}

func (r *report) add(label string, v verdict, detail string) {
	r.lines = append(r.lines, reportLine{label: label, verdict: v, detail: detail})
}

func (r *report) render(colorize bool) string {
	width := 0
	for _, l := range r.lines {
		width = max(width, len(l.label)+1)
	}
	var b strings.Builder
	for i, l := range r.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		body := l.detail
		if tag := l.verdict.tag(); tag != "" {
			body = strings.TrimSpace(tag + " " + l.detail)
		}
		line := fmt.Sprintf("%-*s %s", width, l.label+":", body)
		if colorize && l.verdict != verdictNote {
			line = text.Escape(line, l.verdict.color().EscapeSeq())
		}
		b.WriteString(line)
	}
	return b.String()
}

// checkReport describes how fp compares with the recorded baseline.
func checkReport(fp *fingerprint.DirectoryFingerprint, previous *store.Run, match bool) *report {
	r := &report{}
	when := formatTimestamp(previous.CreatedAt)
	if match {
		r.add("Fingerprint", verdictOK, "matches run recorded "+when)
	} else {
		r.add("Fingerprint", verdictFail, "changed since "+when)
		r.add("Recorded", verdictNote, fmt.Sprintf("%s (%d files)", previous.Digest, previous.FileCount))
		r.add("Current", verdictNote, fmt.Sprintf("%s (%d files)", fp.Digest, fp.FileCount))
	}
	addFailures(r, fp)
	return r
}

// failureReport summarises entries left out of fp; it is empty for complete runs.
func failureReport(fp *fingerprint.DirectoryFingerprint) *report {
	r := &report{}
	addFailures(r, fp)
	return r
}

func addFailures(r *report, fp *fingerprint.DirectoryFingerprint) {
	if !fp.Partial() {
		return
	}
	r.add("Failures", verdictWarn, fmt.Sprintf("%d entries skipped", len(fp.Failures)))
}

func doctorReport(results []preflight.Result) *report {
	r := &report{}
	for _, res := range results {
		v := verdictOK
		if !res.Passed {
			v = verdictFail
		}
		r.add(res.Name, v, res.Detail)
	}
	return r
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
