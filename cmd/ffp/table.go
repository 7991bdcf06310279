package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ffp/internal/fingerprint"
	"ffp/internal/store"
)

const shortDigestLen = 16

// column describes one table column over rows of type T.
type column[T any] struct {
	header string
	align  text.Align
	value  func(T) string
}

var fileColumns = []column[fingerprint.FileResult]{
	{"Path", text.AlignLeft, func(f fingerprint.FileResult) string { return f.RelPath }},
	{"Size", text.AlignRight, func(f fingerprint.FileResult) string { return strconv.FormatInt(f.Size, 10) }},
	{"Strategy", text.AlignLeft, func(f fingerprint.FileResult) string { return f.Strategy.String() }},
	{"Digest", text.AlignLeft, func(f fingerprint.FileResult) string { return f.Digest.String() }},
}

var runColumns = []column[store.Run]{
	{"Recorded", text.AlignLeft, func(r store.Run) string { return formatTimestamp(r.CreatedAt) }},
	{"Root", text.AlignLeft, func(r store.Run) string { return r.Root }},
	{"Files", text.AlignRight, func(r store.Run) string { return strconv.Itoa(r.FileCount) }},
	{"Failures", text.AlignRight, func(r store.Run) string { return strconv.Itoa(r.Failures) }},
	{"Algorithm", text.AlignLeft, func(r store.Run) string { return r.Params.Algorithm }},
	{"Window", text.AlignRight, func(r store.Run) string { return strconv.Itoa(r.Params.WindowSize) }},
	{"Sorted", text.AlignLeft, func(r store.Run) string { return yesNo(r.Params.Sorted) }},
	{"Digest", text.AlignLeft, func(r store.Run) string { return shortDigest(r.Digest) }},
}

func newTable[T any](columns []column[T], rows []T) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.header
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.align, AlignFooter: c.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i, c := range columns {
			r[i] = c.value(row)
		}
		tw.AppendRow(r)
	}
	return tw
}

// renderFileTable lists per-file digests with a footer totalling the files,
// the bytes they hold and how many were only sampled.
func renderFileTable(files []fingerprint.FileResult) string {
	tw := newTable(fileColumns, files)
	tw.Style().Format.Footer = text.FormatDefault
	var total int64
	sampled := 0
	for _, f := range files {
		total += f.Size
		if f.Strategy == fingerprint.StrategyHeadTail {
			sampled++
		}
	}
	tw.AppendFooter(table.Row{
		strconv.Itoa(len(files)) + " files",
		strconv.FormatInt(total, 10),
		strconv.Itoa(sampled) + " sampled",
		"",
	})
	return tw.Render()
}

func renderRunTable(runs []store.Run) string {
	return newTable(runColumns, runs).Render()
}

func shortDigest(digest string) string {
	if len(digest) <= shortDigestLen {
		return digest
	}
	return digest[:shortDigestLen]
}
