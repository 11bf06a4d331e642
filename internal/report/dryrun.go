package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DryRunItem is one candidate's intended handling in a dry run.
type DryRunItem struct {
	Path    string
	Skipped bool
	Encoder string
	Rate    string
	// SrcBytes is the current file size; EstimatedBytes is the projected
	// output size, 0 when duration or bitrate is unknown.
	SrcBytes       int64
	EstimatedBytes int64
}

// DryRun accumulates intended actions without touching the filesystem.
type DryRun struct {
	Items []DryRunItem
}

// Add records one candidate.
func (d *DryRun) Add(item DryRunItem) {
	d.Items = append(d.Items, item)
}

// DryRunTotals aggregates the non-skipped items. SrcBytes covers all of them;
// EstimatedSrcBytes and EstimatedBytes cover only the items with an estimate,
// so the projected saving never speaks for the Unestimated remainder.
type DryRunTotals struct {
	SrcBytes          int64
	EstimatedSrcBytes int64
	EstimatedBytes    int64
	Unestimated       int
}

// Totals sums the non-skipped items.
func (d *DryRun) Totals() DryRunTotals {
	var t DryRunTotals
	for _, item := range d.Items {
		if item.Skipped {
			continue
		}
		t.SrcBytes += item.SrcBytes
		if item.EstimatedBytes <= 0 {
			t.Unestimated++
			continue
		}
		t.EstimatedSrcBytes += item.SrcBytes
		t.EstimatedBytes += item.EstimatedBytes
	}
	return t
}

// Line renders the dry-run closing summary.
func (d *DryRun) Line() string {
	t := d.Totals()
	percent := 0.0
	if t.EstimatedSrcBytes > 0 {
		percent = float64(t.EstimatedSrcBytes-t.EstimatedBytes) / float64(t.EstimatedSrcBytes) * 100
	}
	line := fmt.Sprintf("dry run: %d candidates, %s on disk, estimated %s -> %s, saving %s (%.1f%%)",
		len(d.Items), FormatBytes(t.SrcBytes),
		FormatBytes(t.EstimatedSrcBytes), FormatBytes(t.EstimatedBytes),
		FormatBytes(t.EstimatedSrcBytes-t.EstimatedBytes), percent)
	if t.Unestimated > 0 {
		line += fmt.Sprintf(", %d without estimate", t.Unestimated)
	}
	return line
}

// Render prints the per-file dry-run table.
func (d *DryRun) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Action", "Encoder", "Rate", "Size", "Estimate"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	for _, item := range d.Items {
		action := "backup + encode"
		encoderCell := item.Encoder
		if encoderCell == "" {
			encoderCell = "libx265"
		}
		rateCell := item.Rate
		estimate := "-"
		if item.Skipped {
			action = "skip (already hevc)"
			encoderCell = "-"
			rateCell = "-"
		} else if item.EstimatedBytes > 0 {
			estimate = FormatBytes(item.EstimatedBytes)
		}
		t.AppendRow(table.Row{
			filepath.Base(item.Path),
			action,
			encoderCell,
			rateCell,
			FormatBytes(item.SrcBytes),
			estimate,
		})
	}
	t.Render()
}
