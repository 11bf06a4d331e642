// Package report accumulates per-job outcomes into run summaries and renders
// them for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Outcome is the reporting view of one finished job.
type Outcome struct {
	InputPath string
	FinalPath string
	Encoder   string
	Success   bool
	UsedGPU   bool
	Skipped   bool
	BackedUp  bool
	Deleted   bool
	SrcBytes  int64
	OutBytes  int64
	Err       error
}

// Summary holds the aggregate counters for one run. It is mutated from a
// single goroutine only.
type Summary struct {
	Total    int
	Encoded  int
	GPU      int
	CPU      int
	Skipped  int
	BackedUp int
	Deleted  int
	Errors   int
	SrcBytes int64
	OutBytes int64
}

// Add folds one outcome into the summary. Skipped files are excluded from the
// processed total.
func (s *Summary) Add(o Outcome) {
	if o.Skipped {
		s.Skipped++
		return
	}
	s.Total++
	if o.BackedUp {
		s.BackedUp++
	}
	if o.Deleted {
		s.Deleted++
	}
	if o.Err != nil || !o.Success {
		s.Errors++
		return
	}
	s.Encoded++
	if o.UsedGPU {
		s.GPU++
	} else {
		s.CPU++
	}
	s.SrcBytes += o.SrcBytes
	s.OutBytes += o.OutBytes
}

// SavedBytes reports how many bytes the run reclaimed. Never negative from
// the caller's point of view of "saved": growth shows as a negative number so
// the operator sees it.
func (s *Summary) SavedBytes() int64 {
	return s.SrcBytes - s.OutBytes
}

// PercentSaved reports the saving relative to the source bytes, 0 when no
// bytes were processed.
func (s *Summary) PercentSaved() float64 {
	if s.SrcBytes == 0 {
		return 0
	}
	return float64(s.SavedBytes()) / float64(s.SrcBytes) * 100
}

// Line renders the single-line run summary.
func (s *Summary) Line() string {
	return fmt.Sprintf(
		"files=%d encoded=%d gpu=%d cpu=%d skipped=%d backups=%d deleted=%d errors=%d source=%s output=%s saved=%s (%.1f%%)",
		s.Total, s.Encoded, s.GPU, s.CPU, s.Skipped, s.BackedUp, s.Deleted, s.Errors,
		FormatBytes(s.SrcBytes), FormatBytes(s.OutBytes), FormatBytes(s.SavedBytes()), s.PercentSaved())
}

// FormatBytes renders a byte count in a human unit with one decimal.
func FormatBytes(n int64) string {
	const unit = 1024
	negative := n < 0
	value := n
	if negative {
		value = -value
	}
	if value < unit {
		if negative {
			return fmt.Sprintf("-%dB", value)
		}
		return fmt.Sprintf("%dB", value)
	}
	div, exp := int64(unit), 0
	for v := value / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	formatted := fmt.Sprintf("%.1f%ciB", float64(value)/float64(div), "KMGTPE"[exp])
	if negative {
		return "-" + formatted
	}
	return formatted
}

// RenderOutcomes prints the per-file result table for an execute run.
func RenderOutcomes(w io.Writer, outcomes []Outcome) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Result", "Encoder", "Source", "Output"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for _, o := range outcomes {
		t.AppendRow(table.Row{
			baseName(o.InputPath),
			outcomeLabel(o),
			encoderLabel(o),
			FormatBytes(o.SrcBytes),
			outputCell(o),
		})
	}
	t.Render()
}

func outcomeLabel(o Outcome) string {
	switch {
	case o.Skipped:
		return "skipped"
	case o.Err != nil || !o.Success:
		return "error"
	default:
		return "encoded"
	}
}

func encoderLabel(o Outcome) string {
	if o.Skipped || o.Encoder == "" {
		return "-"
	}
	return o.Encoder
}

func outputCell(o Outcome) string {
	if !o.Success || o.Skipped {
		return "-"
	}
	return FormatBytes(o.OutBytes)
}

func baseName(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
