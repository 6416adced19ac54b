// Package scan contains the scan command.
package scan

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/WorksButNotTested/binarch2/internal/colors"
	"github.com/WorksButNotTested/binarch2/internal/mmap"
	"github.com/WorksButNotTested/binarch2/internal/progress"
	"github.com/WorksButNotTested/binarch2/internal/utils"
	"github.com/WorksButNotTested/binarch2/pkg/binarch"
	"github.com/WorksButNotTested/binarch2/pkg/signature"
	"github.com/WorksButNotTested/binarch2/pkg/table"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/kr/pretty"
)

// sampleLen is the number of bytes shown for every dumped match.
const sampleLen = 16

// Config is the scan command configuration.
type Config struct {
	// signature catalog to scan with (built-in when nil)
	Catalog *signature.Catalog `json:"-"`
	// number of windows the input is split into
	Chunks int `json:"chunks,omitempty"`
	// number of windows scanned at once (0 = one per CPU)
	Workers int `json:"workers,omitempty"`
	// include match offsets in the output
	Offsets bool `json:"offsets,omitempty"`
	// max offsets printed per kind (0 = all)
	Limit int `json:"limit,omitempty"`
	// hexdump the first N matches of every kind
	Dump int `json:"dump,omitempty"`
	// show the progress bar (when using the CLI)
	Progress bool `json:"progress,omitempty"`
	// output as JSON
	JSON bool `json:"json,omitempty"`
}

// Verdict is the classification in the form it is reported.
type Verdict struct {
	Arch    string `json:"arch,omitempty"`
	Endian  string `json:"endian,omitempty"`
	Known   bool   `json:"known"`
	Matches int    `json:"matches"`
}

// Sample is a few bytes starting at a match.
type Sample struct {
	Offset int    `json:"offset"`
	Bytes  string `json:"bytes"`
	data   []byte
}

// KindResult is the evidence gathered for one kind.
type KindResult struct {
	Arch    string   `json:"arch"`
	Endian  string   `json:"endian"`
	Count   int      `json:"count"`
	Share   float64  `json:"share"`
	Offsets []int    `json:"offsets,omitempty"`
	Samples []Sample `json:"samples,omitempty"`
}

// Report is the outcome of scanning one file.
type Report struct {
	File           string       `json:"file"`
	Size           int64        `json:"size"`
	Windows        int          `json:"windows"`
	Classification Verdict      `json:"classification"`
	Results        []KindResult `json:"results"`

	verdict binarch.Classification
}

// Verdict returns the classification of the scanned file.
func (r *Report) Verdict() binarch.Classification { return r.verdict }

// File maps and scans the file at path.
func File(ctx context.Context, path string, conf *Config) (*Report, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	log.WithFields(log.Fields{
		"file": path,
		"size": humanize.Bytes(uint64(m.Size())),
	}).Info("Scanning")

	return scan(ctx, path, m.Bytes(), int(m.Size()), conf)
}

// Bytes scans data as if it had been read from a file called name.
func Bytes(ctx context.Context, name string, data []byte, conf *Config) (*Report, error) {
	return scan(ctx, name, data, len(data), conf)
}

func scan(ctx context.Context, name string, data []byte, size int, conf *Config) (*Report, error) {
	cat := conf.Catalog
	if cat == nil {
		cat = signature.Default()
	}

	opts := []binarch.Option{
		binarch.WithCatalog(cat),
		binarch.WithChunks(conf.Chunks),
		binarch.WithWorkers(conf.Workers),
		binarch.WithSize(size),
	}
	if conf.Progress {
		opts = append(opts, binarch.WithProgress(progress.New(filepath.Base(name))))
	}

	results, err := binarch.Scan(ctx, data, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", name, err)
	}
	if l, ok := log.Log.(*log.Logger); ok && l.Level <= log.DebugLevel {
		utils.Indent(log.Debug, 2)("Results:\n" + pretty.Sprint(results))
	}

	verdict := binarch.Classify(results)
	report := &Report{
		File:    name,
		Size:    int64(size),
		Windows: len(binarch.Plan(size, conf.Chunks, cat.MaxPatternLen())),
		Classification: Verdict{
			Known:   verdict.Known,
			Matches: verdict.Matches,
		},
		verdict: verdict,
	}
	if verdict.Known {
		report.Classification.Arch = verdict.Kind.Arch.String()
		report.Classification.Endian = verdict.Kind.Endian.String()
	}

	total := results.Total()
	for _, e := range results.Ranked() {
		kr := KindResult{
			Arch:   e.Kind.Arch.String(),
			Endian: e.Kind.Endian.String(),
			Count:  e.Count,
			Share:  float64(e.Count) / float64(total),
		}
		offsets := e.Offsets.Sorted()
		if conf.Offsets {
			kr.Offsets = offsets
			if conf.Limit > 0 && len(offsets) > conf.Limit {
				kr.Offsets = offsets[:conf.Limit]
			}
		}
		for _, off := range offsets[:min(conf.Dump, len(offsets))] {
			// copy out: the mapping is gone once the report is printed
			b := append([]byte(nil), data[off:min(off+sampleLen, len(data))]...)
			kr.Samples = append(kr.Samples, Sample{Offset: off, Bytes: hex.EncodeToString(b), data: b})
		}
		report.Results = append(report.Results, kr)
	}

	return report, nil
}

// Print writes the human readable form of the report to w.
func (r *Report) Print(w io.Writer) {
	label := colors.Label().SprintFunc()
	detail := colors.Detail().SprintFunc()

	fmt.Fprintf(w, "%s %s %s\n", label("File:"), r.File, detail("("+humanize.Bytes(uint64(r.Size))+")"))
	if r.verdict.Known {
		fmt.Fprintf(w, "%s %s %s\n", label("Kind:"), colors.Verdict().Sprint(r.verdict), detail(fmt.Sprintf("(%d matches)", r.verdict.Matches)))
	} else {
		fmt.Fprintf(w, "%s %s\n", label("Kind:"), colors.Unknown().Sprint(r.verdict))
		return
	}

	tbl := table.NewTable(colors.Enabled())
	tbl.SetHeaders("Arch", "Endian", "Count", "Share")
	tbl.SetAlignment(2, lipgloss.Right)
	tbl.SetAlignment(3, lipgloss.Right)

	total := 0
	for _, kr := range r.Results {
		total += kr.Count
	}
	for _, kr := range r.Results {
		tbl.AppendRow(kr.Arch, kr.Endian, fmt.Sprint(kr.Count), utils.Percent(kr.Count, total))
	}
	fmt.Fprintf(w, "\n%s\n", tbl.Render())

	for _, kr := range r.Results {
		if len(kr.Offsets) == 0 && len(kr.Samples) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", label(kr.Arch+" "+kr.Endian))
		if len(kr.Offsets) > 0 {
			fmt.Fprintf(w, "  %s %s\n", label("Offsets:"), colors.Offset().Sprint(utils.JoinOffsets(kr.Offsets, kr.Count)))
		}
		for _, s := range kr.Samples {
			fmt.Fprint(w, indent(utils.HexDump(s.data, s.Offset, 4), "  "))
		}
	}
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "")
}

// WriteJSON writes reports to w as a JSON array, highlighted when colors are
// enabled.
func WriteJSON(w io.Writer, reports []*Report) error {
	if reports == nil {
		reports = []*Report{}
	}
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %v", err)
	}
	if colors.Enabled() {
		if err := quick.Highlight(w, string(data)+"\n", "json", "terminal256", "nord"); err != nil {
			return fmt.Errorf("failed to highlight json: %v", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Run scans every path in turn and writes the reports to w, stopping at the
// first file that fails.
func Run(ctx context.Context, paths []string, conf *Config, w io.Writer) error {
	var reports []*Report
	for i, path := range paths {
		r, err := File(ctx, path, conf)
		if err != nil {
			return err
		}
		if conf.JSON {
			reports = append(reports, r)
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		r.Print(w)
	}
	if conf.JSON {
		return WriteJSON(w, reports)
	}
	return nil
}
