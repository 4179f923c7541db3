package fixtures

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/james-see/sysexgen/pkg/sysex"
)

// File naming
const (
	FilePrefix = "sysex_test_"
	FileSuffix = "_data_bytes.syx"
	countWidth = 4
)

var (
	ErrNotFixtureName = errors.New("not a fixture file name")
	ErrMissingFile    = errors.New("fixture listed in manifest is missing")
	ErrChecksum       = errors.New("fixture checksum does not match manifest")
)

// FileName returns the fixture file name for count data bytes
func FileName(count int) string {
	return fmt.Sprintf("%s%0*d%s", FilePrefix, countWidth, count, FileSuffix)
}

// ParseFileName returns the data byte count encoded in a fixture file name
func ParseFileName(name string) (int, error) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, FilePrefix) || !strings.HasSuffix(base, FileSuffix) {
		return 0, fmt.Errorf("%w: %s", ErrNotFixtureName, base)
	}

	digits := strings.TrimSuffix(strings.TrimPrefix(base, FilePrefix), FileSuffix)
	if len(digits) < countWidth {
		return 0, fmt.Errorf("%w: %s", ErrNotFixtureName, base)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %s", ErrNotFixtureName, base)
		}
	}

	count, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNotFixtureName, base)
	}
	// reject extra zero padding so every count has exactly one name
	if FileName(count) != base {
		return 0, fmt.Errorf("%w: %s", ErrNotFixtureName, base)
	}
	return count, nil
}

// New builds the in-memory fixture for count data bytes
func New(count int) (*Fixture, error) {
	msg, err := sysex.Build(count)
	if err != nil {
		return nil, err
	}
	return &Fixture{
		Count: count,
		Name:  FileName(count),
		Data:  msg,
	}, nil
}

// Generator writes a fixture set to disk
type Generator struct {
	outputDir string
	counts    []int
}

// NewGenerator creates a generator for the given directory and counts.
// Duplicate counts are dropped, keeping the first occurrence.
func NewGenerator(outputDir string, counts []int) *Generator {
	if outputDir == "" {
		outputDir = "."
	}
	seen := make(map[int]bool, len(counts))
	unique := make([]int, 0, len(counts))
	for _, c := range counts {
		if seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}
	return &Generator{outputDir: outputDir, counts: unique}
}

// NewGeneratorFromConfig creates a generator from a loaded Config
func NewGeneratorFromConfig(cfg Config) *Generator {
	return NewGenerator(cfg.OutputDir, cfg.Counts)
}

// OutputDir returns the directory fixtures are written to
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// Counts returns the data byte counts the generator will write, in order
func (g *Generator) Counts() []int {
	out := make([]int, len(g.counts))
	copy(out, g.counts)
	return out
}

// Generate writes one file per count, in order. It stops at the first failure.
func (g *Generator) Generate(ctx context.Context) ([]Fixture, error) {
	for _, c := range g.counts {
		if c < 0 {
			return nil, fmt.Errorf("invalid count %d: %w", c, sysex.ErrNegativeLength)
		}
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]Fixture, 0, len(g.counts))
	for _, c := range g.counts {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		f, err := New(c)
		if err != nil {
			return written, err
		}
		f.Path = filepath.Join(g.outputDir, f.Name)

		if err := os.WriteFile(f.Path, f.Data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
		written = append(written, *f)
	}

	return written, nil
}

// VerifyFile checks a single fixture file against the count in its name
func VerifyFile(path string) Report {
	name := filepath.Base(path)
	count, err := ParseFileName(name)
	if err != nil {
		return Report{Name: name, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Report{Name: name, Count: count, Err: fmt.Errorf("failed to read fixture: %w", err)}
	}
	return Report{Name: name, Count: count, Err: sysex.VerifyIncrementing(data, count)}
}

// Verify checks every fixture file in dir. When dir holds a manifest, each
// file's checksum is compared against it and listed files must exist.
func Verify(dir string) ([]Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture directory: %w", err)
	}

	manifest, err := ReadManifest(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var reports []Report
	found := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := ParseFileName(e.Name()); err != nil {
			continue
		}
		found[e.Name()] = true

		r := VerifyFile(filepath.Join(dir, e.Name()))
		if r.OK() && manifest != nil {
			r.Err = manifest.check(filepath.Join(dir, e.Name()))
		}
		reports = append(reports, r)
	}

	if manifest != nil {
		for _, me := range manifest.Entries {
			if !found[me.Name] {
				reports = append(reports, Report{
					Name:  me.Name,
					Count: me.Count,
					Err:   fmt.Errorf("%w: %s", ErrMissingFile, me.Name),
				})
			}
		}
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Count != reports[j].Count {
			return reports[i].Count < reports[j].Count
		}
		return reports[i].Name < reports[j].Name
	})
	return reports, nil
}

// Failed returns the reports that did not pass
func Failed(reports []Report) []Report {
	var out []Report
	for _, r := range reports {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}
