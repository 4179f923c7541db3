// Package fixtures writes and checks the on-disk SysEx fixture set
package fixtures

// Fixture is one generated .syx file
type Fixture struct {
	Count int    // Number of data bytes between the markers
	Name  string // Base file name
	Path  string // Where it was written, empty when only built in memory
	Data  []byte
}

// Report holds the verification outcome for one fixture file
type Report struct {
	Name  string
	Count int
	Err   error
}

// OK reports whether the fixture passed every check
func (r Report) OK() bool {
	return r.Err == nil
}

// Config controls which fixtures are generated and where
type Config struct {
	OutputDir string `toml:"output_dir"`
	Counts    []int  `toml:"counts"`
	Manifest  bool   `toml:"manifest"`
}

// DefaultCounts is the standard fixture set
var DefaultCounts = []int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
	20, 30, 40, 100, 200, 500, 1000,
}

// DefaultConfig returns the configuration used when nothing else is given
func DefaultConfig() Config {
	counts := make([]int, len(DefaultCounts))
	copy(counts, DefaultCounts)
	return Config{
		OutputDir: ".",
		Counts:    counts,
	}
}
