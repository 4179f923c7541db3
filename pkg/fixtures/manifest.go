package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
	"github.com/pelletier/go-toml"
	"github.com/snksoft/crc"
)

// ManifestName is the file written next to the fixtures
const ManifestName = "manifest.toml"

var crcTable = crc.NewTable(crc.CRC32)

// ManifestEntry describes one fixture file
type ManifestEntry struct {
	Name  string `toml:"name"`
	Count int    `toml:"count"`
	Size  int    `toml:"size"`
	CRC32 string `toml:"crc32"`
	CID   string `toml:"cid"`
}

// Manifest lists the fixtures in a directory
type Manifest struct {
	Entries []ManifestEntry `toml:"fixture"`
}

// Checksum returns the CRC-32 (IEEE) of data as 8 hex digits
func Checksum(data []byte) string {
	hash := crc.NewHashWithTable(crcTable)
	hash.Write(data)
	return fmt.Sprintf("%08x", hash.CRC32())
}

// ContentID returns the CIDv1 (raw codec, sha2-256) of data
func ContentID(data []byte) (string, error) {
	sum, err := mh.Sum(data, mh.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("failed to hash fixture: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// BuildManifest describes the given fixtures
func BuildManifest(fixtures []Fixture) (*Manifest, error) {
	m := &Manifest{Entries: make([]ManifestEntry, 0, len(fixtures))}
	for _, f := range fixtures {
		id, err := ContentID(f.Data)
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, ManifestEntry{
			Name:  f.Name,
			Count: f.Count,
			Size:  len(f.Data),
			CRC32: Checksum(f.Data),
			CID:   id,
		})
	}
	return m, nil
}

// WriteManifest writes m to dir/manifest.toml
func WriteManifest(dir string, m *Manifest) error {
	data, err := toml.Marshal(*m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestName), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads dir/manifest.toml. The returned error wraps
// os.ErrNotExist when there is no manifest.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Lookup returns the entry for a fixture file name
func (m *Manifest) Lookup(name string) (ManifestEntry, bool) {
	for _, e := range m.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return ManifestEntry{}, false
}

func (m *Manifest) check(path string) error {
	entry, ok := m.Lookup(filepath.Base(path))
	if !ok {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture: %w", err)
	}
	if got := Checksum(data); got != entry.CRC32 {
		return fmt.Errorf("%w: %s has crc32 %s, manifest says %s", ErrChecksum, entry.Name, got, entry.CRC32)
	}
	return nil
}
