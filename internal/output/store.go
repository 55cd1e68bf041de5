// Package output places generated artifacts in the output directory and
// records a manifest next to each one.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// StampLayout is the timestamp format embedded in artifact names.
const StampLayout = "20060102-150405"

const manifestExt = ".json"

type Dir struct {
	root string
	now  func() time.Time
}

func New(root string) *Dir {
	return &Dir{root: root, now: time.Now}
}

// WithClock replaces the clock used for timestamps.
func (d *Dir) WithClock(now func() time.Time) *Dir {
	d.now = now
	return d
}

func (d *Dir) Root() string { return d.root }

func (d *Dir) Init() error {
	return os.MkdirAll(d.root, 0755)
}

// Stamped returns <root>/<prefix>-<YYYYMMDD-HHMMSS>.<ext>. It does not
// create anything on disk.
func (d *Dir) Stamped(prefix, ext string) string {
	name := fmt.Sprintf("%s-%s.%s", prefix, d.now().Format(StampLayout), strings.TrimPrefix(ext, "."))
	return filepath.Join(d.root, name)
}

// Manifest describes one generated artifact.
type Manifest struct {
	Artifact string            `json:"artifact"`
	Kind     string            `json:"kind"`
	Input    string            `json:"input"`
	Created  time.Time         `json:"created"`
	Frames   int               `json:"frames,omitempty"`
	Settings map[string]string `json:"settings,omitempty"`
}

// Record writes m as <artifact>.json and returns the sidecar path.
func (d *Dir) Record(m Manifest) (string, error) {
	if m.Artifact == "" {
		return "", errors.New("output: manifest without artifact")
	}
	if m.Created.IsZero() {
		m.Created = d.now()
	}

	path := m.Artifact + manifestExt
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return path, nil
}

// List returns the manifests found in the output directory, oldest first.
// A missing directory yields an empty list; unreadable manifests are
// skipped.
func (d *Dir) List() ([]Manifest, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []Manifest{}, nil
		}
		return nil, err
	}

	out := make([]Manifest, 0)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != manifestExt {
			continue
		}

		data, err := os.ReadFile(filepath.Join(d.root, entry.Name()))
		if err != nil {
			continue
		}

		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil || m.Artifact == "" {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Created.Before(out[j].Created)
	})
	return out, nil
}
