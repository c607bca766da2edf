package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rkuiper/bouwvrij/internal/model"
)

// Loader reads zoning plan JSON files from a data directory
type Loader struct {
	dataDir string
}

// NewLoader creates a loader rooted at dataDir
func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// LoadFile reads and decodes one plan file
func (l *Loader) LoadFile(name string) (*model.PlanFile, error) {
	path := name
	if l.dataDir != "" && !filepath.IsAbs(name) {
		path = filepath.Join(l.dataDir, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var file model.PlanFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode plan file %s: %w", path, err)
	}

	if file.Address.DisplayAddress == "" {
		return nil, fmt.Errorf("plan file %s: missing address", path)
	}

	return &file, nil
}

// ListFiles returns the plan JSON files in the data directory, sorted by name
func (l *Loader) ListFiles() ([]string, error) {
	entries, err := os.ReadDir(l.dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}
