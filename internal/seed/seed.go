// Package seed provides the reference dataset the entity store starts from.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	models "devcloud/internal/domain/models/hub"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var embedded []byte

// Dataset is the startup content: fixed registries plus the initial files
type Dataset struct {
	Services []models.Backend  `yaml:"services"`
	Projects []models.Project  `yaml:"projects"`
	Files    []models.FileItem `yaml:"files"`
	Agents   []models.Agent    `yaml:"agents"`
}

// Load reads the dataset from path, or the embedded dataset when path is empty
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Parse(embedded)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes a YAML dataset. Unknown fields are rejected.
func Parse(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	if len(ds.Services) == 0 {
		return nil, fmt.Errorf("seed defines no services")
	}
	seen := make(map[string]bool, len(ds.Agents))
	for i, a := range ds.Agents {
		if a.ID == "" || a.Name == "" {
			return nil, fmt.Errorf("agent %d: id and name are required", i)
		}
		if seen[a.ID] {
			return nil, fmt.Errorf("duplicate agent id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Status == "" {
			ds.Agents[i].Status = models.AgentIdle
		} else if !a.Status.Valid() {
			return nil, fmt.Errorf("agent %q: unknown status %q", a.ID, a.Status)
		}
	}
	return &ds, nil
}

// Snapshot returns the initial store snapshot (no local drives)
func (d *Dataset) Snapshot() *models.Snapshot {
	files := make([]models.FileItem, len(d.Files))
	copy(files, d.Files)
	return &models.Snapshot{Files: files}
}
