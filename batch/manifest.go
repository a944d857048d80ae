package batch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a batch run: definition documents, file-backed sources
// and extra queries.
type Manifest struct {
	// Documents are definition documents. Queries inside them run first.
	Documents []string `yaml:"documents"`

	// Sources are data files loaded as relations.
	Sources []Source `yaml:"sources,omitempty"`

	// Queries run after the document queries.
	Queries []string `yaml:"queries,omitempty"`
}

// Source names a data file to load as a relation. An empty Name uses the
// file's base name.
type Source struct {
	Name string `yaml:"name,omitempty"`
	Path string `yaml:"path"`
}

// LoadManifest reads a YAML manifest. Relative paths in it are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	if err := validateManifest(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	base := filepath.Dir(path)
	for i, doc := range m.Documents {
		m.Documents[i] = resolve(base, doc)
	}
	for i := range m.Sources {
		m.Sources[i].Path = resolve(base, m.Sources[i].Path)
	}
	return &m, nil
}

func validateManifest(m *Manifest) error {
	if len(m.Documents) == 0 && len(m.Sources) == 0 {
		return fmt.Errorf("at least one document or source is required")
	}
	for i, src := range m.Sources {
		if src.Path == "" {
			return fmt.Errorf("source %d: path is required", i+1)
		}
	}
	return nil
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Apply loads the manifest's documents and sources into the session and
// returns the queries to run: those found in the documents, then the
// manifest's own. An unreadable document or source is an error.
func (s *Session) Apply(m *Manifest) ([]string, error) {
	var queries []string
	for _, path := range m.Documents {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read document %s: %w", path, err)
		}
		doc := string(data)
		s.LoadDocument(doc)
		queries = append(queries, ExtractQueries(doc)...)
	}
	for _, src := range m.Sources {
		if err := s.LoadFile(src.Name, src.Path); err != nil {
			return nil, err
		}
	}
	return append(queries, m.Queries...), nil
}
