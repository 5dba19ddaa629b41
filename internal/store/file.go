package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// zonesFile is the on-disk shape shared by the JSON and YAML encodings:
// records keyed by zone name under a single "zones" object.
type zonesFile struct {
	Zones map[string]model.Zone `json:"zones" yaml:"zones"`
}

// FileStore is an in-memory Repository loaded from a JSON or YAML zones file.
// Reload builds a completely new map and publishes it under the lock; a map
// already handed to readers is never written again.
type FileStore struct {
	path string

	mu    sync.RWMutex
	zones map[string]model.Zone
	names []string
}

// NewFileStore loads the zones file at path. The encoding follows the file
// extension: .yaml/.yml parse as YAML, everything else as JSON.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the zones file and swaps in the new snapshot. On error the
// previously published snapshot stays in place.
func (s *FileStore) Reload() error {
	zones, err := ReadZonesFile(s.path)
	if err != nil {
		return err
	}

	byName := make(map[string]model.Zone, len(zones))
	names := make([]string, 0, len(zones))
	for _, z := range zones {
		byName[z.Name] = z
		names = append(names, z.Name)
	}
	sort.Strings(names)

	s.mu.Lock()
	s.zones = byName
	s.names = names
	s.mu.Unlock()
	return nil
}

func (s *FileStore) Zone(_ context.Context, name string) (model.Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	z, ok := s.zones[name]
	if !ok {
		return model.Zone{}, &model.NotFoundError{Query: name}
	}
	return z, nil
}

func (s *FileStore) Names(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names, nil
}

func (s *FileStore) Close() error {
	return nil
}

// ReadZonesFile parses and validates a zones file, returning the records
// sorted by name. The map key is authoritative for the zone name; a "name"
// field inside a record is overwritten by its key.
func ReadZonesFile(path string) ([]model.Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "store: read zones file %s", path)
	}
	zones, err := ParseZones(data, IsYAMLPath(path))
	if err != nil {
		return nil, eris.Wrapf(err, "store: zones file %s", path)
	}
	return zones, nil
}

// DecodeZones parses a raw zones document into records keyed by name without
// validating them. Reference-data tooling uses this to report every problem
// in a file instead of stopping at the first.
func DecodeZones(data []byte, yamlEncoding bool) (map[string]model.Zone, error) {
	var f zonesFile
	if yamlEncoding {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, eris.Wrap(err, "store: parse yaml")
		}
	} else {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, eris.Wrap(err, "store: parse json")
		}
	}
	if len(f.Zones) == 0 {
		return nil, eris.New("store: document contains no zones")
	}
	for name, z := range f.Zones {
		z.Name = name
		f.Zones[name] = z
	}
	return f.Zones, nil
}

// ParseZones decodes and validates a zones document, returning the records
// sorted by name.
func ParseZones(data []byte, yamlEncoding bool) ([]model.Zone, error) {
	byName, err := DecodeZones(data, yamlEncoding)
	if err != nil {
		return nil, err
	}

	zones := make([]model.Zone, 0, len(byName))
	for _, z := range byName {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].Name < zones[j].Name })
	return zones, nil
}

// WriteZonesFile writes records to path in the encoding implied by the
// extension, creating parent directories as needed.
func WriteZonesFile(path string, zones []model.Zone) error {
	f := zonesFile{Zones: make(map[string]model.Zone, len(zones))}
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return eris.Wrap(err, "store: write zones file")
		}
		f.Zones[z.Name] = z
	}

	var data []byte
	var err error
	if IsYAMLPath(path) {
		data, err = yaml.Marshal(&f)
	} else {
		data, err = json.MarshalIndent(&f, "", "  ")
	}
	if err != nil {
		return eris.Wrapf(err, "store: encode zones file %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "store: mkdir %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "store: write %s", path)
	}
	return nil
}

// IsYAMLPath reports whether the path's extension selects the YAML encoding.
func IsYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
