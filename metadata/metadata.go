// Package metadata resolves an index name to its internal index UUID, the
// key under which the remote store lays out the index's shard data. The
// mapping comes from the node's persisted index catalog; the rest of the
// tool treats the UUID as an opaque required string with no fallback.
package metadata

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// StateDirName is the node state directory below the data path.
	StateDirName = "_state"
	// CatalogFileName is the persisted index catalog inside the state directory.
	CatalogFileName = "indices.yaml"
)

// IndexEntry is one index in the catalog.
type IndexEntry struct {
	Name string `yaml:"name"`
	UUID string `yaml:"uuid"`
}

type catalogFile struct {
	Indices []IndexEntry `yaml:"indices"`
}

// Resolver answers index-name → UUID lookups against a loaded catalog.
type Resolver struct {
	uuids map[string]string
}

// Load reads an index catalog from an io.Reader.
// This is the core logic, separated for testability.
func Load(r io.Reader) (*Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read index catalog: %w", err)
	}

	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index catalog yaml: %w", err)
	}

	resolver := &Resolver{uuids: make(map[string]string, len(catalog.Indices))}
	for _, entry := range catalog.Indices {
		if entry.Name == "" || entry.UUID == "" {
			return nil, fmt.Errorf("index catalog entry is missing name or uuid: %+v", entry)
		}
		resolver.uuids[entry.Name] = entry.UUID
	}
	return resolver, nil
}

// LoadCatalog reads the index catalog from a YAML file by path. Unlike the
// tool's own configuration, a missing catalog is an error: without it no
// index name can be resolved.
func LoadCatalog(path string) (*Resolver, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index catalog %s: %w", path, err)
	}
	defer file.Close()

	return Load(file)
}

// LookupUUID returns the UUID of the named index.
func (r *Resolver) LookupUUID(indexName string) (string, error) {
	uuid, ok := r.uuids[indexName]
	if !ok {
		return "", fmt.Errorf("index %q not present in catalog", indexName)
	}
	return uuid, nil
}
