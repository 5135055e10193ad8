package ingest

import (
	"encoding/json"
	"os"

	"github.com/sbl8/forcegraph/errs"
	"github.com/sbl8/forcegraph/model"
)

// LoadMetadataStore reads a previously persisted MetadataStore from
// path. A missing file is not an error: it returns an empty store so
// first-run ingestion proceeds from a blank slate, matching the
// original's load_or_create_metadata behavior.
func LoadMetadataStore(path string) (model.MetadataStore, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.MetadataStore{}, nil
	}
	if err != nil {
		return nil, errs.NewConfigError("reading metadata store %q: %v", path, err)
	}
	var store model.MetadataStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, errs.NewConfigError("parsing metadata store %q: %v", path, err)
	}
	return store, nil
}

// SaveMetadataStore persists store to path as indented JSON.
func SaveMetadataStore(path string, store model.MetadataStore) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return errs.NewConfigError("marshaling metadata store: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errs.NewConfigError("writing metadata store %q: %v", path, err)
	}
	return nil
}
