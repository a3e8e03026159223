package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/veloboard/flapship/internal/domain"
)

const cacheFileName = "dispatch.json"

// CacheFileRepository implements ports.CacheRepository using a JSON file.
// One file holds the records for all identities, keyed by identity string.
// Absence of the file is a valid state meaning an empty cache. Writes assume
// a single writer at a time; concurrent writers need external exclusion.
type CacheFileRepository struct {
	dir string
}

// NewCacheFileRepository creates a new CacheFileRepository for the given directory.
func NewCacheFileRepository(dir string) *CacheFileRepository {
	return &CacheFileRepository{dir: dir}
}

// Lookup retrieves the record for an identity from disk.
// Returns present=false (and no error) when the file or the key is absent.
func (r *CacheFileRepository) Lookup(ctx context.Context, id domain.ContentID) (domain.CacheRecord, bool, error) {
	records, err := r.load()
	if err != nil {
		return domain.CacheRecord{}, false, err
	}
	rec, ok := records[id.Key()]
	return rec, ok, nil
}

// Record persists the record for its identity atomically, overwriting any
// previous record for the same identity.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func (r *CacheFileRepository) Record(ctx context.Context, rec domain.CacheRecord) error {
	records, err := r.load()
	if err != nil {
		return err
	}
	records[rec.ID.Key()] = rec

	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// All returns every cached record, for the status command.
func (r *CacheFileRepository) All(ctx context.Context) (map[string]domain.CacheRecord, error) {
	return r.load()
}

// Path returns the full path to the cache file.
func (r *CacheFileRepository) Path() string {
	return filepath.Join(r.dir, cacheFileName)
}

func (r *CacheFileRepository) load() (map[string]domain.CacheRecord, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domain.CacheRecord{}, nil
		}
		return nil, err
	}

	records := map[string]domain.CacheRecord{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
