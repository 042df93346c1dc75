// Package jsonfile persists one keyed collection per entity type as a single
// pretty-printed JSON document. Storage faults degrade to a logged diagnostic
// plus a safe default instead of terminating the process: a missing file is
// an empty collection, a corrupt file loads empty, a record that fails
// validation is skipped and the rest of the collection still loads.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"hotel_registry/internal/adapters/observability"
	"hotel_registry/internal/domain"
)

type Collection[R domain.Record] struct {
	path string
	name string
	log  zerolog.Logger
}

// New binds a collection to <dir>/<name>.json. The directory is the explicit
// storage configuration for the owning manager; nothing here is ambient.
func New[R domain.Record](dir, name string, log zerolog.Logger) *Collection[R] {
	return &Collection[R]{
		path: filepath.Join(dir, name+".json"),
		name: name,
		log:  log.With().Str("collection", name).Logger(),
	}
}

func (c *Collection[R]) Load(ctx context.Context) (map[string]R, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]R{}, nil
	}
	if err != nil {
		observability.ObserveStore(c.name, "read_error")
		c.log.Error().Err(err).Str("file", c.path).Msg("cannot read collection file, treating as empty")
		return map[string]R{}, nil
	}

	var byID map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byID); err != nil {
		observability.ObserveStore(c.name, "corrupt")
		c.log.Error().Err(err).Str("file", c.path).Msg("corrupt collection file, treating as empty")
		return map[string]R{}, nil
	}

	out := make(map[string]R, len(byID))
	for id, msg := range byID {
		var rec R
		if err := json.Unmarshal(msg, &rec); err != nil {
			observability.ObserveStore(c.name, "skipped")
			c.log.Warn().Err(err).Str("id", id).Msg("skipping unreadable record")
			continue
		}
		if err := rec.Validate(); err != nil {
			observability.ObserveStore(c.name, "skipped")
			c.log.Warn().Err(err).Str("id", id).Msg("skipping malformed record")
			continue
		}
		out[id] = rec
	}
	return out, nil
}

// Save rewrites the whole document. No partial writes: callers mutate the
// loaded map and hand it back.
func (c *Collection[R]) Save(ctx context.Context, records map[string]R) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		observability.ObserveStore(c.name, "write_error")
		c.log.Error().Err(err).Str("file", c.path).Msg("cannot create data directory")
		return err
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		observability.ObserveStore(c.name, "write_error")
		c.log.Error().Err(err).Str("file", c.path).Msg("cannot encode collection")
		return err
	}
	if err := os.WriteFile(c.path, b, 0o644); err != nil {
		observability.ObserveStore(c.name, "write_error")
		c.log.Error().Err(err).Str("file", c.path).Msg("cannot write collection file")
		return err
	}
	return nil
}

func (c *Collection[R]) Get(ctx context.Context, id string) (R, error) {
	records, err := c.Load(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	rec, ok := records[id]
	if !ok {
		var zero R
		return zero, domain.ErrNotFound
	}
	return rec, nil
}

func (c *Collection[R]) Put(ctx context.Context, id string, record R) error {
	records, err := c.Load(ctx)
	if err != nil {
		return err
	}
	records[id] = record
	return c.Save(ctx, records)
}

func (c *Collection[R]) Delete(ctx context.Context, id string) error {
	records, err := c.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(records, id)
	return c.Save(ctx, records)
}
