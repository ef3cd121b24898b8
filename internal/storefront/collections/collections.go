// Package collections reads and writes named collections as whole JSON
// documents on top of a model.Storage. Every mutation is a fresh
// read-modify-write; two writers of the same key race and the last save wins.
package collections

import (
	"context"
	"encoding/json"
	"net/http"

	errx "github.com/shopeasy/storefront/internal/core/error"
	"github.com/shopeasy/storefront/internal/storefront/model"
	logx "github.com/shopeasy/storefront/pkg/logger"
)

// Load returns the sequence stored under key. Absent, empty or undecodable
// values read as an empty sequence; only backend failures are returned.
func Load[T any](ctx context.Context, s model.Storage, key string) ([]T, error) {
	raw, ok, err := s.GetItem(ctx, key)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logx.Warn().Err(errx.Corrupted(key, err)).Str("key", key).Msg("discarding corrupted collection")
		return []T{}, nil
	}
	if items == nil {
		// "null" decodes to a nil slice
		items = []T{}
	}
	return items, nil
}

// Save overwrites the whole collection.
func Save[T any](ctx context.Context, s model.Storage, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to marshal collection")
		return errx.New(err, http.StatusInternalServerError, errx.SystemErrorMessage)
	}
	return s.SetItem(ctx, key, string(b))
}

// Append loads the collection, pushes item and saves it back.
func Append[T any](ctx context.Context, s model.Storage, key string, item T) error {
	items, err := Load[T](ctx, s, key)
	if err != nil {
		return err
	}
	return Save(ctx, s, key, append(items, item))
}

// RemoveAt removes the element at index. An index outside [0, len) is a no-op
// and reports ok=false.
func RemoveAt[T any](ctx context.Context, s model.Storage, key string, index int) (removed T, ok bool, err error) {
	items, err := Load[T](ctx, s, key)
	if err != nil {
		return removed, false, err
	}
	if index < 0 || index >= len(items) {
		return removed, false, nil
	}
	removed = items[index]
	items = append(items[:index], items[index+1:]...)
	if err := Save(ctx, s, key, items); err != nil {
		return removed, false, err
	}
	return removed, true, nil
}

// RemoveFirst removes the first element matching pred.
func RemoveFirst[T any](ctx context.Context, s model.Storage, key string, pred func(T) bool) (removed T, ok bool, err error) {
	items, err := Load[T](ctx, s, key)
	if err != nil {
		return removed, false, err
	}
	for i, it := range items {
		if !pred(it) {
			continue
		}
		removed = it
		items = append(items[:i], items[i+1:]...)
		if err := Save(ctx, s, key, items); err != nil {
			return removed, false, err
		}
		return removed, true, nil
	}
	return removed, false, nil
}

// LoadRecord reads a single record. Absent or undecodable values report ok=false.
func LoadRecord[T any](ctx context.Context, s model.Storage, key string) (rec T, ok bool, err error) {
	raw, found, err := s.GetItem(ctx, key)
	if err != nil || !found {
		return rec, false, err
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		logx.Warn().Err(errx.Corrupted(key, err)).Str("key", key).Msg("discarding corrupted record")
		var zero T
		return zero, false, nil
	}
	return rec, true, nil
}

// SaveRecord overwrites a single record.
func SaveRecord[T any](ctx context.Context, s model.Storage, key string, rec T) error {
	b, err := json.Marshal(rec)
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to marshal record")
		return errx.New(err, http.StatusInternalServerError, errx.SystemErrorMessage)
	}
	return s.SetItem(ctx, key, string(b))
}

// Delete drops the key entirely.
func Delete(ctx context.Context, s model.Storage, key string) error {
	return s.RemoveItem(ctx, key)
}
