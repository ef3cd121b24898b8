// Package storetest provides client storages backed by an in-process Redis
// for tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/shopeasy/storefront/internal/storefront/model"
	"github.com/shopeasy/storefront/internal/storefront/repo"
)

const Prefix = "test"

// Server starts a miniredis instance and a client connected to it.
func Server(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// Storage returns a storage for clientID on a fresh server. The raw key of a
// collection is Prefix + ":" + clientID + ":" + name.
func Storage(t *testing.T, clientID string) (*miniredis.Miniredis, model.Storage) {
	t.Helper()
	mr, rdb := Server(t)
	return mr, repo.NewRedisStorage(rdb, Prefix, clientID, 0)
}

// Key returns the raw Redis key for a collection.
func Key(clientID, name string) string {
	return Prefix + ":" + clientID + ":" + name
}

// ErrInjected is returned by FailingStorage.
var ErrInjected = errors.New("injected storage failure")

// FailingStorage wraps a storage and fails writes to the keys in FailSet.
type FailingStorage struct {
	model.Storage
	FailSet map[string]bool
}

func (f *FailingStorage) SetItem(ctx context.Context, key, value string) error {
	if f.FailSet[key] {
		return ErrInjected
	}
	return f.Storage.SetItem(ctx, key, value)
}
