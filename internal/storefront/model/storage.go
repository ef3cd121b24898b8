package model

import "context"

// Collection keys inside a client namespace.
const (
	CartKey     = "cart"
	WishlistKey = "wishlist"
	UsersKey    = "users"
	SessionKey  = "session"
)

// Storage is a string key/value store scoped to one client, mirroring the
// browser's local storage.
type Storage interface {
	// GetItem returns the raw value for key; ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem overwrites the value for key.
	SetItem(ctx context.Context, key string, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error
}
