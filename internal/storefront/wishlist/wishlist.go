package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopeasy/storefront/internal/storefront/cart"
	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/collections"
	"github.com/shopeasy/storefront/internal/storefront/model"
	logx "github.com/shopeasy/storefront/pkg/logger"
)

type Manager struct {
	storage model.Storage
	cart    *cart.Manager
	now     func() time.Time
}

func NewManager(storage model.Storage, cartManager *cart.Manager) *Manager {
	return &Manager{storage: storage, cart: cartManager, now: time.Now}
}

// Add copies a page catalog product into the wishlist. Unknown ids are ignored.
func (m *Manager) Add(ctx context.Context, page *catalog.Catalog, productID int) (*model.Entry, error) {
	p, ok := page.Find(productID)
	if !ok {
		logx.Debug().Int("productID", productID).Msg("add to wishlist ignored: unknown product")
		return nil, nil
	}
	entry := model.NewEntry(uuid.NewString(), p, m.now().UTC())
	if err := collections.Append(ctx, m.storage, model.WishlistKey, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (m *Manager) Items(ctx context.Context) ([]model.Entry, error) {
	return collections.Load[model.Entry](ctx, m.storage, model.WishlistKey)
}

// Remove drops the entry at index and returns its name.
func (m *Manager) Remove(ctx context.Context, index int) (string, bool, error) {
	removed, ok, err := collections.RemoveAt[model.Entry](ctx, m.storage, model.WishlistKey, index)
	if err != nil || !ok {
		return "", false, err
	}
	return removed.Name, true, nil
}

// RemoveEntry drops the entry with entryID.
func (m *Manager) RemoveEntry(ctx context.Context, entryID string) (string, bool, error) {
	if entryID == "" {
		return "", false, nil
	}
	removed, ok, err := collections.RemoveFirst(ctx, m.storage, model.WishlistKey, func(e model.Entry) bool {
		return e.EntryID == entryID
	})
	if err != nil || !ok {
		return "", false, err
	}
	return removed.Name, true, nil
}

// MoveToCart appends the wishlist entry at index to the cart, then removes it
// from the wishlist. The two writes are not transactional: when the second
// one fails the entry stays in both collections and the error is returned.
func (m *Manager) MoveToCart(ctx context.Context, index int) (string, bool, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return "", false, err
	}
	if index < 0 || index >= len(items) {
		return "", false, nil
	}
	entry := items[index]

	if err := m.cart.AddEntry(ctx, entry); err != nil {
		return "", false, err
	}

	items = append(items[:index], items[index+1:]...)
	if err := collections.Save(ctx, m.storage, model.WishlistKey, items); err != nil {
		logx.Warn().Err(err).Str("entryID", entry.EntryID).Msg("moved to cart but wishlist was not updated")
		return entry.Name, true, fmt.Errorf("remove %q from wishlist: %w", entry.Name, err)
	}
	return entry.Name, true, nil
}
