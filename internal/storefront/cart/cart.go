package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errx "github.com/shopeasy/storefront/internal/core/error"
	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/collections"
	"github.com/shopeasy/storefront/internal/storefront/model"
	logx "github.com/shopeasy/storefront/pkg/logger"
)

// DefaultTaxRate is applied on top of the cart subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// ErrEmptyCart is returned by Checkout when there is nothing to pay for.
var ErrEmptyCart = errx.Validation("your cart is empty")

type Manager struct {
	storage model.Storage
	taxRate decimal.Decimal
	now     func() time.Time
}

func NewManager(storage model.Storage, taxRate decimal.Decimal) *Manager {
	return &Manager{storage: storage, taxRate: taxRate, now: time.Now}
}

// Add copies the product with productID from the page catalog into the cart.
// Unknown ids are ignored and return a nil entry.
func (m *Manager) Add(ctx context.Context, page *catalog.Catalog, productID int) (*model.Entry, error) {
	p, ok := page.Find(productID)
	if !ok {
		logx.Debug().Int("productID", productID).Msg("add to cart ignored: unknown product")
		return nil, nil
	}
	entry := model.NewEntry(uuid.NewString(), p, m.now().UTC())
	if err := collections.Append(ctx, m.storage, model.CartKey, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// AddEntry appends an existing entry unchanged, e.g. one moved from the wishlist.
func (m *Manager) AddEntry(ctx context.Context, entry model.Entry) error {
	return collections.Append(ctx, m.storage, model.CartKey, entry)
}

// Remove drops the entry at index and returns its name. Invalid positions
// are a no-op.
func (m *Manager) Remove(ctx context.Context, index int) (string, bool, error) {
	removed, ok, err := collections.RemoveAt[model.Entry](ctx, m.storage, model.CartKey, index)
	if err != nil || !ok {
		return "", false, err
	}
	return removed.Name, true, nil
}

// RemoveEntry drops the entry with entryID, wherever it sits now.
func (m *Manager) RemoveEntry(ctx context.Context, entryID string) (string, bool, error) {
	if entryID == "" {
		return "", false, nil
	}
	removed, ok, err := collections.RemoveFirst(ctx, m.storage, model.CartKey, func(e model.Entry) bool {
		return e.EntryID == entryID
	})
	if err != nil || !ok {
		return "", false, err
	}
	return removed.Name, true, nil
}

func (m *Manager) Items(ctx context.Context) ([]model.Entry, error) {
	return collections.Load[model.Entry](ctx, m.storage, model.CartKey)
}

// Count is the badge number. Missing or corrupted carts count as zero.
func (m *Manager) Count(ctx context.Context) (int, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Summary recomputes the totals from the stored cart.
func (m *Manager) Summary(ctx context.Context) (model.CartSummary, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return model.CartSummary{}, err
	}
	return ComputeSummaryWithRate(items, m.taxRate), nil
}

// Checkout validates that the cart has items and returns what would be charged.
// The cart is left untouched.
func (m *Manager) Checkout(ctx context.Context) (model.CartSummary, error) {
	items, err := m.Items(ctx)
	if err != nil {
		return model.CartSummary{}, err
	}
	if len(items) == 0 {
		return model.CartSummary{}, ErrEmptyCart
	}
	summary := ComputeSummaryWithRate(items, m.taxRate)
	logx.Info().Int("items", len(items)).Float64("total", summary.Total).Msg("proceeding to checkout")
	return summary, nil
}

// Summarize computes totals for entries at the manager's tax rate.
func (m *Manager) Summarize(entries []model.Entry) model.CartSummary {
	return ComputeSummaryWithRate(entries, m.taxRate)
}

// ComputeSummary applies DefaultTaxRate to entries.
func ComputeSummary(entries []model.Entry) model.CartSummary {
	return ComputeSummaryWithRate(entries, DefaultTaxRate)
}

// ComputeSummaryWithRate sums prices, then adds tax at rate.
func ComputeSummaryWithRate(entries []model.Entry, rate decimal.Decimal) model.CartSummary {
	subtotal := decimal.Zero
	for _, e := range entries {
		subtotal = subtotal.Add(decimal.NewFromFloat(e.Price))
	}
	tax := subtotal.Mul(rate)
	total := subtotal.Add(tax)

	return model.CartSummary{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
