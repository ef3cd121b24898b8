// Package storefront wires the per-client store state: cart, wishlist,
// accounts, catalogs and the search index. Page controllers receive a *State
// and never touch storage directly.
package storefront

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/shopeasy/storefront/internal/storefront/account"
	"github.com/shopeasy/storefront/internal/storefront/cart"
	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/model"
	"github.com/shopeasy/storefront/internal/storefront/repo"
	"github.com/shopeasy/storefront/internal/storefront/search"
	"github.com/shopeasy/storefront/internal/storefront/wishlist"
)

// Config holds the store wide settings shared by every client. TaxRate is
// used as given; a zero rate charges no tax.
type Config struct {
	KeyPrefix      string
	TTL            time.Duration
	TaxRate        decimal.Decimal
	AccountLatency time.Duration
	MaxSuggestions int
	ResultsPath    string
}

// Factory builds a State per client over a shared Redis connection.
type Factory struct {
	rdb      redis.Cmdable
	catalogs *catalog.Set
	index    *search.Index
	cfg      Config
}

func NewFactory(rdb redis.Cmdable, catalogs *catalog.Set, cfg Config) *Factory {
	return &Factory{
		rdb:      rdb,
		catalogs: catalogs,
		index:    search.NewIndex(catalogs.Suggestions(), cfg.MaxSuggestions),
		cfg:      cfg,
	}
}

// For returns the state of clientID.
func (f *Factory) For(clientID string) *State {
	storage := repo.NewRedisStorage(f.rdb, f.cfg.KeyPrefix, clientID, f.cfg.TTL)
	return New(storage, f.catalogs, f.index, f.cfg)
}

// Catalogs exposes the shared catalogs.
func (f *Factory) Catalogs() *catalog.Set {
	return f.catalogs
}

// Index exposes the shared suggestion index.
func (f *Factory) Index() *search.Index {
	return f.index
}

// State is one client's view of the store.
type State struct {
	Catalogs *catalog.Set
	Index    *search.Index
	Cart     *cart.Manager
	Wishlist *wishlist.Manager
	Account  *account.Service

	resultsPath string
}

func New(storage model.Storage, catalogs *catalog.Set, index *search.Index, cfg Config) *State {
	c := cart.NewManager(storage, cfg.TaxRate)
	return &State{
		Catalogs:    catalogs,
		Index:       index,
		Cart:        c,
		Wishlist:    wishlist.NewManager(storage, c),
		Account:     account.NewService(storage, cfg.AccountLatency),
		resultsPath: cfg.ResultsPath,
	}
}

// page resolves a page catalog; unknown pages have no products.
func (s *State) page(name string) *catalog.Catalog {
	c, _ := s.Catalogs.Page(name)
	return c
}

func (s *State) AddToCart(ctx context.Context, page string, productID int) (*model.Entry, error) {
	return s.Cart.Add(ctx, s.page(page), productID)
}

func (s *State) AddToWishlist(ctx context.Context, page string, productID int) (*model.Entry, error) {
	return s.Wishlist.Add(ctx, s.page(page), productID)
}

func (s *State) RemoveFromCart(ctx context.Context, index int) (string, bool, error) {
	return s.Cart.Remove(ctx, index)
}

func (s *State) RemoveFromWishlist(ctx context.Context, index int) (string, bool, error) {
	return s.Wishlist.Remove(ctx, index)
}

func (s *State) ComputeSummary(entries []model.Entry) model.CartSummary {
	return s.Cart.Summarize(entries)
}

func (s *State) Suggest(term string) []string {
	return s.Index.Suggest(term)
}

func (s *State) FilterProducts(page, term string) []model.Product {
	c := s.page(page)
	if c == nil {
		return []model.Product{}
	}
	return search.FilterProducts(c.Products, term)
}

func (s *State) Register(ctx context.Context, in model.RegisterInput) (*model.User, error) {
	return s.Account.Register(ctx, in)
}

// Results is what the search page renders for a query.
type Results struct {
	Term     string          `json:"term"`
	URL      string          `json:"url"`
	Count    int             `json:"count"`
	Products []model.Product `json:"products"`
}

// Search runs a results page query against the page catalog.
func (s *State) Search(page string, q search.Query) Results {
	var products []model.Product
	if c := s.page(page); c != nil {
		products = search.Search(c.Products, q)
	} else {
		products = []model.Product{}
	}
	term := search.NormalizeTerm(q.Term)
	return Results{
		Term:     term,
		URL:      search.ResultsURL(s.resultsPath, term),
		Count:    len(products),
		Products: products,
	}
}
