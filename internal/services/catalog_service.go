package services

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/pennywise/client/internal/models"
	"github.com/rs/zerolog"
)

// CatalogPageSize is the number of wallets or categories fetched in one go.
const CatalogPageSize = 200

// Lister fetches one page of a collection. The wallet and category
// resources of apiclient satisfy it.
type Lister[T any] interface {
	List(ctx context.Context, query url.Values, page, size int, sort string) (models.Page[T], error)
}

// CatalogService keeps the wallets and categories used to label
// transactions.
type CatalogService struct {
	wallets    Lister[models.Wallet]
	categories Lister[models.Category]
	report     reporter
	log        zerolog.Logger

	mu            sync.RWMutex
	walletList    []models.Wallet
	categoryList  []models.Category
	walletNames   map[string]string
	categoryNames map[string]string
}

func NewCatalogService(wallets Lister[models.Wallet], categories Lister[models.Category], opts ...Option) *CatalogService {
	o := buildOptions(opts)
	return &CatalogService{
		wallets:       wallets,
		categories:    categories,
		report:        reporter{notifier: o.notifier, session: o.session, log: o.log},
		log:           o.log,
		walletNames:   map[string]string{},
		categoryNames: map[string]string{},
	}
}

// Load fetches both collections. A failure of one does not discard the
// other.
func (cs *CatalogService) Load(ctx context.Context) error {
	werr := cs.LoadWallets(ctx)
	cerr := cs.LoadCategories(ctx)
	if werr != nil {
		return werr
	}
	return cerr
}

func (cs *CatalogService) LoadWallets(ctx context.Context) error {
	page, err := cs.wallets.List(ctx, nil, 0, CatalogPageSize, "displayOrder,asc")
	if err != nil {
		cs.report.failure(ctx, OpLoadWallets, err)
		return fmt.Errorf("%s: %w", OpLoadWallets, err)
	}

	names := make(map[string]string, len(page.Content))
	for _, w := range page.Content {
		names[w.ID] = w.Name
	}

	cs.mu.Lock()
	cs.walletList = page.Content
	cs.walletNames = names
	cs.mu.Unlock()

	cs.log.Debug().Int("count", len(page.Content)).Msg("Wallets loaded")
	return nil
}

func (cs *CatalogService) LoadCategories(ctx context.Context) error {
	page, err := cs.categories.List(ctx, nil, 0, CatalogPageSize, "name,asc")
	if err != nil {
		cs.report.failure(ctx, OpLoadCategories, err)
		return fmt.Errorf("%s: %w", OpLoadCategories, err)
	}

	names := make(map[string]string, len(page.Content))
	for _, c := range page.Content {
		names[c.ID] = c.Name
	}

	cs.mu.Lock()
	cs.categoryList = page.Content
	cs.categoryNames = names
	cs.mu.Unlock()

	cs.log.Debug().Int("count", len(page.Content)).Msg("Categories loaded")
	return nil
}

func (cs *CatalogService) Wallets() []models.Wallet {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return append([]models.Wallet(nil), cs.walletList...)
}

func (cs *CatalogService) Categories() []models.Category {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return append([]models.Category(nil), cs.categoryList...)
}

// WalletName resolves a wallet id loaded by LoadWallets.
func (cs *CatalogService) WalletName(id string) (string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	name, ok := cs.walletNames[id]
	return name, ok
}

// CategoryName resolves a category id loaded by LoadCategories.
func (cs *CatalogService) CategoryName(id string) (string, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	name, ok := cs.categoryNames[id]
	return name, ok
}
