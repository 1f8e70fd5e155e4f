package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/feedcalc/internal/catalog"
	"github.com/mmeshcher/feedcalc/internal/model"
)

// SessionStore хранит данные, загружаемые один раз при запуске: каталог кормов,
// справку о компании, справку для фермеров и объявления. Меняется только через операции администратора.
type SessionStore struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	company model.CompanyInfo
	farm    model.FarmInfo
	notices []model.Notice
}

// NewSessionStore создаёт пустое хранилище.
func NewSessionStore() *SessionStore {
	return &SessionStore{catalog: catalog.New(nil)}
}

// Load параллельно загружает все данные из репозитория. При ошибке хранилище не меняется.
func (s *SessionStore) Load(ctx context.Context, repo Repository) error {
	var (
		feeds   []model.FeedProduct
		company model.CompanyInfo
		farm    model.FarmInfo
		notices []model.Notice
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if feeds, err = repo.ListFeeds(gctx); err != nil {
			return fmt.Errorf("load feeds: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if company, err = repo.GetCompanyInfo(gctx); err != nil {
			return fmt.Errorf("load company info: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if farm, err = repo.GetFarmInfo(gctx); err != nil {
			return fmt.Errorf("load farm info: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if notices, err = repo.ListNotices(gctx); err != nil {
			return fmt.Errorf("load notices: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = catalog.New(feeds)
	s.company = company
	s.farm = farm
	s.notices = append([]model.Notice(nil), notices...)

	return nil
}

// Catalog возвращает текущий снимок каталога.
func (s *SessionStore) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// UpdateCatalog устанавливает новый снимок каталога, построенный fn из текущего списка кормов.
func (s *SessionStore) UpdateCatalog(fn func(products []model.FeedProduct) []model.FeedProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog.New(fn(s.catalog.Products()))
}

// CompanyInfo возвращает справку о компании.
func (s *SessionStore) CompanyInfo() model.CompanyInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

// SetCompanyInfo заменяет справку о компании.
func (s *SessionStore) SetCompanyInfo(info model.CompanyInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = info
}

// FarmInfo возвращает справку для фермеров.
func (s *SessionStore) FarmInfo() model.FarmInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.farm
}

// SetFarmInfo заменяет справку для фермеров.
func (s *SessionStore) SetFarmInfo(info model.FarmInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.farm = info
}

// Notices возвращает копию списка объявлений.
func (s *SessionStore) Notices() []model.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Notice(nil), s.notices...)
}

// UpdateNotices заменяет список объявлений результатом fn.
func (s *SessionStore) UpdateNotices(fn func(notices []model.Notice) []model.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = fn(append([]model.Notice(nil), s.notices...))
}
