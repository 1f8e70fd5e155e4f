// Package service реализует бизнес-логику сервиса расчётов для дистрибьютора кормов.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mmeshcher/feedcalc/internal/cart"
	"github.com/mmeshcher/feedcalc/internal/history"
	"github.com/mmeshcher/feedcalc/internal/metrics"
	"github.com/mmeshcher/feedcalc/internal/model"
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	ListFeeds(ctx context.Context) ([]model.FeedProduct, error)
	CreateFeed(ctx context.Context, feed model.FeedProduct) (model.FeedProduct, error)
	UpdateFeed(ctx context.Context, code string, feed model.FeedProduct) (model.FeedProduct, error)
	DeleteFeed(ctx context.Context, code string) error
	UpsertFeeds(ctx context.Context, feeds []model.FeedProduct) error

	GetCompanyInfo(ctx context.Context) (model.CompanyInfo, error)
	UpdateCompanyInfo(ctx context.Context, info model.CompanyInfo) error
	GetFarmInfo(ctx context.Context) (model.FarmInfo, error)
	UpdateFarmInfo(ctx context.Context, info model.FarmInfo) error

	ListNotices(ctx context.Context) ([]model.Notice, error)
	CreateNotice(ctx context.Context, n model.Notice) (model.Notice, error)
	UpdateNotice(ctx context.Context, n model.Notice) (model.Notice, error)
	DeleteNotice(ctx context.Context, id int64) error

	ListFeedHistory(ctx context.Context) ([]model.HistoryRecord, error)
	InsertFeedHistory(ctx context.Context, rec model.HistoryRecord) (model.HistoryRecord, error)
	DeleteFeedHistory(ctx context.Context, id int64) error

	ListBroilerHistory(ctx context.Context) ([]model.BroilerRecord, error)
	InsertBroilerHistory(ctx context.Context, rec model.BroilerRecord) (model.BroilerRecord, error)
	DeleteBroilerHistory(ctx context.Context, id int64) error

	ListProfitHistory(ctx context.Context) ([]model.ProfitRecord, error)
	InsertProfitHistory(ctx context.Context, rec model.ProfitRecord) (model.ProfitRecord, error)
	DeleteProfitHistory(ctx context.Context, id int64) error
}

// Assistant отвечает на вопросы фермеров с учётом справки фермы.
type Assistant interface {
	Ask(ctx context.Context, farm model.FarmInfo, message string) (string, error)
}

var (
	// ErrAdminDisabled возвращается, если email администратора не настроен.
	ErrAdminDisabled = errors.New("admin login is disabled")
	// ErrInvalidCredentials возвращается при неверном email администратора.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service содержит бизнес-логику сервиса.
type Service struct {
	repo      Repository
	session   *SessionStore
	carts     *cart.Registry
	assistant Assistant
	metrics   *metrics.Metrics

	adminEmail string

	feedHistory    *history.Store[model.HistoryRecord]
	broilerHistory *history.Store[model.BroilerRecord]
	profitHistory  *history.Store[model.ProfitRecord]
}

// NewService создаёт сервис поверх репозитория и загруженного хранилища сессии.
// assistant и m могут быть nil.
func NewService(repo Repository, session *SessionStore, assistant Assistant, m *metrics.Metrics, adminEmail string) *Service {
	return &Service{
		repo:       repo,
		session:    session,
		carts:      cart.NewRegistry(),
		assistant:  assistant,
		metrics:    m,
		adminEmail: strings.TrimSpace(adminEmail),

		feedHistory: history.NewStore[model.HistoryRecord](history.Funcs[model.HistoryRecord]{
			ListFunc:   repo.ListFeedHistory,
			InsertFunc: repo.InsertFeedHistory,
			DeleteFunc: repo.DeleteFeedHistory,
		}),
		broilerHistory: history.NewStore[model.BroilerRecord](history.Funcs[model.BroilerRecord]{
			ListFunc:   repo.ListBroilerHistory,
			InsertFunc: repo.InsertBroilerHistory,
			DeleteFunc: repo.DeleteBroilerHistory,
		}),
		profitHistory: history.NewStore[model.ProfitRecord](history.Funcs[model.ProfitRecord]{
			ListFunc:   repo.ListProfitHistory,
			InsertFunc: repo.InsertProfitHistory,
			DeleteFunc: repo.DeleteProfitHistory,
		}),
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// AuthenticateAdmin сверяет email с адресом администратора без учёта регистра.
func (s *Service) AuthenticateAdmin(email string) error {
	if s.adminEmail == "" {
		return ErrAdminDisabled
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.adminEmail) {
		return ErrInvalidCredentials
	}
	return nil
}
