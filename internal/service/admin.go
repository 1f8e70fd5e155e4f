package service

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/mmeshcher/feedcalc/internal/catalog"
	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/pdfimport"
	"github.com/mmeshcher/feedcalc/internal/report"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

var (
	// ErrInvalidFeed возвращается при неполных или некорректных данных корма.
	ErrInvalidFeed = validation.Errorf("Please fill all fields with valid data.")
	// ErrDuplicateFeed возвращается при добавлении корма с уже существующим кодом.
	ErrDuplicateFeed = validation.Errorf("A feed with this code already exists.")
	// ErrNothingToImport возвращается при подтверждении пустого импорта.
	ErrNothingToImport = validation.Errorf("No feeds to import.")
	// ErrInvalidNotice возвращается, если заголовок или текст объявления пусты.
	ErrInvalidNotice = validation.Errorf("Title and Content cannot be empty.")
)

// AdminFeeds возвращает прайс-лист с учётом поиска, ценового диапазона и сортировки.
func (s *Service) AdminFeeds(f catalog.Filter) []model.FeedProduct {
	return f.Apply(s.session.Catalog().Products())
}

// FeedListPDF формирует PDF прайс-листа с учётом фильтра.
func (s *Service) FeedListPDF(f catalog.Filter, w io.Writer) error {
	return report.FeedList(w, s.AdminFeeds(f))
}

func normalizeFeed(feed model.FeedProduct) (model.FeedProduct, error) {
	feed.Code = strings.TrimSpace(feed.Code)
	feed.Name = strings.TrimSpace(feed.Name)
	if feed.Code == "" || feed.Name == "" || !feed.UnitPrice.IsPositive() || feed.BagWeightKg <= 0 {
		return model.FeedProduct{}, ErrInvalidFeed
	}
	return feed, nil
}

// normalizeImported проверяет позицию импорта. Нулевая цена допускается, как и в прайс-листе PDF.
func normalizeImported(feed model.FeedProduct) (model.FeedProduct, error) {
	feed.Code = strings.TrimSpace(feed.Code)
	feed.Name = strings.TrimSpace(feed.Name)
	if feed.Code == "" || feed.Name == "" || feed.UnitPrice.IsNegative() || feed.BagWeightKg <= 0 {
		return model.FeedProduct{}, ErrInvalidFeed
	}
	return feed, nil
}

// CreateFeed добавляет корм в прайс-лист и в конец текущего каталога.
func (s *Service) CreateFeed(ctx context.Context, feed model.FeedProduct) (model.FeedProduct, error) {
	feed, err := normalizeFeed(feed)
	if err != nil {
		return model.FeedProduct{}, err
	}
	if s.session.Catalog().Contains(feed.Code) {
		return model.FeedProduct{}, ErrDuplicateFeed
	}

	created, err := s.repo.CreateFeed(ctx, feed)
	if err != nil {
		return model.FeedProduct{}, err
	}

	s.session.UpdateCatalog(func(products []model.FeedProduct) []model.FeedProduct {
		return append(products, created)
	})

	return created, nil
}

// UpdateFeed заменяет корм с кодом code. Открытые корзины сохраняют ранее рассчитанные строки.
func (s *Service) UpdateFeed(ctx context.Context, code string, feed model.FeedProduct) (model.FeedProduct, error) {
	feed, err := normalizeFeed(feed)
	if err != nil {
		return model.FeedProduct{}, err
	}

	updated, err := s.repo.UpdateFeed(ctx, code, feed)
	if err != nil {
		return model.FeedProduct{}, err
	}

	s.session.UpdateCatalog(func(products []model.FeedProduct) []model.FeedProduct {
		for i, p := range products {
			if p.Code == code {
				products[i] = updated
			}
		}
		return products
	})

	return updated, nil
}

// DeleteFeed удаляет корм по коду.
func (s *Service) DeleteFeed(ctx context.Context, code string) error {
	if err := s.repo.DeleteFeed(ctx, code); err != nil {
		return err
	}

	s.session.UpdateCatalog(func(products []model.FeedProduct) []model.FeedProduct {
		kept := products[:0]
		for _, p := range products {
			if p.Code != code {
				kept = append(kept, p)
			}
		}
		return kept
	})

	return nil
}

// PreviewImport разбирает PDF прайс-листа без сохранения.
func (s *Service) PreviewImport(data []byte) ([]model.FeedProduct, error) {
	return pdfimport.Parse(data)
}

// ConfirmImport добавляет или обновляет корма по коду и возвращает количество обработанных позиций.
// Каталог после импорта сортируется по коду.
func (s *Service) ConfirmImport(ctx context.Context, feeds []model.FeedProduct) (int, error) {
	if len(feeds) == 0 {
		return 0, ErrNothingToImport
	}

	cleaned := make([]model.FeedProduct, 0, len(feeds))
	for _, f := range feeds {
		f, err := normalizeImported(f)
		if err != nil {
			return 0, err
		}
		cleaned = append(cleaned, f)
	}

	if err := s.repo.UpsertFeeds(ctx, cleaned); err != nil {
		return 0, err
	}

	s.session.UpdateCatalog(func(products []model.FeedProduct) []model.FeedProduct {
		return mergeByCode(products, cleaned)
	})

	return len(cleaned), nil
}

// mergeByCode заменяет позиции с совпадающим кодом и сортирует результат по коду.
// Из позиций с одинаковым кодом остаётся последняя.
func mergeByCode(current, imported []model.FeedProduct) []model.FeedProduct {
	byCode := make(map[string]model.FeedProduct, len(current)+len(imported))
	for _, p := range current {
		byCode[p.Code] = p
	}
	for _, p := range imported {
		byCode[p.Code] = p
	}

	res := make([]model.FeedProduct, 0, len(byCode))
	for _, p := range byCode {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Code < res[j].Code })
	return res
}

// AdminNotices возвращает объявления с учётом фильтра.
func (s *Service) AdminNotices(f NoticeFilter) []model.Notice {
	return FilterNotices(s.session.Notices(), f)
}

func normalizeNotice(n model.Notice) (model.Notice, error) {
	n.Title = strings.TrimSpace(n.Title)
	n.Content = strings.TrimSpace(n.Content)
	if n.Title == "" || n.Content == "" {
		return model.Notice{}, ErrInvalidNotice
	}
	return n, nil
}

// CreateNotice публикует объявление.
func (s *Service) CreateNotice(ctx context.Context, n model.Notice) (model.Notice, error) {
	n, err := normalizeNotice(n)
	if err != nil {
		return model.Notice{}, err
	}

	created, err := s.repo.CreateNotice(ctx, n)
	if err != nil {
		return model.Notice{}, err
	}

	s.session.UpdateNotices(func(notices []model.Notice) []model.Notice {
		return append([]model.Notice{created}, notices...)
	})

	return created, nil
}

// UpdateNotice обновляет объявление. Дата объявления становится текущей.
func (s *Service) UpdateNotice(ctx context.Context, n model.Notice) (model.Notice, error) {
	n, err := normalizeNotice(n)
	if err != nil {
		return model.Notice{}, err
	}

	updated, err := s.repo.UpdateNotice(ctx, n)
	if err != nil {
		return model.Notice{}, err
	}

	s.session.UpdateNotices(func(notices []model.Notice) []model.Notice {
		for i := range notices {
			if notices[i].ID == updated.ID {
				notices[i] = updated
			}
		}
		return notices
	})

	return updated, nil
}

// DeleteNotice удаляет объявление.
func (s *Service) DeleteNotice(ctx context.Context, id int64) error {
	if err := s.repo.DeleteNotice(ctx, id); err != nil {
		return err
	}

	s.session.UpdateNotices(func(notices []model.Notice) []model.Notice {
		kept := notices[:0]
		for _, n := range notices {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		return kept
	})

	return nil
}

// UpdateCompanyInfo заменяет справку о компании целиком.
func (s *Service) UpdateCompanyInfo(ctx context.Context, info model.CompanyInfo) error {
	if err := s.repo.UpdateCompanyInfo(ctx, info); err != nil {
		return err
	}
	s.session.SetCompanyInfo(info)
	return nil
}

// UpdateFarmInfo заменяет справку для фермеров целиком.
func (s *Service) UpdateFarmInfo(ctx context.Context, info model.FarmInfo) error {
	if err := s.repo.UpdateFarmInfo(ctx, info); err != nil {
		return err
	}
	s.session.SetFarmInfo(info)
	return nil
}
