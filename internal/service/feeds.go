package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/mmeshcher/feedcalc/internal/cart"
	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/pricing"
	"github.com/mmeshcher/feedcalc/internal/report"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

var (
	// ErrUnknownFeed возвращается, если корм с указанным кодом отсутствует в каталоге.
	ErrUnknownFeed = errors.New("feed not found")
	// ErrEmptyCart возвращается при попытке сохранить пустую корзину.
	ErrEmptyCart = validation.Errorf("❌ সেভ করার জন্য কার্টে কোনো ফিড নেই।")
)

// Suggestions описывает панель автодополнения.
type Suggestions struct {
	Products []model.FeedProduct `json:"products"`
	Visible  bool                `json:"visible"`
}

// CartView описывает корзину сессии вместе с итогами.
type CartView struct {
	Items  []model.LineItem   `json:"items"`
	Totals model.CartTotals   `json:"totals"`
	State  cart.State         `json:"state"`
	Pinned *model.FeedProduct `json:"pinned,omitempty"`
}

// AddItemRequest содержит поля формы добавления корма в корзину.
type AddItemRequest struct {
	Code       string `json:"code"`
	Bags       string `json:"bags"`
	Discount   string `json:"discount"`
	Commission string `json:"commission"`
}

// Feeds возвращает текущий прайс-лист.
func (s *Service) Feeds() []model.FeedProduct {
	return s.session.Catalog().Products()
}

// Suggest возвращает подсказки по введённому коду и сбрасывает закреплённый выбор сессии.
func (s *Service) Suggest(sessionID, query string) Suggestions {
	s.carts.Do(sessionID, func(sess *cart.Session) {
		sess.Unpin()
	})

	matches := s.session.Catalog().FindByPrefix(query)
	if matches == nil {
		matches = []model.FeedProduct{}
	}
	return Suggestions{Products: matches, Visible: len(matches) > 0}
}

// SelectFeed закрепляет корм из подсказок для следующего добавления в корзину.
func (s *Service) SelectFeed(sessionID, code string) (model.FeedProduct, error) {
	product, ok := s.session.Catalog().FindExact(code)
	if !ok {
		return model.FeedProduct{}, ErrUnknownFeed
	}

	s.carts.Do(sessionID, func(sess *cart.Session) {
		sess.Pin(product)
	})

	return product, nil
}

// Cart возвращает корзину сессии.
func (s *Service) Cart(sessionID string) CartView {
	var view CartView
	s.carts.Do(sessionID, func(sess *cart.Session) {
		view = cartView(sess)
	})
	return view
}

// AddToCart рассчитывает строку по закреплённому корму (или по точному совпадению кода) и добавляет её в корзину.
// После добавления закреплённый выбор сбрасывается.
func (s *Service) AddToCart(sessionID string, req AddItemRequest) (CartView, error) {
	cat := s.session.Catalog()

	var view CartView
	err := s.carts.With(sessionID, func(sess *cart.Session) error {
		product := sess.Pinned
		if product == nil {
			if p, ok := cat.FindExact(req.Code); ok {
				product = &p
			}
		}

		bags, err := pricing.ParseBagCount(req.Bags)
		if err != nil {
			return err
		}

		item, err := pricing.ComputeLineItem(product, bags, pricing.ParseDiscount(req.Discount), pricing.ParseCommission(req.Commission))
		if err != nil {
			return err
		}

		sess.Cart.Add(item)
		sess.Unpin()
		view = cartView(sess)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}

	return view, nil
}

// RemoveFromCart удаляет строку корзины по позиции.
func (s *Service) RemoveFromCart(sessionID string, index int) (CartView, error) {
	var view CartView
	err := s.carts.With(sessionID, func(sess *cart.Session) error {
		if err := sess.Cart.Remove(index); err != nil {
			return err
		}
		view = cartView(sess)
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	return view, nil
}

// SaveCart сохраняет корзину в историю закупок и очищает её.
// Пустая корзина отклоняется без обращения к хранилищу.
func (s *Service) SaveCart(ctx context.Context, sessionID, shopName string) (model.HistoryRecord, error) {
	var items []model.LineItem
	s.carts.Do(sessionID, func(sess *cart.Session) {
		items = sess.Cart.Items()
	})

	if len(items) == 0 {
		return model.HistoryRecord{}, ErrEmptyCart
	}

	shopName = strings.TrimSpace(shopName)
	if shopName == "" {
		shopName = model.DefaultShopName
	}

	totals := pricing.Totals(items)
	saved, err := s.feedHistory.Save(ctx, model.HistoryRecord{
		ShopName:    shopName,
		Items:       items,
		TotalBags:   totals.TotalBags,
		TotalKg:     totals.TotalKg,
		TotalAmount: totals.TotalAmount,
	})
	if err != nil {
		return model.HistoryRecord{}, err
	}

	s.carts.Do(sessionID, func(sess *cart.Session) {
		sess.Cart.Reset()
		sess.Unpin()
	})
	s.metrics.RecordSaved("feed")

	return saved, nil
}

// CartPDF формирует PDF текущей корзины.
func (s *Service) CartPDF(sessionID, shopName string, w io.Writer) error {
	var (
		items  []model.LineItem
		totals model.CartTotals
	)
	s.carts.Do(sessionID, func(sess *cart.Session) {
		items = sess.Cart.Items()
		totals = sess.Cart.Totals()
	})

	return report.Cart(w, strings.TrimSpace(shopName), items, totals)
}

// FeedHistory возвращает сохранённые закупки, новые первыми.
func (s *Service) FeedHistory(ctx context.Context) ([]model.HistoryRecord, error) {
	return s.feedHistory.List(ctx)
}

// DeleteFeedHistory удаляет сохранённую закупку.
func (s *Service) DeleteFeedHistory(ctx context.Context, id int64) error {
	return s.feedHistory.Delete(ctx, id)
}

// FeedHistoryPDF формирует PDF со всей историей закупок.
func (s *Service) FeedHistoryPDF(ctx context.Context, w io.Writer) error {
	records, err := s.feedHistory.List(ctx)
	if err != nil {
		return err
	}
	return report.FeedHistory(w, records)
}

func cartView(sess *cart.Session) CartView {
	view := CartView{
		Items:  sess.Cart.Items(),
		Totals: sess.Cart.Totals(),
		State:  sess.Cart.State(),
	}
	if sess.Pinned != nil {
		p := *sess.Pinned
		view.Pinned = &p
	}
	return view
}
