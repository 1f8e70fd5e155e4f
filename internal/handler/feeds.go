package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/feedcalc/internal/service"
)

type selectFeedRequest struct {
	Code string `json:"code"`
}

type saveCartRequest struct {
	ShopName string `json:"shop_name"`
}

// ListFeeds возвращает прайс-лист кормов.
func (h *Handler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listOrEmpty(h.service.Feeds()))
}

// SuggestFeeds возвращает подсказки по введённому коду корма.
func (h *Handler) SuggestFeeds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Suggest(sessionID(r), r.URL.Query().Get("q")))
}

// SelectFeed закрепляет выбранный из подсказок корм.
func (h *Handler) SelectFeed(w http.ResponseWriter, r *http.Request) {
	var req selectFeedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	product, err := h.service.SelectFeed(sessionID(r), req.Code)
	if err != nil {
		h.fail(w, r, err, http.StatusText(http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetCart возвращает корзину текущей сессии.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartResponse(h.service.Cart(sessionID(r))))
}

// AddCartItem рассчитывает строку и добавляет её в корзину.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req service.AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	view, err := h.service.AddToCart(sessionID(r), req)
	if err != nil {
		h.fail(w, r, err, http.StatusText(http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusCreated, cartResponse(view))
}

// RemoveCartItem удаляет строку корзины по позиции.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	view, err := h.service.RemoveFromCart(sessionID(r), index)
	if err != nil {
		h.fail(w, r, err, http.StatusText(http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusOK, cartResponse(view))
}

// SaveCart сохраняет корзину в историю закупок.
func (h *Handler) SaveCart(w http.ResponseWriter, r *http.Request) {
	var req saveCartRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	rec, err := h.service.SaveCart(r.Context(), sessionID(r), req.ShopName)
	if err != nil {
		h.fail(w, r, err, msgCartSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// CartPDF отдаёт PDF текущей корзины.
func (h *Handler) CartPDF(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	shopName := r.URL.Query().Get("shop_name")
	h.writePDF(w, r, "feed-purchase.pdf", func(out io.Writer) error {
		return h.service.CartPDF(sid, shopName, out)
	})
}

// ListFeedHistory возвращает сохранённые закупки, новые первыми.
func (h *Handler) ListFeedHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.FeedHistory(r.Context())
	if err != nil {
		h.fail(w, r, err, msgLoadFailed)
		return
	}
	writeJSON(w, http.StatusOK, listOrEmpty(records))
}

// DeleteFeedHistory удаляет сохранённую закупку после подтверждения.
func (h *Handler) DeleteFeedHistory(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.service.DeleteFeedHistory)
}

// FeedHistoryPDF отдаёт PDF всей истории закупок.
func (h *Handler) FeedHistoryPDF(w http.ResponseWriter, r *http.Request) {
	h.writePDF(w, r, "feed-history.pdf", func(out io.Writer) error {
		return h.service.FeedHistoryPDF(r.Context(), out)
	})
}

func cartResponse(view service.CartView) service.CartView {
	view.Items = listOrEmpty(view.Items)
	return view
}
