// Package handler содержит HTTP-обработчики API калькулятора кормов.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/feedcalc/internal/assistant"
	"github.com/mmeshcher/feedcalc/internal/cart"
	"github.com/mmeshcher/feedcalc/internal/catalog"
	"github.com/mmeshcher/feedcalc/internal/farmcalc"
	"github.com/mmeshcher/feedcalc/internal/metrics"
	"github.com/mmeshcher/feedcalc/internal/middleware"
	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/repository"
	"github.com/mmeshcher/feedcalc/internal/service"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

const (
	msgLoadFailed      = "Could not load saved history."
	msgSaveFailed      = "❌ হিসাব সেভ করা যায়নি!"
	msgCartSaveFailed  = "❌ কেনাকাটার হিসাব সেভ করা যায়নি!"
	msgDeleteFailed    = "❌ হিসাব ডিলিট করা যায়নি!"
	msgConfirmDelete   = "আপনি কি এই হিসাবটি ডিলিট করতে চান?"
	msgExportFailed    = "Could not export PDF. Check console for errors."
	msgBadRequest      = "Invalid request body."
	msgChatUnavailable = "দুঃখিত, এই মুহূর্তে উত্তর দেওয়া সম্ভব হচ্ছে না। অনুগ্রহ করে কিছুক্ষণ পর আবার চেষ্টা করুন।"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Feeds() []model.FeedProduct
	Suggest(sessionID, query string) service.Suggestions
	SelectFeed(sessionID, code string) (model.FeedProduct, error)
	Cart(sessionID string) service.CartView
	AddToCart(sessionID string, req service.AddItemRequest) (service.CartView, error)
	RemoveFromCart(sessionID string, index int) (service.CartView, error)
	SaveCart(ctx context.Context, sessionID, shopName string) (model.HistoryRecord, error)
	CartPDF(sessionID, shopName string, w io.Writer) error
	FeedHistory(ctx context.Context) ([]model.HistoryRecord, error)
	DeleteFeedHistory(ctx context.Context, id int64) error
	FeedHistoryPDF(ctx context.Context, w io.Writer) error

	CalculateBroiler(form farmcalc.BroilerForm) (model.BroilerRecord, error)
	SaveBroiler(ctx context.Context, form farmcalc.BroilerForm) (model.BroilerRecord, error)
	BroilerHistory(ctx context.Context) ([]model.BroilerRecord, error)
	DeleteBroilerHistory(ctx context.Context, id int64) error
	CalculateProfit(form farmcalc.ProfitForm) (model.ProfitRecord, error)
	SaveProfit(ctx context.Context, form farmcalc.ProfitForm) (model.ProfitRecord, error)
	ProfitHistory(ctx context.Context) ([]model.ProfitRecord, error)
	DeleteProfitHistory(ctx context.Context, id int64) error

	CompanyInfo() model.CompanyInfo
	FarmInfo() model.FarmInfo
	ActiveNotices() []model.Notice
	Greeting() model.ChatReply
	Chat(ctx context.Context, message string) (model.ChatReply, error)

	AuthenticateAdmin(email string) error
	AdminFeeds(f catalog.Filter) []model.FeedProduct
	FeedListPDF(f catalog.Filter, w io.Writer) error
	CreateFeed(ctx context.Context, feed model.FeedProduct) (model.FeedProduct, error)
	UpdateFeed(ctx context.Context, code string, feed model.FeedProduct) (model.FeedProduct, error)
	DeleteFeed(ctx context.Context, code string) error
	PreviewImport(data []byte) ([]model.FeedProduct, error)
	ConfirmImport(ctx context.Context, feeds []model.FeedProduct) (int, error)
	AdminNotices(f service.NoticeFilter) []model.Notice
	CreateNotice(ctx context.Context, n model.Notice) (model.Notice, error)
	UpdateNotice(ctx context.Context, n model.Notice) (model.Notice, error)
	DeleteNotice(ctx context.Context, id int64) error
	UpdateCompanyInfo(ctx context.Context, info model.CompanyInfo) error
	UpdateFarmInfo(ctx context.Context, info model.FarmInfo) error
}

// Handler реализует HTTP-обработчики API калькулятора кормов.
type Handler struct {
	service  Service
	logger   *zap.Logger
	sessions *middleware.SessionMiddleware
	admin    *middleware.AdminAuth
	metrics  *metrics.Metrics
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(
	s Service,
	logger *zap.Logger,
	sessions *middleware.SessionMiddleware,
	admin *middleware.AdminAuth,
	m *metrics.Metrics,
) *Handler {
	return &Handler{
		service:  s,
		logger:   logger,
		sessions: sessions,
		admin:    admin,
		metrics:  m,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// fail отвечает на ошибку сервиса. Ошибки валидации отдаются клиенту как есть и не логируются,
// остальные логируются, а клиент получает сообщение fallback.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrDuplicateFeed), errors.Is(err, repository.ErrFeedExists):
		writeError(w, http.StatusConflict, validation.Message(service.ErrDuplicateFeed))
	case validation.IsValidationError(err):
		writeError(w, http.StatusBadRequest, validation.Message(err))
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrUnknownFeed),
		errors.Is(err, cart.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	case errors.Is(err, assistant.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, msgChatUnavailable)
	default:
		h.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// writePDF формирует документ в буфер и отдаёт его только при успешной генерации.
func (h *Handler) writePDF(w http.ResponseWriter, r *http.Request, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		h.fail(w, r, err, msgExportFailed)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func sessionID(r *http.Request) string {
	id, _ := middleware.GetSessionID(r.Context())
	return id
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// confirmed проверяет явное подтверждение удаления записи истории.
func confirmed(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusPreconditionRequired, msgConfirmDelete)
		return false
	}
	return true
}

// deleteRecord обрабатывает удаление записи истории по идентификатору из пути.
func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request, del func(context.Context, int64) error) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	if !confirmed(w, r) {
		return
	}

	if err := del(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}
		h.logger.Error("delete history record error", zap.Error(err), zap.Int64("id", id))
		writeError(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listOrEmpty гарантирует, что пустой список кодируется как [].
func listOrEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
