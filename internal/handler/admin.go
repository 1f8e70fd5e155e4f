package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/feedcalc/internal/catalog"
	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/pdfimport"
	"github.com/mmeshcher/feedcalc/internal/service"
)

const (
	maxImportSize = 10 << 20

	msgInvalidAdmin  = "Invalid admin email."
	msgFeedFailed    = "Failed to save feed."
	msgNoticeFailed  = "Failed to save notice."
	msgImportFailed  = "Failed to import PDF. See console for details."
	msgInfoFailed    = "Failed to update info."
	msgInvalidFilter = "Invalid price filter."
)

type adminLoginRequest struct {
	Email string `json:"email"`
}

type importResponse struct {
	Imported int    `json:"imported"`
	Message  string `json:"message"`
}

// AdminLogin выдаёт cookie администратора при совпадении email.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := h.service.AuthenticateAdmin(req.Email); err != nil {
		if errors.Is(err, service.ErrAdminDisabled) || errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, msgInvalidAdmin)
			return
		}
		h.fail(w, r, err, http.StatusText(http.StatusInternalServerError))
		return
	}

	if err := h.admin.SetAdminCookie(w, strings.TrimSpace(req.Email)); err != nil {
		h.logger.Error("issue admin token error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminLogout удаляет cookie администратора.
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.admin.ClearAdminCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// AdminListFeeds возвращает прайс-лист с учётом поиска, диапазона цен и сортировки.
func (h *Handler) AdminListFeeds(w http.ResponseWriter, r *http.Request) {
	f, err := feedFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidFilter)
		return
	}
	writeJSON(w, http.StatusOK, listOrEmpty(h.service.AdminFeeds(f)))
}

// AdminFeedsPDF отдаёт PDF прайс-листа с учётом фильтра.
func (h *Handler) AdminFeedsPDF(w http.ResponseWriter, r *http.Request) {
	f, err := feedFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidFilter)
		return
	}
	h.writePDF(w, r, "ag-agro-feed-list.pdf", func(out io.Writer) error {
		return h.service.FeedListPDF(f, out)
	})
}

// AdminCreateFeed добавляет корм в прайс-лист.
func (h *Handler) AdminCreateFeed(w http.ResponseWriter, r *http.Request) {
	var feed model.FeedProduct
	if err := decodeJSON(r, &feed); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	created, err := h.service.CreateFeed(r.Context(), feed)
	if err != nil {
		h.fail(w, r, err, msgFeedFailed)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// AdminUpdateFeed заменяет корм с кодом из пути.
func (h *Handler) AdminUpdateFeed(w http.ResponseWriter, r *http.Request) {
	var feed model.FeedProduct
	if err := decodeJSON(r, &feed); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	updated, err := h.service.UpdateFeed(r.Context(), chi.URLParam(r, "code"), feed)
	if err != nil {
		h.fail(w, r, err, msgFeedFailed)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// AdminDeleteFeed удаляет корм по коду.
func (h *Handler) AdminDeleteFeed(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFeed(r.Context(), chi.URLParam(r, "code")); err != nil {
		h.fail(w, r, err, "Failed to delete feed.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminPreviewImport разбирает загруженный PDF и возвращает найденные корма без сохранения.
// Файл принимается телом запроса или полем формы "file".
func (h *Handler) AdminPreviewImport(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	feeds, err := h.service.PreviewImport(data)
	if err != nil {
		if errors.Is(err, pdfimport.ErrMalformed) {
			h.logger.Warn("pdf import parse error", zap.Error(err))
			writeError(w, http.StatusUnprocessableEntity, msgImportFailed)
			return
		}
		h.fail(w, r, err, msgImportFailed)
		return
	}

	writeJSON(w, http.StatusOK, feeds)
}

// AdminConfirmImport сохраняет проверенные корма из импорта.
func (h *Handler) AdminConfirmImport(w http.ResponseWriter, r *http.Request) {
	var feeds []model.FeedProduct
	if err := decodeJSON(r, &feeds); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	n, err := h.service.ConfirmImport(r.Context(), feeds)
	if err != nil {
		h.fail(w, r, err, "Failed to import feeds.")
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Imported: n,
		Message:  fmt.Sprintf("Successfully imported/updated %d feeds.", n),
	})
}

// AdminListNotices возвращает объявления с фильтром по статусу и сортировкой по дате.
func (h *Handler) AdminListNotices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status := service.NoticeStatus(q.Get("status"))
	switch status {
	case service.NoticeAll, service.NoticeActive, service.NoticeInactive:
	case "":
		status = service.NoticeAll
	default:
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	notices := h.service.AdminNotices(service.NoticeFilter{
		Status:    status,
		Ascending: strings.EqualFold(q.Get("order"), "asc"),
	})
	writeJSON(w, http.StatusOK, listOrEmpty(notices))
}

// AdminCreateNotice добавляет объявление.
func (h *Handler) AdminCreateNotice(w http.ResponseWriter, r *http.Request) {
	var n model.Notice
	if err := decodeJSON(r, &n); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	created, err := h.service.CreateNotice(r.Context(), n)
	if err != nil {
		h.fail(w, r, err, msgNoticeFailed)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// AdminUpdateNotice изменяет объявление с идентификатором из пути.
func (h *Handler) AdminUpdateNotice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	var n model.Notice
	if err := decodeJSON(r, &n); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}
	n.ID = id

	updated, err := h.service.UpdateNotice(r.Context(), n)
	if err != nil {
		h.fail(w, r, err, msgNoticeFailed)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// AdminDeleteNotice удаляет объявление.
func (h *Handler) AdminDeleteNotice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := h.service.DeleteNotice(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete notice.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminUpdateCompanyInfo заменяет справку о компании.
func (h *Handler) AdminUpdateCompanyInfo(w http.ResponseWriter, r *http.Request) {
	var info model.CompanyInfo
	if err := decodeJSON(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := h.service.UpdateCompanyInfo(r.Context(), info); err != nil {
		h.fail(w, r, err, msgInfoFailed)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// AdminUpdateFarmInfo заменяет справку для фермеров.
func (h *Handler) AdminUpdateFarmInfo(w http.ResponseWriter, r *http.Request) {
	var info model.FarmInfo
	if err := decodeJSON(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := h.service.UpdateFarmInfo(r.Context(), info); err != nil {
		h.fail(w, r, err, msgInfoFailed)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func feedFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()

	f := catalog.Filter{
		Search:     q.Get("search"),
		Sort:       catalog.SortKey(q.Get("sort")),
		Descending: strings.EqualFold(q.Get("order"), "desc"),
	}

	switch f.Sort {
	case "", catalog.SortByCode, catalog.SortByName, catalog.SortByPrice:
	default:
		return catalog.Filter{}, fmt.Errorf("unknown sort key %q", f.Sort)
	}

	var err error
	if f.MinPrice, err = optionalDecimal(q.Get("min_price")); err != nil {
		return catalog.Filter{}, err
	}
	if f.MaxPrice, err = optionalDecimal(q.Get("max_price")); err != nil {
		return catalog.Filter{}, err
	}

	return f, nil
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", s, err)
	}
	return &v, nil
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	defer r.Body.Close()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("read form file: %w", err)
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	return io.ReadAll(r.Body)
}
