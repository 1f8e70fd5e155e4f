package handler

import (
	"net/http"

	"github.com/mmeshcher/feedcalc/internal/farmcalc"
)

// CalculateBroiler рассчитывает FCR без сохранения.
func (h *Handler) CalculateBroiler(w http.ResponseWriter, r *http.Request) {
	var form farmcalc.BroilerForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	rec, err := h.service.CalculateBroiler(form)
	if err != nil {
		h.fail(w, r, err, http.StatusText(http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// SaveBroiler рассчитывает FCR и сохраняет результат в историю.
func (h *Handler) SaveBroiler(w http.ResponseWriter, r *http.Request) {
	var form farmcalc.BroilerForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	rec, err := h.service.SaveBroiler(r.Context(), form)
	if err != nil {
		h.fail(w, r, err, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// ListBroilerHistory возвращает сохранённые расчёты FCR.
func (h *Handler) ListBroilerHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.BroilerHistory(r.Context())
	if err != nil {
		h.fail(w, r, err, msgLoadFailed)
		return
	}
	writeJSON(w, http.StatusOK, listOrEmpty(records))
}

// DeleteBroilerHistory удаляет расчёт FCR после подтверждения.
func (h *Handler) DeleteBroilerHistory(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.service.DeleteBroilerHistory)
}

// CalculateProfit рассчитывает прибыль партии без сохранения.
func (h *Handler) CalculateProfit(w http.ResponseWriter, r *http.Request) {
	var form farmcalc.ProfitForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	rec, err := h.service.CalculateProfit(form)
	if err != nil {
		h.fail(w, r, err, http.StatusText(http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// SaveProfit рассчитывает прибыль и сохраняет результат в историю.
func (h *Handler) SaveProfit(w http.ResponseWriter, r *http.Request) {
	var form farmcalc.ProfitForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	rec, err := h.service.SaveProfit(r.Context(), form)
	if err != nil {
		h.fail(w, r, err, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// ListProfitHistory возвращает сохранённые расчёты прибыли.
func (h *Handler) ListProfitHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ProfitHistory(r.Context())
	if err != nil {
		h.fail(w, r, err, msgLoadFailed)
		return
	}
	writeJSON(w, http.StatusOK, listOrEmpty(records))
}

// DeleteProfitHistory удаляет расчёт прибыли после подтверждения.
func (h *Handler) DeleteProfitHistory(w http.ResponseWriter, r *http.Request) {
	h.deleteRecord(w, r, h.service.DeleteProfitHistory)
}
