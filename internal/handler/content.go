package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mmeshcher/feedcalc/internal/assistant"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

type chatRequest struct {
	Message string `json:"message"`
}

// GetCompanyInfo возвращает справку о компании.
func (h *Handler) GetCompanyInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.CompanyInfo())
}

// GetFarmInfo возвращает справку для фермеров.
func (h *Handler) GetFarmInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.FarmInfo())
}

// ListNotices возвращает активные объявления.
func (h *Handler) ListNotices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listOrEmpty(h.service.ActiveNotices()))
}

// Greeting возвращает приветствие AI-ассистента.
func (h *Handler) Greeting(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Greeting())
}

// Chat передаёт вопрос AI-ассистенту. Сбой генерации отдаётся как 502.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	reply, err := h.service.Chat(r.Context(), req.Message)
	if err != nil {
		if validation.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, validation.Message(err))
			return
		}
		if r.Context().Err() != nil {
			return
		}
		status := chatErrorStatus(err)
		if status == http.StatusBadGateway {
			h.logger.Error("assistant error", zap.Error(err))
		}
		writeError(w, status, msgChatUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func chatErrorStatus(err error) int {
	if errors.Is(err, assistant.ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}
