package service

import (
	"context"
	"sort"

	"github.com/mmeshcher/feedcalc/internal/assistant"
	"github.com/mmeshcher/feedcalc/internal/model"
	"github.com/mmeshcher/feedcalc/internal/validation"
)

// CompanyInfo возвращает справку о компании.
func (s *Service) CompanyInfo() model.CompanyInfo {
	return s.session.CompanyInfo()
}

// FarmInfo возвращает справку для фермеров.
func (s *Service) FarmInfo() model.FarmInfo {
	return s.session.FarmInfo()
}

// ActiveNotices возвращает активные объявления, новые первыми.
func (s *Service) ActiveNotices() []model.Notice {
	return FilterNotices(s.session.Notices(), NoticeFilter{Status: NoticeActive})
}

// Greeting возвращает первое сообщение AI-ассистента.
func (s *Service) Greeting() model.ChatReply {
	return model.ChatReply{Sender: "ai", Text: assistant.Greeting}
}

// Chat передаёт вопрос пользователя AI-ассистенту.
func (s *Service) Chat(ctx context.Context, message string) (model.ChatReply, error) {
	if s.assistant == nil {
		return model.ChatReply{}, assistant.ErrNotConfigured
	}

	answer, err := s.assistant.Ask(ctx, s.session.FarmInfo(), message)
	if err != nil {
		if !validation.IsValidationError(err) {
			s.metrics.AIRequest(false)
		}
		return model.ChatReply{}, err
	}
	s.metrics.AIRequest(true)

	return model.ChatReply{Sender: "ai", Text: answer}, nil
}

// NoticeStatus задаёт фильтр объявлений по активности.
type NoticeStatus string

const (
	NoticeAll      NoticeStatus = "all"
	NoticeActive   NoticeStatus = "active"
	NoticeInactive NoticeStatus = "inactive"
)

// NoticeFilter описывает фильтр и сортировку списка объявлений.
type NoticeFilter struct {
	Status    NoticeStatus
	Ascending bool
}

// FilterNotices возвращает объявления с нужным статусом, отсортированные по дате.
// По умолчанию новые идут первыми.
func FilterNotices(notices []model.Notice, f NoticeFilter) []model.Notice {
	res := make([]model.Notice, 0, len(notices))
	for _, n := range notices {
		switch f.Status {
		case NoticeActive:
			if !n.IsActive {
				continue
			}
		case NoticeInactive:
			if n.IsActive {
				continue
			}
		}
		res = append(res, n)
	}

	sort.SliceStable(res, func(i, j int) bool {
		if f.Ascending {
			return res[i].Date.Before(res[j].Date)
		}
		return res[i].Date.After(res[j].Date)
	})

	return res
}
