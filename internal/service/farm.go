package service

import (
	"context"

	"github.com/mmeshcher/feedcalc/internal/farmcalc"
	"github.com/mmeshcher/feedcalc/internal/model"
)

// CalculateBroiler рассчитывает FCR без сохранения.
func (s *Service) CalculateBroiler(form farmcalc.BroilerForm) (model.BroilerRecord, error) {
	in, res, err := farmcalc.Broiler(form)
	if err != nil {
		return model.BroilerRecord{}, err
	}
	return model.BroilerRecord{BroilerInput: in, BroilerResult: res}, nil
}

// SaveBroiler рассчитывает FCR и сохраняет расчёт в историю.
func (s *Service) SaveBroiler(ctx context.Context, form farmcalc.BroilerForm) (model.BroilerRecord, error) {
	rec, err := s.CalculateBroiler(form)
	if err != nil {
		return model.BroilerRecord{}, err
	}

	saved, err := s.broilerHistory.Save(ctx, rec)
	if err != nil {
		return model.BroilerRecord{}, err
	}
	s.metrics.RecordSaved("broiler")

	return saved, nil
}

// BroilerHistory возвращает сохранённые расчёты FCR.
func (s *Service) BroilerHistory(ctx context.Context) ([]model.BroilerRecord, error) {
	return s.broilerHistory.List(ctx)
}

// DeleteBroilerHistory удаляет сохранённый расчёт FCR.
func (s *Service) DeleteBroilerHistory(ctx context.Context, id int64) error {
	return s.broilerHistory.Delete(ctx, id)
}

// CalculateProfit рассчитывает прибыль партии без сохранения.
func (s *Service) CalculateProfit(form farmcalc.ProfitForm) (model.ProfitRecord, error) {
	in, res, err := farmcalc.Profit(form)
	if err != nil {
		return model.ProfitRecord{}, err
	}
	return model.ProfitRecord{ProfitInput: in, ProfitResult: res}, nil
}

// SaveProfit рассчитывает прибыль и сохраняет расчёт в историю.
func (s *Service) SaveProfit(ctx context.Context, form farmcalc.ProfitForm) (model.ProfitRecord, error) {
	rec, err := s.CalculateProfit(form)
	if err != nil {
		return model.ProfitRecord{}, err
	}

	saved, err := s.profitHistory.Save(ctx, rec)
	if err != nil {
		return model.ProfitRecord{}, err
	}
	s.metrics.RecordSaved("profit")

	return saved, nil
}

// ProfitHistory возвращает сохранённые расчёты прибыли.
func (s *Service) ProfitHistory(ctx context.Context) ([]model.ProfitRecord, error) {
	return s.profitHistory.List(ctx)
}

// DeleteProfitHistory удаляет сохранённый расчёт прибыли.
func (s *Service) DeleteProfitHistory(ctx context.Context, id int64) error {
	return s.profitHistory.Delete(ctx, id)
}
