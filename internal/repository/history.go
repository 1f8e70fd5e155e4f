package repository

import (
	"context"
	"fmt"

	"github.com/mmeshcher/feedcalc/internal/model"
)

const feedHistoryColumns = `id, timestamp, shop_name, items, total_bags, total_kg, total_amount`

// ListFeedHistory возвращает сохранённые закупки кормов, новые первыми.
func (r *PostgresRepository) ListFeedHistory(ctx context.Context) ([]model.HistoryRecord, error) {
	var res []model.HistoryRecord

	err := withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+feedHistoryColumns+` FROM feed_history ORDER BY timestamp DESC`)
		if err != nil {
			return err
		}
		res, err = collect(rows, scanFeedHistory)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("select feed history: %w", err)
	}

	return res, nil
}

// InsertFeedHistory сохраняет закупку и возвращает её с назначенными идентификатором и временем.
func (r *PostgresRepository) InsertFeedHistory(ctx context.Context, rec model.HistoryRecord) (model.HistoryRecord, error) {
	row, err := feedHistoryRowFrom(rec)
	if err != nil {
		return model.HistoryRecord{}, err
	}

	saved, err := scanFeedHistory(r.pool.QueryRow(ctx,
		`INSERT INTO feed_history (shop_name, items, total_bags, total_kg, total_amount)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+feedHistoryColumns,
		row.ShopName, row.Items, row.TotalBags, row.TotalKg, row.TotalAmount,
	))
	if err != nil {
		return model.HistoryRecord{}, fmt.Errorf("insert feed history: %w", err)
	}

	return saved, nil
}

// DeleteFeedHistory удаляет сохранённую закупку.
func (r *PostgresRepository) DeleteFeedHistory(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "feed_history", id)
}

const broilerHistoryColumns = `id, timestamp, farmer_name, farmer_mobile, farmer_address, total_birds,
	feed_consumed, total_weight, age, avg_weight_per_bird, fcr, per_bag_weight`

// ListBroilerHistory возвращает сохранённые расчёты FCR, новые первыми.
func (r *PostgresRepository) ListBroilerHistory(ctx context.Context) ([]model.BroilerRecord, error) {
	var res []model.BroilerRecord

	err := withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+broilerHistoryColumns+` FROM broiler_history ORDER BY timestamp DESC`)
		if err != nil {
			return err
		}
		res, err = collect(rows, scanBroilerHistory)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("select broiler history: %w", err)
	}

	return res, nil
}

// InsertBroilerHistory сохраняет расчёт FCR.
func (r *PostgresRepository) InsertBroilerHistory(ctx context.Context, rec model.BroilerRecord) (model.BroilerRecord, error) {
	saved, err := scanBroilerHistory(r.pool.QueryRow(ctx,
		`INSERT INTO broiler_history (farmer_name, farmer_mobile, farmer_address, total_birds,
			feed_consumed, total_weight, age, avg_weight_per_bird, fcr, per_bag_weight)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+broilerHistoryColumns,
		rec.FarmerName, rec.FarmerMobile, rec.FarmerAddress, rec.TotalBirds,
		rec.FeedConsumed, rec.TotalWeight, rec.Age, rec.AvgWeightPerBird, rec.FCR, rec.PerBagWeight,
	))
	if err != nil {
		return model.BroilerRecord{}, fmt.Errorf("insert broiler history: %w", err)
	}

	return saved, nil
}

// DeleteBroilerHistory удаляет сохранённый расчёт FCR.
func (r *PostgresRepository) DeleteBroilerHistory(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "broiler_history", id)
}

const profitHistoryColumns = `id, timestamp, total_chicks, chick_price, total_feed_cost, total_medicine_cost,
	total_utility_cost, total_labor_cost, total_weight_sold, price_per_kg,
	total_cost, total_income, net_profit, profit_per_bird, cost_per_kg`

// ListProfitHistory возвращает сохранённые расчёты прибыли, новые первыми.
func (r *PostgresRepository) ListProfitHistory(ctx context.Context) ([]model.ProfitRecord, error) {
	var res []model.ProfitRecord

	err := withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `SELECT `+profitHistoryColumns+` FROM profit_history ORDER BY timestamp DESC`)
		if err != nil {
			return err
		}
		res, err = collect(rows, scanProfitHistory)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("select profit history: %w", err)
	}

	return res, nil
}

// InsertProfitHistory сохраняет расчёт прибыли.
func (r *PostgresRepository) InsertProfitHistory(ctx context.Context, rec model.ProfitRecord) (model.ProfitRecord, error) {
	saved, err := scanProfitHistory(r.pool.QueryRow(ctx,
		`INSERT INTO profit_history (total_chicks, chick_price, total_feed_cost, total_medicine_cost,
			total_utility_cost, total_labor_cost, total_weight_sold, price_per_kg,
			total_cost, total_income, net_profit, profit_per_bird, cost_per_kg)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+profitHistoryColumns,
		rec.TotalChicks, rec.ChickPrice, rec.FeedCost, rec.MedicineCost,
		rec.UtilityCost, rec.LaborCost, rec.WeightSold, rec.PricePerKg,
		rec.TotalCost, rec.TotalIncome, rec.NetProfit, rec.ProfitPerBird, rec.CostPerKg,
	))
	if err != nil {
		return model.ProfitRecord{}, fmt.Errorf("insert profit history: %w", err)
	}

	return saved, nil
}

// DeleteProfitHistory удаляет сохранённый расчёт прибыли.
func (r *PostgresRepository) DeleteProfitHistory(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "profit_history", id)
}
