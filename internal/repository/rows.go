package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/feedcalc/internal/model"
)

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
}

func scanFeed(row pgx.Row) (model.FeedProduct, error) {
	var f model.FeedProduct
	if err := row.Scan(&f.Code, &f.Name, &f.UnitPrice, &f.BagWeightKg); err != nil {
		return model.FeedProduct{}, err
	}
	return f, nil
}

func scanNotice(row pgx.Row) (model.Notice, error) {
	var n model.Notice
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Date, &n.IsActive); err != nil {
		return model.Notice{}, err
	}
	return n, nil
}

// feedHistoryRow описывает строку таблицы feed_history в том виде, в каком она хранится.
type feedHistoryRow struct {
	ID          int64
	Timestamp   time.Time
	ShopName    string
	Items       []byte
	TotalBags   int
	TotalKg     float64
	TotalAmount decimal.Decimal
}

func feedHistoryRowFrom(rec model.HistoryRecord) (feedHistoryRow, error) {
	items := rec.Items
	if items == nil {
		items = []model.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return feedHistoryRow{}, fmt.Errorf("marshal items: %w", err)
	}

	return feedHistoryRow{
		ID:          rec.ID,
		Timestamp:   rec.Timestamp,
		ShopName:    rec.ShopName,
		Items:       raw,
		TotalBags:   rec.TotalBags,
		TotalKg:     rec.TotalKg,
		TotalAmount: rec.TotalAmount,
	}, nil
}

// toModel проверяет, что items содержит список строк корзины с кодом и положительным числом мешков.
func (r feedHistoryRow) toModel() (model.HistoryRecord, error) {
	var items []model.LineItem
	if err := json.Unmarshal(r.Items, &items); err != nil {
		return model.HistoryRecord{}, fmt.Errorf("%w: feed_history %d: items: %v", ErrCorruptRecord, r.ID, err)
	}
	for i, it := range items {
		if strings.TrimSpace(it.Code) == "" || it.BagCount <= 0 {
			return model.HistoryRecord{}, fmt.Errorf("%w: feed_history %d: item %d", ErrCorruptRecord, r.ID, i)
		}
	}
	if items == nil {
		items = []model.LineItem{}
	}

	return model.HistoryRecord{
		ID:          r.ID,
		Timestamp:   r.Timestamp,
		ShopName:    r.ShopName,
		Items:       items,
		TotalBags:   r.TotalBags,
		TotalKg:     r.TotalKg,
		TotalAmount: r.TotalAmount,
	}, nil
}

func scanFeedHistory(row pgx.Row) (model.HistoryRecord, error) {
	var r feedHistoryRow
	if err := row.Scan(&r.ID, &r.Timestamp, &r.ShopName, &r.Items, &r.TotalBags, &r.TotalKg, &r.TotalAmount); err != nil {
		return model.HistoryRecord{}, err
	}
	return r.toModel()
}

func scanBroilerHistory(row pgx.Row) (model.BroilerRecord, error) {
	var r model.BroilerRecord
	err := row.Scan(
		&r.ID, &r.Timestamp, &r.FarmerName, &r.FarmerMobile, &r.FarmerAddress, &r.TotalBirds,
		&r.FeedConsumed, &r.TotalWeight, &r.Age, &r.AvgWeightPerBird, &r.FCR, &r.PerBagWeight,
	)
	if err != nil {
		return model.BroilerRecord{}, err
	}
	return r, nil
}

func scanProfitHistory(row pgx.Row) (model.ProfitRecord, error) {
	var r model.ProfitRecord
	err := row.Scan(
		&r.ID, &r.Timestamp, &r.TotalChicks, &r.ChickPrice, &r.FeedCost, &r.MedicineCost,
		&r.UtilityCost, &r.LaborCost, &r.WeightSold, &r.PricePerKg,
		&r.TotalCost, &r.TotalIncome, &r.NetProfit, &r.ProfitPerBird, &r.CostPerKg,
	)
	if err != nil {
		return model.ProfitRecord{}, err
	}
	return r, nil
}
