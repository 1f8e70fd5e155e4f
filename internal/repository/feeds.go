package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/feedcalc/internal/model"
)

// ListFeeds возвращает прайс-лист кормов, отсортированный по коду.
func (r *PostgresRepository) ListFeeds(ctx context.Context) ([]model.FeedProduct, error) {
	var feeds []model.FeedProduct

	err := withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `SELECT code, name, price, kg FROM feed_list ORDER BY code`)
		if err != nil {
			return err
		}
		feeds, err = collect(rows, scanFeed)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("select feeds: %w", err)
	}

	return feeds, nil
}

// CreateFeed добавляет корм в прайс-лист.
func (r *PostgresRepository) CreateFeed(ctx context.Context, feed model.FeedProduct) (model.FeedProduct, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO feed_list (code, name, price, kg) VALUES ($1, $2, $3, $4)
		 RETURNING code, name, price, kg`,
		feed.Code, feed.Name, feed.UnitPrice, feed.BagWeightKg,
	)

	created, err := scanFeed(row)
	if err != nil {
		if isUniqueViolation(err) {
			return model.FeedProduct{}, fmt.Errorf("%w: %s", ErrFeedExists, feed.Code)
		}
		return model.FeedProduct{}, fmt.Errorf("insert feed: %w", err)
	}

	return created, nil
}

// UpdateFeed заменяет корм с кодом code.
func (r *PostgresRepository) UpdateFeed(ctx context.Context, code string, feed model.FeedProduct) (model.FeedProduct, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE feed_list SET code = $2, name = $3, price = $4, kg = $5
		 WHERE code = $1
		 RETURNING code, name, price, kg`,
		code, feed.Code, feed.Name, feed.UnitPrice, feed.BagWeightKg,
	)

	updated, err := scanFeed(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FeedProduct{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.FeedProduct{}, fmt.Errorf("%w: %s", ErrFeedExists, feed.Code)
		}
		return model.FeedProduct{}, fmt.Errorf("update feed: %w", err)
	}

	return updated, nil
}

// DeleteFeed удаляет корм по коду.
func (r *PostgresRepository) DeleteFeed(ctx context.Context, code string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM feed_list WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertFeeds добавляет или обновляет корма по коду в одной транзакции.
func (r *PostgresRepository) UpsertFeeds(ctx context.Context, feeds []model.FeedProduct) error {
	return withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		batch := &pgx.Batch{}
		for _, f := range feeds {
			batch.Queue(
				`INSERT INTO feed_list (code, name, price, kg) VALUES ($1, $2, $3, $4)
				 ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, kg = EXCLUDED.kg`,
				f.Code, f.Name, f.UnitPrice, f.BagWeightKg,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert feeds: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}
