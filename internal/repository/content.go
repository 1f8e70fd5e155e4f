package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/feedcalc/internal/model"
)

// GetCompanyInfo возвращает справку о компании.
func (r *PostgresRepository) GetCompanyInfo(ctx context.Context) (model.CompanyInfo, error) {
	var info model.CompanyInfo
	if err := r.getDocument(ctx, "company_info", &info); err != nil {
		return model.CompanyInfo{}, fmt.Errorf("get company info: %w", err)
	}
	return info, nil
}

// UpdateCompanyInfo заменяет справку о компании целиком.
func (r *PostgresRepository) UpdateCompanyInfo(ctx context.Context, info model.CompanyInfo) error {
	if err := r.putDocument(ctx, "company_info", info); err != nil {
		return fmt.Errorf("update company info: %w", err)
	}
	return nil
}

// GetFarmInfo возвращает справку для фермеров.
func (r *PostgresRepository) GetFarmInfo(ctx context.Context) (model.FarmInfo, error) {
	var info model.FarmInfo
	if err := r.getDocument(ctx, "farm_info", &info); err != nil {
		return model.FarmInfo{}, fmt.Errorf("get farm info: %w", err)
	}
	return info, nil
}

// UpdateFarmInfo заменяет справку для фермеров целиком.
func (r *PostgresRepository) UpdateFarmInfo(ctx context.Context, info model.FarmInfo) error {
	if err := r.putDocument(ctx, "farm_info", info); err != nil {
		return fmt.Errorf("update farm info: %w", err)
	}
	return nil
}

// table передаётся только из констант пакета.
func (r *PostgresRepository) getDocument(ctx context.Context, table string, dst any) error {
	var raw []byte

	err := withRetry(ctx, func() error {
		return r.pool.QueryRow(ctx, `SELECT data FROM `+table+` WHERE id = $1`, singletonID).Scan(&raw)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptRecord, table, err)
	}
	return nil
}

func (r *PostgresRepository) putDocument(ctx context.Context, table string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", table, err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO `+table+` (id, data) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		singletonID, raw,
	)
	return err
}

// ListNotices возвращает все объявления, новые первыми.
func (r *PostgresRepository) ListNotices(ctx context.Context) ([]model.Notice, error) {
	var notices []model.Notice

	err := withRetry(ctx, func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, content, date, is_active FROM notices ORDER BY date DESC`)
		if err != nil {
			return err
		}
		notices, err = collect(rows, scanNotice)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("select notices: %w", err)
	}

	return notices, nil
}

// CreateNotice сохраняет объявление. Дата назначается базой данных.
func (r *PostgresRepository) CreateNotice(ctx context.Context, n model.Notice) (model.Notice, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO notices (title, content, is_active) VALUES ($1, $2, $3)
		 RETURNING id, title, content, date, is_active`,
		n.Title, n.Content, n.IsActive,
	)

	created, err := scanNotice(row)
	if err != nil {
		return model.Notice{}, fmt.Errorf("insert notice: %w", err)
	}
	return created, nil
}

// UpdateNotice обновляет объявление и переустанавливает его дату на текущую.
func (r *PostgresRepository) UpdateNotice(ctx context.Context, n model.Notice) (model.Notice, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE notices SET title = $2, content = $3, is_active = $4, date = now()
		 WHERE id = $1
		 RETURNING id, title, content, date, is_active`,
		n.ID, n.Title, n.Content, n.IsActive,
	)

	updated, err := scanNotice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Notice{}, ErrNotFound
		}
		return model.Notice{}, fmt.Errorf("update notice: %w", err)
	}
	return updated, nil
}

// DeleteNotice удаляет объявление.
func (r *PostgresRepository) DeleteNotice(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "notices", id)
}

func (r *PostgresRepository) deleteByID(ctx context.Context, table string, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
