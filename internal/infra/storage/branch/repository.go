package branch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonAvailability/pkg/psqlbuilder"
)

// dayHoursRow значение JSONB-колонки operating_hours по ключу дня недели
type dayHoursRow struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	IsOpen *bool  `json:"isOpen,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// Repository репозиторий филиалов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBranch получает филиал с часами работы
func (r *Repository) GetBranch(ctx context.Context, id string) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"address",
		"operating_hours",
		"created_at",
		"updated_at",
	).
		From("branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranch - build select query: %w", ErrBuildQuery, err)
	}

	var (
		b     domain.Branch
		hours []byte
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Name,
		&b.Address,
		&hours,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranch - scan branch: %w", ErrScanRow, err)
	}

	b.OperatingHours, err = decodeOperatingHours(hours)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranch - operating_hours: %w", ErrDecodeJSON, err)
	}

	return &b, nil
}

func decodeOperatingHours(raw []byte) (map[string]domain.DayHours, error) {
	result := make(map[string]domain.DayHours)
	if len(raw) == 0 {
		return result, nil
	}

	var rows map[string]dayHoursRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	for day, h := range rows {
		result[day] = domain.DayHours{Open: h.Open, Close: h.Close, IsOpen: h.IsOpen, Closed: h.Closed}
	}
	return result, nil
}
