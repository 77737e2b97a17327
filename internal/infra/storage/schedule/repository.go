package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonAvailability/pkg/psqlbuilder"
)

// shiftRow смена в JSONB-колонке shifts: stylistID -> weekday -> {start, end}
type shiftRow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Repository репозиторий конфигураций смен
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций смен
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveScheduleConfiguration получает конфигурацию, действующую на дату date:
// активную, с самым поздним start_date <= date.
// Если такой нет, возвращает domain.ErrScheduleNotFound.
func (r *Repository) GetActiveScheduleConfiguration(ctx context.Context, branchID string, date time.Time) (*domain.ScheduleConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// start_date хранится как DATE, сравниваем с календарным днем без учета часового пояса
	day := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Select(
		"id",
		"branch_id",
		"name",
		"start_date",
		"is_active",
		"shifts",
		"created_at",
		"updated_at",
	).
		From("schedule_configurations").
		Where(squirrel.Eq{"branch_id": branchID, "is_active": true}).
		Where(squirrel.Expr("start_date <= ?::date", day)).
		OrderBy("start_date DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveScheduleConfiguration - build select query: %w", ErrBuildQuery, err)
	}

	var (
		cfg    domain.ScheduleConfiguration
		name   sql.NullString
		shifts []byte
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.BranchID,
		&name,
		&cfg.StartDate,
		&cfg.IsActive,
		&shifts,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveScheduleConfiguration - scan row: %w", ErrScanRow, err)
	}

	cfg.Name = name.String
	cfg.Shifts, err = decodeShifts(shifts)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveScheduleConfiguration - shifts: %w", ErrDecodeJSON, err)
	}

	return &cfg, nil
}

func decodeShifts(raw []byte) (map[string]map[string]domain.Shift, error) {
	result := make(map[string]map[string]domain.Shift)
	if len(raw) == 0 {
		return result, nil
	}

	var rows map[string]map[string]shiftRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	for stylistID, days := range rows {
		result[stylistID] = make(map[string]domain.Shift, len(days))
		for day, s := range days {
			result[stylistID][day] = domain.Shift{Start: s.Start, End: s.End}
		}
	}
	return result, nil
}
