package calendar

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonAvailability/pkg/psqlbuilder"
)

// Repository репозиторий календаря филиалов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBranchCalendar получает одобренные записи календаря филиала, отсортированные по дате
func (r *Repository) GetBranchCalendar(ctx context.Context, branchID string) ([]domain.CalendarEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"branch_id",
		"entry_date",
		"type",
		"title",
		"status",
		"special_open",
		"special_close",
	).
		From("branch_calendar").
		Where(squirrel.Eq{"branch_id": branchID, "status": domain.CalendarStatusApproved}).
		OrderBy("entry_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranchCalendar - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranchCalendar - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.CalendarEntry, 0)
	for rows.Next() {
		var (
			e            domain.CalendarEntry
			title        sql.NullString
			specialOpen  sql.NullString
			specialClose sql.NullString
		)
		if err := rows.Scan(
			&e.ID,
			&e.BranchID,
			&e.Date,
			&e.Type,
			&title,
			&e.Status,
			&specialOpen,
			&specialClose,
		); err != nil {
			return nil, fmt.Errorf("%w: GetBranchCalendar - scan row: %w", ErrScanRow, err)
		}

		e.Title = title.String
		if specialOpen.Valid && specialClose.Valid {
			e.SpecialHours = &domain.SpecialHours{Open: specialOpen.String, Close: specialClose.String}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBranchCalendar - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}
