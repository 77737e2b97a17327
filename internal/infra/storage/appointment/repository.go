package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonAvailability/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"branch_id",
	"client_id",
	"client_name",
	"client_phone",
	"appointment_date",
	"duration_minutes",
	"status",
	"stylist_id",
	"services",
	"notes",
	"cancellation_reason",
	"cancelled_by",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись. ID генерирует вызывающий код.
// Если в контексте есть транзакция, вставка выполняется в ней.
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	stylistID, services, err := encodeAssignment(apt.Assignment)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %w", ErrEncodeServices, err)
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"branch_id",
			"client_id",
			"client_name",
			"client_phone",
			"appointment_date",
			"duration_minutes",
			"status",
			"stylist_id",
			"services",
			"notes",
		).
		Values(
			apt.ID,
			apt.BranchID,
			apt.ClientID,
			apt.ClientName,
			apt.ClientPhone,
			apt.AppointmentDate,
			apt.DurationMinutes,
			apt.Status,
			stylistID,
			services,
			apt.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&apt.CreatedAt, &apt.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return apt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.CanLockRows(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	apt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %w", ErrScanRow, err)
	}

	return apt, nil
}

// List получает записи по фильтру, отсортированные по времени начала.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельные бронирования
// одного мастера сериализовались.
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("appointments").
		OrderBy("appointment_date ASC")

	if filter.BranchID != nil {
		builder = builder.Where(squirrel.Eq{"branch_id": *filter.BranchID})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"appointment_date": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"appointment_date": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": filter.Statuses})
	}
	if filter.CreatedBefore != nil {
		builder = builder.Where(squirrel.LtOrEq{"created_at": *filter.CreatedBefore})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if dbmetrics.CanLockRows(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		apt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - %w", ErrScanRow, err)
		}
		appointments = append(appointments, apt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateStatus меняет статус записи. Для отмены заполняются причина, автор и время отмены.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, reason, actor *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status == domain.StatusCancelled {
		builder = builder.
			Set("cancellation_reason", reason).
			Set("cancelled_by", actor).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		apt         domain.Appointment
		stylistID   sql.NullString
		services    []byte
		cancelledAt sql.NullTime
	)

	err := row.Scan(
		&apt.ID,
		&apt.BranchID,
		&apt.ClientID,
		&apt.ClientName,
		&apt.ClientPhone,
		&apt.AppointmentDate,
		&apt.DurationMinutes,
		&apt.Status,
		&stylistID,
		&services,
		&apt.Notes,
		&apt.CancellationReason,
		&apt.CancelledBy,
		&cancelledAt,
		&apt.CreatedAt,
		&apt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	apt.Assignment, err = decodeAssignment(stylistID, services)
	if err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		apt.CancelledAt = &t
	}

	return &apt, nil
}
