package firestore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	gfs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
)

// Repository реализует репозитории филиалов, календаря, смен и записей поверх Firestore.
// Внутри TransactionManager.DoSerializable чтения и записи идут через транзакцию из контекста.
type Repository struct {
	client *gfs.Client
	loc    *time.Location
}

// NewRepository loc - часовой пояс салона, в котором метки времени превращаются в календарные дни
func NewRepository(client *gfs.Client, loc *time.Location) *Repository {
	return &Repository{client: client, loc: loc}
}

// GetBranch получает филиал по ID
func (r *Repository) GetBranch(ctx context.Context, id string) (*domain.Branch, error) {
	snap, err := r.get(ctx, r.client.Collection(collectionBranches).Doc(id))
	if isNotFound(err) {
		return nil, domain.ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranch id=%s: %w", ErrRead, id, err)
	}

	var doc branchDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: GetBranch id=%s: %w", ErrDecode, id, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

// GetBranchCalendar получает одобренные записи календаря филиала, отсортированные по дате.
// Фильтр по статусу выполняется в памяти, чтобы не требовать составной индекс.
func (r *Repository) GetBranchCalendar(ctx context.Context, branchID string) ([]domain.CalendarEntry, error) {
	q := r.client.Collection(collectionCalendar).Where("branchId", "==", branchID)

	entries := make([]domain.CalendarEntry, 0)
	err := r.each(ctx, q, func(snap *gfs.DocumentSnapshot) error {
		var doc calendarDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("%w: calendar id=%s: %w", ErrDecode, snap.Ref.ID, err)
		}
		if doc.Status != domain.CalendarStatusApproved {
			return nil
		}
		entries = append(entries, doc.toDomain(snap.Ref.ID, r.loc))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b domain.CalendarEntry) int {
		return a.Date.Compare(b.Date)
	})
	return entries, nil
}

// GetActiveScheduleConfiguration выбирает действующую на date конфигурацию смен филиала
func (r *Repository) GetActiveScheduleConfiguration(ctx context.Context, branchID string, date time.Time) (*domain.ScheduleConfiguration, error) {
	q := r.client.Collection(collectionSchedules).Where("branchId", "==", branchID)

	configs := make([]domain.ScheduleConfiguration, 0)
	err := r.each(ctx, q, func(snap *gfs.DocumentSnapshot) error {
		var doc scheduleDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("%w: schedule id=%s: %w", ErrDecode, snap.Ref.ID, err)
		}
		configs = append(configs, doc.toDomain(snap.Ref.ID, r.loc))
		return nil
	})
	if err != nil {
		return nil, err
	}

	active := domain.SelectActive(configs, date)
	if active == nil {
		return nil, domain.ErrScheduleNotFound
	}
	return active, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	snap, err := r.get(ctx, r.client.Collection(collectionAppointments).Doc(id))
	if isNotFound(err) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID id=%s: %w", ErrRead, id, err)
	}

	var doc appointmentDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: GetByID id=%s: %w", ErrDecode, id, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

// List получает записи по фильтру, отсортированные по времени начала
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	q := r.client.Collection(collectionAppointments).Query

	if filter.BranchID != nil {
		q = q.Where("branchId", "==", *filter.BranchID)
	}
	if filter.From != nil {
		q = q.Where("appointmentDate", ">=", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("appointmentDate", "<", *filter.To)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		if len(statuses) == 1 {
			q = q.Where("status", "==", statuses[0])
		} else {
			q = q.Where("status", "in", statuses)
		}
	}
	if filter.CreatedBefore != nil {
		q = q.Where("createdAt", "<=", *filter.CreatedBefore)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	appointments := make([]*domain.Appointment, 0)
	err := r.each(ctx, q, func(snap *gfs.DocumentSnapshot) error {
		var doc appointmentDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("%w: appointment id=%s: %w", ErrDecode, snap.Ref.ID, err)
		}
		appointments = append(appointments, doc.toDomain(snap.Ref.ID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(appointments, func(a, b *domain.Appointment) int {
		return a.AppointmentDate.Compare(b.AppointmentDate)
	})
	return appointments, nil
}

// Create сохраняет новую запись под apt.ID
func (r *Repository) Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	ref := r.client.Collection(collectionAppointments).Doc(apt.ID)
	doc := appointmentToDoc(apt)

	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = tx.Create(ref, doc)
	} else {
		_, err = ref.Create(ctx, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create id=%s: %w", ErrWrite, apt.ID, err)
	}
	return apt, nil
}

// UpdateStatus меняет статус записи; для отмены сохраняет причину, автора и время
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, reason, actor *string) error {
	ref := r.client.Collection(collectionAppointments).Doc(id)

	updates := []gfs.Update{
		{Path: "status", Value: string(status)},
		{Path: "updatedAt", Value: gfs.ServerTimestamp},
	}
	if status == domain.StatusCancelled {
		updates = append(updates,
			gfs.Update{Path: "cancellationReason", Value: reason},
			gfs.Update{Path: "cancelledBy", Value: actor},
			gfs.Update{Path: "cancelledAt", Value: gfs.ServerTimestamp},
		)
	}

	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = tx.Update(ref, updates)
	} else {
		_, err = ref.Update(ctx, updates)
	}
	if isNotFound(err) {
		return domain.ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus id=%s: %w", ErrWrite, id, err)
	}
	return nil
}

// Ping читает один документ филиала; пустая коллекция тоже считается доступной
func (r *Repository) Ping(ctx context.Context) error {
	return r.each(ctx, r.client.Collection(collectionBranches).Limit(1), func(*gfs.DocumentSnapshot) error {
		return nil
	})
}

func (r *Repository) get(ctx context.Context, ref *gfs.DocumentRef) (*gfs.DocumentSnapshot, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Get(ref)
	}
	return ref.Get(ctx)
}

// each обходит документы запроса, в транзакции - через неё
func (r *Repository) each(ctx context.Context, q gfs.Query, fn func(*gfs.DocumentSnapshot) error) error {
	var it *gfs.DocumentIterator
	if tx := txFromContext(ctx); tx != nil {
		it = tx.Documents(q)
	} else {
		it = q.Documents(ctx)
	}
	defer it.Stop()

	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRead, err)
		}
		if err := fn(snap); err != nil {
			return err
		}
	}
}
