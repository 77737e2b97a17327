package appointments

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAvailability/internal/domain"
	"github.com/m04kA/SMC-SalonAvailability/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonAvailability/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type passTx struct {
	calls     int
	readCalls int
}

func (p *passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

func (p *passTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	p.readCalls++
	return fn(ctx)
}

type recordedMetrics struct{ reasons []string }

func (m *recordedMetrics) RecordAutoCancel(reason string) { m.reasons = append(m.reasons, reason) }

type statusUpdate struct {
	id     string
	status domain.AppointmentStatus
	reason *string
	actor  *string
}

type fakeRepo struct {
	items     map[string]*domain.Appointment
	listErr   error
	updateErr map[string]error
	updates   []statusUpdate
}

func newFakeRepo(items ...*domain.Appointment) *fakeRepo {
	r := &fakeRepo{items: make(map[string]*domain.Appointment), updateErr: make(map[string]error)}
	for _, a := range items {
		r.items[a.ID] = a
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	result := make([]*domain.Appointment, 0)
	for _, a := range r.items {
		if filter.To != nil && !a.AppointmentDate.Before(*filter.To) {
			continue
		}
		if filter.CreatedBefore != nil && a.CreatedAt.After(*filter.CreatedBefore) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, a.Status) {
			continue
		}
		cp := *a
		result = append(result, &cp)
	}
	slices.SortFunc(result, func(a, b *domain.Appointment) int { return a.AppointmentDate.Compare(b.AppointmentDate) })
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus, reason, actor *string) error {
	if err := r.updateErr[id]; err != nil {
		return err
	}
	a, ok := r.items[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	a.Status = status
	r.updates = append(r.updates, statusUpdate{id: id, status: status, reason: reason, actor: actor})
	return nil
}

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, m *recordedMetrics) *Service {
	s := NewService(repo, &passTx{}, m, nopLogger{})
	s.timeProvider = fixedTime{now: now}
	return s
}

func TestService_GetByID(t *testing.T) {
	repo := newFakeRepo(&domain.Appointment{
		ID:              "a1",
		BranchID:        "b1",
		ClientName:      "Ana",
		AppointmentDate: now,
		Status:          domain.StatusPending,
		Assignment:      domain.SingleAssignment{StylistID: "s1"},
	})
	tx := &passTx{}
	s := NewService(repo, tx, nil, nopLogger{})
	s.timeProvider = fixedTime{now: now}

	got, err := s.GetByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, 1, tx.readCalls)
	assert.Zero(t, tx.calls)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, 60, got.DurationMinutes)
	require.NotNil(t, got.StylistID)
	assert.Equal(t, "s1", *got.StylistID)

	_, err = s.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_Cancel(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.AppointmentStatus
		reason  string
		wantErr error
	}{
		{name: "pending", status: domain.StatusPending, reason: "changed plans"},
		{name: "confirmed", status: domain.StatusConfirmed},
		{name: "already cancelled", status: domain.StatusCancelled},
		{name: "in service", status: domain.StatusInService, wantErr: ErrCannotCancel},
		{name: "completed", status: domain.StatusCompleted, wantErr: ErrCannotCancel},
		{name: "reason too long", status: domain.StatusPending, reason: string(make([]byte, 501)), wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(&domain.Appointment{ID: "a1", AppointmentDate: now, Status: tt.status})
			s := newTestService(repo, nil)

			err := s.Cancel(context.Background(), "a1", &models.CancelRequest{Reason: tt.reason, CancelledBy: "client"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.updates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCancelled, repo.items["a1"].Status)
		})
	}
}

func TestService_Cancel_StoresReasonAndActor(t *testing.T) {
	repo := newFakeRepo(&domain.Appointment{ID: "a1", AppointmentDate: now, Status: domain.StatusPending})
	s := newTestService(repo, nil)

	require.NoError(t, s.Cancel(context.Background(), "a1", &models.CancelRequest{Reason: "sick", CancelledBy: "client"}))

	require.Len(t, repo.updates, 1)
	assert.Equal(t, ptr.Ptr("sick"), repo.updates[0].reason)
	assert.Equal(t, ptr.Ptr("client"), repo.updates[0].actor)
}

func TestService_Cancel_NotFound(t *testing.T) {
	s := newTestService(newFakeRepo(), nil)

	err := s.Cancel(context.Background(), "missing", &models.CancelRequest{})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      string
		wantErr error
		updated bool
	}{
		{name: "confirm", from: domain.StatusPending, to: "confirmed", updated: true},
		{name: "start service", from: domain.StatusConfirmed, to: "in_service", updated: true},
		{name: "complete", from: domain.StatusInService, to: "completed", updated: true},
		{name: "same status", from: domain.StatusConfirmed, to: "confirmed"},
		{name: "skip step", from: domain.StatusPending, to: "completed", wantErr: ErrInvalidTransition},
		{name: "terminal", from: domain.StatusCompleted, to: "pending", wantErr: ErrInvalidTransition},
		{name: "unknown status", from: domain.StatusPending, to: "archived", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(&domain.Appointment{ID: "a1", AppointmentDate: now, Status: tt.from})
			s := newTestService(repo, nil)

			err := s.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{Status: tt.to, Actor: "admin"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.updated, len(repo.updates) == 1)
			assert.Equal(t, domain.AppointmentStatus(tt.to), repo.items["a1"].Status)
		})
	}
}

func TestService_UpdateStatus_DropsReasonUnlessCancelling(t *testing.T) {
	repo := newFakeRepo(&domain.Appointment{ID: "a1", AppointmentDate: now, Status: domain.StatusPending})
	s := newTestService(repo, nil)

	err := s.UpdateStatus(context.Background(), "a1", &models.UpdateStatusRequest{
		Status: "confirmed",
		Actor:  "admin",
		Reason: ptr.Ptr("ignored"),
	})
	require.NoError(t, err)

	require.Len(t, repo.updates, 1)
	assert.Nil(t, repo.updates[0].reason)
	assert.Nil(t, repo.updates[0].actor)
}

func TestService_AutoCancelStale(t *testing.T) {
	repo := newFakeRepo(
		// прошедшая больше суток назад
		&domain.Appointment{ID: "past", AppointmentDate: now.Add(-30 * time.Hour), CreatedAt: now.Add(-48 * time.Hour), Status: domain.StatusPending},
		// создана больше 7 дней назад, время еще впереди
		&domain.Appointment{ID: "old", AppointmentDate: now.Add(48 * time.Hour), CreatedAt: now.Add(-8 * 24 * time.Hour), Status: domain.StatusPending},
		// подходит под оба условия
		&domain.Appointment{ID: "both", AppointmentDate: now.Add(-26 * time.Hour), CreatedAt: now.Add(-10 * 24 * time.Hour), Status: domain.StatusPending},
		// подтвержденные не трогаем
		&domain.Appointment{ID: "confirmed", AppointmentDate: now.Add(-30 * time.Hour), CreatedAt: now.Add(-48 * time.Hour), Status: domain.StatusConfirmed},
		// свежая
		&domain.Appointment{ID: "fresh", AppointmentDate: now.Add(24 * time.Hour), CreatedAt: now.Add(-time.Hour), Status: domain.StatusPending},
	)
	m := &recordedMetrics{}
	s := newTestService(repo, m)

	result, err := s.AutoCancelStale(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Checked)
	assert.Zero(t, result.Failed)
	assert.ElementsMatch(t, []models.AutoCancelled{
		{ID: "past", Reason: domain.AutoCancelReasonPastDue},
		{ID: "both", Reason: domain.AutoCancelReasonPastDue},
		{ID: "old", Reason: domain.AutoCancelReasonExpired},
	}, result.Cancelled)
	assert.ElementsMatch(t, []string{"past_due", "past_due", "expired"}, m.reasons)

	for _, u := range repo.updates {
		assert.Equal(t, domain.StatusCancelled, u.status)
		assert.Equal(t, ptr.Ptr(domain.SystemActor), u.actor)
	}
	assert.Equal(t, domain.StatusConfirmed, repo.items["confirmed"].Status)
	assert.Equal(t, domain.StatusPending, repo.items["fresh"].Status)
}

func TestService_AutoCancelStale_MaxPerRun(t *testing.T) {
	items := make([]*domain.Appointment, 0, 8)
	for i := 0; i < 8; i++ {
		items = append(items, &domain.Appointment{
			ID:              string(rune('a' + i)),
			AppointmentDate: now.Add(-time.Duration(30+i) * time.Hour),
			CreatedAt:       now.Add(-72 * time.Hour),
			Status:          domain.StatusPending,
		})
	}
	repo := newFakeRepo(items...)
	s := newTestService(repo, &recordedMetrics{})

	result, err := s.AutoCancelStale(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.AutoCancelMaxPerRun, result.Checked)
	assert.Len(t, result.Cancelled, domain.AutoCancelMaxPerRun)
}

func TestService_AutoCancelStale_ContinuesAfterFailure(t *testing.T) {
	repo := newFakeRepo(
		&domain.Appointment{ID: "a1", AppointmentDate: now.Add(-30 * time.Hour), Status: domain.StatusPending},
		&domain.Appointment{ID: "a2", AppointmentDate: now.Add(-31 * time.Hour), Status: domain.StatusPending},
	)
	repo.updateErr["a2"] = errors.New("write failed")
	s := newTestService(repo, &recordedMetrics{})

	result, err := s.AutoCancelStale(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Cancelled, 1)
	assert.Equal(t, "a1", result.Cancelled[0].ID)
}

func TestService_AutoCancelStale_ListError(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("db down")
	s := newTestService(repo, nil)

	_, err := s.AutoCancelStale(context.Background())
	assert.Error(t, err)
}

func TestService_RunAutoCancel_StopsOnCancel(t *testing.T) {
	repo := newFakeRepo(&domain.Appointment{ID: "a1", AppointmentDate: now.Add(-30 * time.Hour), Status: domain.StatusPending})
	s := newTestService(repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.RunAutoCancel(ctx, time.Hour)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunAutoCancel did not stop")
	}
}
