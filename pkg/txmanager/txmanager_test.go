package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAvailability/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs  []*fakeTx
	opts []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestDoReadOnly_CommitAndRollback(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		assert.False(t, dbmetrics.CanLockRows(ctx))
		return nil
	})
	require.NoError(t, err)
	require.Len(t, b.txs, 1)
	assert.True(t, b.txs[0].committed)
	assert.True(t, b.opts[0].ReadOnly)

	boom := errors.New("boom")
	err = m.DoReadOnly(context.Background(), func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.True(t, b.txs[1].rolledBack)
	assert.False(t, b.txs[1].committed)
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)
	m.retryDelay = 0

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &pq.Error{Code: codeSerializationFailure, Message: "could not serialize access"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, sql.LevelSerializable, b.opts[0].Isolation)
	assert.True(t, b.txs[2].committed)
}

func TestDoSerializable_NestedReusesTransaction(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return m.DoReadOnly(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, b.txs, 1)
}

func TestDoSerializable_RetryDetection(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCalls int
	}{
		{
			name:      "wrapped serialization failure",
			err:       fmt.Errorf("%w: create: %w", errors.New("internal"), &pq.Error{Code: codeSerializationFailure}),
			wantCalls: 2,
		},
		{
			name:      "wrapped deadlock",
			err:       fmt.Errorf("list: %w", &pq.Error{Code: codeDeadlockDetected}),
			wantCalls: 2,
		},
		{
			name:      "other driver error",
			err:       fmt.Errorf("create: %w", &pq.Error{Code: "23505"}),
			wantCalls: 1,
		},
		{
			name:      "message alone is not enough",
			err:       errors.New("could not serialize access due to concurrent update"),
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTransactionManager(&fakeBeginner{})
			m.retryDelay = 0

			calls := 0
			err := m.DoSerializable(context.Background(), func(context.Context) error {
				calls++
				if calls == 1 {
					return tt.err
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantCalls == 1 {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
