package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	TxExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.True(t, CanLockRows(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
	assert.False(t, CanLockRows(ctx))

	roCtx := WithReadOnlyTx(ctx, tx)
	assert.True(t, IsInTransaction(roCtx))
	assert.False(t, CanLockRows(roCtx))
	assert.Same(t, tx, GetExecutor(roCtx, db))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT id FROM branches"))
	assert.Equal(t, "insert", operation("INSERT INTO appointments"))
	assert.Equal(t, "unknown", operation(""))
}

var _ DBExecutor = (*sql.DB)(nil)
