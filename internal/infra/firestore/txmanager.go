package firestore

import (
	"context"

	gfs "cloud.google.com/go/firestore"
)

type txKey struct{}

func withTx(ctx context.Context, tx *gfs.Transaction) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromContext(ctx context.Context) *gfs.Transaction {
	tx, _ := ctx.Value(txKey{}).(*gfs.Transaction)
	return tx
}

// TransactionManager выполняет функции внутри транзакции Firestore.
// Firestore сам повторяет транзакцию при конкурентном изменении прочитанных документов,
// поэтому fn должна быть идемпотентной и выполнять все чтения до записей.
type TransactionManager struct {
	client *gfs.Client
}

func NewTransactionManager(client *gfs.Client) *TransactionManager {
	return &TransactionManager{client: client}
}

// DoSerializable выполняет fn в транзакции; вложенный вызов переиспользует внешнюю
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.client.RunTransaction(ctx, func(ctx context.Context, tx *gfs.Transaction) error {
		return fn(withTx(ctx, tx))
	})
}

// DoReadOnly выполняет fn в read-only транзакции: все чтения видят один снимок
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.client.RunTransaction(ctx, func(ctx context.Context, tx *gfs.Transaction) error {
		return fn(withTx(ctx, tx))
	}, gfs.ReadOnly)
}
