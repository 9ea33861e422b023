package repository

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/shopbill/billing-api/internal/domain/repository"
)

type txKey struct{}

// dbFromContext returns the transaction handle placed in the context by
// txManager.InTx, or the fallback connection when no transaction is open.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager backed by the given connection.
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

func (m *txManager) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
