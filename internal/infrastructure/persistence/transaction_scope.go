package persistence

import (
	"context"

	"github.com/marketplace/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements trade.TransactionScope using GORM transactions.
// Repositories handed to fn share the transaction; returning an error rolls
// everything back.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos trade.CheckoutRepos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(trade.CheckoutRepos{
			Orders:   NewGormOrderRepository(tx),
			Carts:    NewGormCartRepository(tx),
			Products: NewGormProductRepository(tx),
		})
	})
}

var _ trade.TransactionScope = (*GormTransactionScope)(nil)
