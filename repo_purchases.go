package courses

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Purchases is the append-only purchase ledger. Records are never updated
// or deleted by this subsystem.
type Purchases interface {
	Record(ctx context.Context, purchase *Purchase) (*Purchase, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Purchase, error)
}

type purchasesRepo struct {
	db *bun.DB
}

var _ Purchases = (*purchasesRepo)(nil)

// NewPurchasesRepository creates a new ledger repository
func NewPurchasesRepository(db *bun.DB) Purchases {
	return &purchasesRepo{db: db}
}

func (r *purchasesRepo) Record(ctx context.Context, purchase *Purchase) (*Purchase, error) {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().Model(purchase).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not record purchase")
	}

	return purchase, nil
}

// ListByUser returns the user's purchases with each course payload joined
// in, newest first.
func (r *purchasesRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Purchase, error) {
	var records []*Purchase
	err := r.db.NewSelect().
		Model(&records).
		Relation("Course").
		Where("?TableAlias.user_id = ?", userID).
		OrderExpr("?TableAlias.created_at DESC").
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return []*Purchase{}, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not list purchases")
	}

	if records == nil {
		records = []*Purchase{}
	}

	return records, nil
}
