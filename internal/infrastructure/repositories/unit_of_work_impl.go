package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	domainRepos "skill-registry.backend/internal/domain/repositories"
)

type contextKey string

const (
	txKey   contextKey = "tx_db"
	lockKey contextKey = "tx_lock"
)

var commitTx = func(tx *gorm.DB) error {
	return tx.Commit().Error
}

// UnitOfWorkImpl implements UnitOfWork using GORM
type UnitOfWorkImpl struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new UnitOfWork
func NewUnitOfWork(db *gorm.DB) domainRepos.UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

// Do executes fn within one transaction. A transaction already present in ctx is reused,
// so nested calls join the outer scope. The transaction is rolled back on error or panic.
func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", classify(tx.Error))
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	txCtx := context.WithValue(ctx, txKey, tx)
	if err := fn(txCtx); err != nil {
		tx.Rollback()
		return err
	}

	if err := commitTx(tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to commit transaction: %w", classify(err))
	}
	return nil
}

// WithLock marks reads made with the returned context as SELECT ... FOR UPDATE.
func (u *UnitOfWorkImpl) WithLock(ctx context.Context) context.Context {
	return context.WithValue(ctx, lockKey, true)
}

func (u *UnitOfWorkImpl) GetDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return u.db
}

// GetDB returns the transaction stored in ctx, or fallback outside a unit of work.
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	return getLockedDB(ctx, fallback, "")
}

// getLockedDB is GetDB for joined reads: a locked context only locks rows of
// lockTable (FOR UPDATE OF), since Postgres refuses to lock the nullable side
// of an outer join.
func getLockedDB(ctx context.Context, fallback *gorm.DB, lockTable string) *gorm.DB {
	db := fallback
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		db = tx
	}
	if locked, _ := ctx.Value(lockKey).(bool); locked {
		locking := clause.Locking{Strength: "UPDATE"}
		if lockTable != "" {
			locking.Table = clause.Table{Name: lockTable}
		}
		db = db.Clauses(locking)
	}
	return db
}
