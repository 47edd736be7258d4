package wallets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apetrovs/walletgate/internal/common"
	"github.com/apetrovs/walletgate/internal/dbx"
	"github.com/apetrovs/walletgate/internal/server/models"
)

// PostgresRepository owns its transactions: Add and SetPrimary take a
// row-level lock on the owning user, which serializes wallet mutations per
// user without blocking other users. The partial unique index on
// (user_id) WHERE is_primary backs the invariant at the schema level.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const walletColumns = `id, user_id, address, wallet_type, is_primary, created_at`

func scanWallet(row *sql.Row) (*models.Wallet, error) {
	w := &models.Wallet{}
	err := row.Scan(&w.ID, &w.UserID, &w.Address, &w.WalletType, &w.IsPrimary, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: address", common.ErrorConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return w, nil
}

// lockOwner takes a FOR UPDATE lock on the user row, establishing the
// per-user mutation order for the rest of the transaction.
func lockOwner(ctx context.Context, tx dbx.DBTX, userID int64) error {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Wallet{}
	for rows.Next() {
		w := &models.Wallet{}
		if err := rows.Scan(&w.ID, &w.UserID, &w.Address, &w.WalletType, &w.IsPrimary, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Add(ctx context.Context, userID int64, address, walletType string) (*models.Wallet, error) {
	var wallet *models.Wallet

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockOwner(ctx, tx, userID); err != nil {
			return err
		}

		// With the owner locked, the count cannot change underneath us, so
		// "first wallet becomes primary" is race-free.
		var count int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM wallets WHERE user_id = $1`, userID).Scan(&count); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		query :=
			`INSERT INTO wallets (user_id, address, wallet_type, is_primary)
			 VALUES ($1, $2, $3, $4)
			 RETURNING ` + walletColumns

		var err error
		wallet, err = scanWallet(tx.QueryRowContext(ctx, query, userID, address, walletType, count == 0))
		return err
	})
	if err != nil {
		return nil, err
	}

	return wallet, nil
}

func (r *PostgresRepository) SetPrimary(ctx context.Context, userID, walletID int64) (bool, error) {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockOwner(ctx, tx, userID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE wallets SET is_primary = FALSE WHERE user_id = $1 AND is_primary`, userID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE wallets SET is_primary = TRUE WHERE id = $1 AND user_id = $2`, walletID, userID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if affected == 0 {
			// Roll the whole transaction back so the previous primary
			// survives; committing here would leave the user with none.
			return common.ErrorNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, walletID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wallets WHERE id = $1 AND user_id = $2`, walletID, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}
