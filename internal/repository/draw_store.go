package repository

import (
    "context"
    "database/sql"
    "fmt"
)

// DrawStore executes the winner-recording transaction.  The database is the
// atomicity boundary for the whole campaign: marking the winner, writing
// the audit row and decrementing stock either all happen or none do, and
// the two guarded updates close the races the optimistic selection phase
// leaves open (a participant winning twice, a prize going below zero).
type DrawStore struct {
    db *sql.DB
}

// NewDrawStore returns a new DrawStore bound to the given database.
func NewDrawStore(db *sql.DB) *DrawStore { return &DrawStore{db: db} }

// RecordWinner atomically commits a draw for userID against prizeID.
//
// Inside one transaction it
//  1. ensures the participant row exists (lazy creation on first draw),
//  2. marks the winner with a guarded update (`... AND is_redeemed = 0`);
//     zero affected rows means the participant already redeemed and the
//     whole commit aborts with ErrAlreadyRedeemed,
//  3. appends the redemption audit row with the denormalized prize name,
//  4. decrements the prize stock with a guarded update
//     (`... AND remaining_quantity > 0`); zero affected rows means a
//     concurrent draw took the last unit after selection and the commit
//     aborts with ErrStockConflict so the caller can re-select.
//
// The redeem-state check deliberately happens as an affected-rows guard on
// the same statement that records the win, not as a separate read: two
// concurrent commits for the same participant can therefore never both
// succeed.
func (s *DrawStore) RecordWinner(ctx context.Context, userID string, prizeID int64, prizeName, redeemCode string) error {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin draw tx: %w", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const ensure = `INSERT INTO participants (user_id, stamps, is_redeemed, registration_date)
                    VALUES (?, '{}', 0, UTC_TIMESTAMP())
                    ON DUPLICATE KEY UPDATE user_id = user_id`
    if _, err := tx.ExecContext(ctx, ensure, userID); err != nil {
        return fmt.Errorf("ensure participant: %w", err)
    }

    const win = `UPDATE participants
                 SET prize_won_id = ?, redeem_code = ?, is_redeemed = 1
                 WHERE user_id = ? AND is_redeemed = 0`
    res, err := tx.ExecContext(ctx, win, prizeID, redeemCode, userID)
    if err != nil {
        return fmt.Errorf("mark winner: %w", err)
    }
    if n, err := res.RowsAffected(); err != nil {
        return fmt.Errorf("mark winner: %w", err)
    } else if n == 0 {
        return ErrAlreadyRedeemed
    }

    const audit = `INSERT INTO redemptions (user_id, prize_id, prize_name, redemption_date)
                   VALUES (?, ?, ?, UTC_TIMESTAMP())`
    if _, err := tx.ExecContext(ctx, audit, userID, prizeID, prizeName); err != nil {
        return fmt.Errorf("insert redemption: %w", err)
    }

    const decrement = `UPDATE prizes
                       SET remaining_quantity = remaining_quantity - 1
                       WHERE id = ? AND remaining_quantity > 0`
    res, err = tx.ExecContext(ctx, decrement, prizeID)
    if err != nil {
        return fmt.Errorf("decrement stock: %w", err)
    }
    if n, err := res.RowsAffected(); err != nil {
        return fmt.Errorf("decrement stock: %w", err)
    } else if n == 0 {
        return ErrStockConflict
    }

    if err := tx.Commit(); err != nil {
        return fmt.Errorf("commit draw tx: %w", err)
    }
    committed = true
    return nil
}
