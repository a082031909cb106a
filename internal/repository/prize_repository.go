package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/planet-stamp-roulette/internal/model"
)

// PrizeRepo provides read and inventory-update operations on the `prizes`
// table.  The per-draw stock decrement lives in DrawStore because it must
// run inside the winner-recording transaction; everything here is either a
// read or an admin-initiated reset.
type PrizeRepo struct {
    db *sql.DB
}

// NewPrizeRepo returns a new PrizeRepo bound to the given database.
func NewPrizeRepo(db *sql.DB) *PrizeRepo { return &PrizeRepo{db: db} }

// ListRemaining returns all prizes that still have stock, in ascending id
// order.  The stable order matters: the draw engine walks this list
// accumulating probabilities, and the roulette front-end derives segment
// angles from the same ordering.
func (r *PrizeRepo) ListRemaining(ctx context.Context) ([]model.Prize, error) {
    const q = `SELECT id, name, total_quantity, remaining_quantity
               FROM prizes
               WHERE remaining_quantity > 0
               ORDER BY id ASC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    prizes := make([]model.Prize, 0)
    for rows.Next() {
        var p model.Prize
        if err := rows.Scan(&p.ID, &p.Name, &p.TotalQuantity, &p.RemainingQuantity); err != nil {
            return nil, err
        }
        prizes = append(prizes, p)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return prizes, nil
}

// ResetQuantity sets both total_quantity and remaining_quantity of the
// named prize to newQuantity.  This is the admin inventory operation: a
// reset intentionally discards the previous counters, which is why the
// remaining<=total invariant is restated rather than preserved piecewise.
// ErrPrizeNotFound is returned when the name matches no row.
func (r *PrizeRepo) ResetQuantity(ctx context.Context, prizeName string, newQuantity int) error {
    const q = `UPDATE prizes
               SET total_quantity = ?, remaining_quantity = ?
               WHERE name = ?`
    res, err := r.db.ExecContext(ctx, q, newQuantity, newQuantity, prizeName)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrPrizeNotFound
    }
    return nil
}
