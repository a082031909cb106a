package repository

import (
    "context"
    "database/sql"

    "golang.org/x/sync/errgroup"
)

// PrizeCount is one row of a prizes-given breakdown, grouped by the
// denormalized prize name from the redemption audit log.
type PrizeCount struct {
    PrizeName string `json:"prize_name"`
    Count     int    `json:"count"`
}

// InventoryRow is one row of the current inventory snapshot.
type InventoryRow struct {
    ID                int64  `json:"id"`
    Name              string `json:"name"`
    TotalQuantity     int    `json:"total_quantity"`
    RemainingQuantity int    `json:"remaining_quantity"`
}

// Stats is the composite served to the admin dashboard.  The five
// sub-queries behind it are independent and run concurrently; there is no
// cross-consistency guarantee beyond best-effort same instant.  The JSON
// field names match what the dashboard front-end consumes.
type Stats struct {
    DailyParticipants      int            `json:"dailyParticipants"`
    DailyPrizesGiven       []PrizeCount   `json:"dailyPrizesGiven"`
    DailyTotalGiven        int            `json:"dailyTotalGiven"`
    CumulativeParticipants int            `json:"cumulativeParticipants"`
    CumulativePrizesGiven  []PrizeCount   `json:"cumulativePrizesGiven"`
    CumulativeTotalGiven   int            `json:"cumulativeTotalGiven"`
    CurrentInventory       []InventoryRow `json:"currentInventory"`
}

// StatsRepo computes read-only rollups over participants, redemptions and
// prizes for the admin dashboard.
type StatsRepo struct {
    db *sql.DB
}

// NewStatsRepo returns a new StatsRepo bound to the given database.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Collect assembles the stats composite for the given date (YYYY-MM-DD).
// A date with zero activity yields zero counts and empty breakdown lists,
// not an error.  All five sub-queries run concurrently; the first error
// cancels the rest.
func (r *StatsRepo) Collect(ctx context.Context, date string) (*Stats, error) {
    stats := &Stats{
        DailyPrizesGiven:      make([]PrizeCount, 0),
        CumulativePrizesGiven: make([]PrizeCount, 0),
        CurrentInventory:      make([]InventoryRow, 0),
    }
    g, ctx := errgroup.WithContext(ctx)

    g.Go(func() error {
        const q = `SELECT COUNT(DISTINCT user_id) FROM participants WHERE DATE(registration_date) = ?`
        return r.db.QueryRowContext(ctx, q, date).Scan(&stats.DailyParticipants)
    })
    g.Go(func() error {
        const q = `SELECT prize_name, COUNT(*) FROM redemptions
                   WHERE DATE(redemption_date) = ?
                   GROUP BY prize_name ORDER BY prize_name`
        rows, total, err := r.prizeCounts(ctx, q, date)
        if err != nil {
            return err
        }
        stats.DailyPrizesGiven, stats.DailyTotalGiven = rows, total
        return nil
    })
    g.Go(func() error {
        const q = `SELECT COUNT(DISTINCT user_id) FROM participants`
        return r.db.QueryRowContext(ctx, q).Scan(&stats.CumulativeParticipants)
    })
    g.Go(func() error {
        const q = `SELECT prize_name, COUNT(*) FROM redemptions
                   GROUP BY prize_name ORDER BY prize_name`
        rows, total, err := r.prizeCounts(ctx, q)
        if err != nil {
            return err
        }
        stats.CumulativePrizesGiven, stats.CumulativeTotalGiven = rows, total
        return nil
    })
    g.Go(func() error {
        const q = `SELECT id, name, total_quantity, remaining_quantity FROM prizes ORDER BY id`
        rows, err := r.db.QueryContext(ctx, q)
        if err != nil {
            return err
        }
        defer rows.Close()
        for rows.Next() {
            var row InventoryRow
            if err := rows.Scan(&row.ID, &row.Name, &row.TotalQuantity, &row.RemainingQuantity); err != nil {
                return err
            }
            stats.CurrentInventory = append(stats.CurrentInventory, row)
        }
        return rows.Err()
    })

    if err := g.Wait(); err != nil {
        return nil, err
    }
    return stats, nil
}

// prizeCounts runs a grouped prize_name/count query and also returns the
// sum of all counts.
func (r *StatsRepo) prizeCounts(ctx context.Context, query string, args ...interface{}) ([]PrizeCount, int, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()
    out := make([]PrizeCount, 0)
    total := 0
    for rows.Next() {
        var pc PrizeCount
        if err := rows.Scan(&pc.PrizeName, &pc.Count); err != nil {
            return nil, 0, err
        }
        out = append(out, pc)
        total += pc.Count
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    return out, total, nil
}
