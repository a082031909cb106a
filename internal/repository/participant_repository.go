package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "fmt"

    "github.com/iliyamo/planet-stamp-roulette/internal/model"
)

// ParticipantRepo is the stamp ledger: it creates participant rows lazily
// and records which stamp locations each participant has collected.  Stamp
// merging is pushed into the database as a single statement so that
// concurrent submissions for different locations by the same participant
// can never lose each other's updates.
type ParticipantRepo struct {
    db *sql.DB
}

// NewParticipantRepo returns a new ParticipantRepo bound to the given database.
func NewParticipantRepo(db *sql.DB) *ParticipantRepo { return &ParticipantRepo{db: db} }

// Register creates the participant with an empty stamp set when absent.
// It is idempotent: an existing row is left untouched, preserving any
// collected stamps and redemption state.
func (r *ParticipantRepo) Register(ctx context.Context, userID string) error {
    const q = `INSERT INTO participants (user_id, stamps, is_redeemed, registration_date)
               VALUES (?, '{}', 0, UTC_TIMESTAMP())
               ON DUPLICATE KEY UPDATE user_id = user_id`
    _, err := r.db.ExecContext(ctx, q, userID)
    return err
}

// CollectStamp marks locationID as collected for userID, creating the row
// on first contact.  The merge runs inside one INSERT ... ON DUPLICATE KEY
// UPDATE statement using JSON_MERGE_PATCH, which makes the read-modify-write
// atomic per participant.  Collecting the same location twice is a no-op.
func (r *ParticipantRepo) CollectStamp(ctx context.Context, userID, locationID string) error {
    patch, err := json.Marshal(map[string]bool{locationID: true})
    if err != nil {
        return fmt.Errorf("encode stamp patch: %w", err)
    }
    const q = `INSERT INTO participants (user_id, stamps, is_redeemed, registration_date)
               VALUES (?, ?, 0, UTC_TIMESTAMP())
               ON DUPLICATE KEY UPDATE
               stamps = JSON_MERGE_PATCH(COALESCE(stamps, '{}'), VALUES(stamps))`
    _, err = r.db.ExecContext(ctx, q, userID, string(patch))
    return err
}

// GetByID fetches a participant by its opaque identifier.  It returns
// sql.ErrNoRows when the participant has never been seen.
func (r *ParticipantRepo) GetByID(ctx context.Context, userID string) (*model.Participant, error) {
    const q = `SELECT user_id, stamps, prize_won_id, is_redeemed, redeem_code, registration_date
               FROM participants
               WHERE user_id = ?`
    var (
        p          model.Participant
        stampsJSON sql.NullString
        prizeWonID sql.NullInt64
        redeemCode sql.NullString
    )
    err := r.db.QueryRowContext(ctx, q, userID).Scan(
        &p.UserID, &stampsJSON, &prizeWonID, &p.IsRedeemed, &redeemCode, &p.RegistrationDate,
    )
    if err != nil {
        return nil, err
    }
    p.Stamps = map[string]bool{}
    if stampsJSON.Valid && stampsJSON.String != "" {
        if err := json.Unmarshal([]byte(stampsJSON.String), &p.Stamps); err != nil {
            return nil, fmt.Errorf("decode stamps for %s: %w", userID, err)
        }
    }
    if prizeWonID.Valid {
        id := prizeWonID.Int64
        p.PrizeWonID = &id
    }
    if redeemCode.Valid {
        code := redeemCode.String
        p.RedeemCode = &code
    }
    return &p, nil
}
