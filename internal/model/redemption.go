package model

import "time"

// Redemption represents a row in the append-only `redemptions` audit table.
// One row is inserted per successful draw, inside the same transaction that
// marks the winner and decrements stock.  The prize name is denormalized so
// the history stays accurate even if a prize is later renamed or removed.
// Rows are never updated or deleted.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – participant who won.
//  PrizeID        – prize that was won.
//  PrizeName      – prize label at the time of the win.
//  RedemptionDate – server-assigned commit timestamp.
type Redemption struct {
    ID             int64     // redemptions.id
    UserID         string    // redemptions.user_id
    PrizeID        int64     // redemptions.prize_id
    PrizeName      string    // redemptions.prize_name
    RedemptionDate time.Time // redemptions.redemption_date
}
