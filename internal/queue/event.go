// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into the offline audit log.
package queue

// PrizeRedeemedEvent is published after a draw commit succeeds.  It carries
// enough context for downstream consumers (audit log, analytics) without
// querying the primary database.  The redeem code travels with the event on
// purpose: the offline claim desk matches codes against this log.
type PrizeRedeemedEvent struct {
    UserID     string `json:"user_id"`
    PrizeID    int64  `json:"prize_id"`
    PrizeName  string `json:"prize_name"`
    RedeemCode string `json:"redeem_code"`
    RedeemedAt string `json:"redeemed_at"`
}
