package model

import "time"

// Participant represents a row in the `participants` table.  A participant
// is identified by an opaque client-supplied token (device or session ID)
// and is created lazily on first stamp collection or first draw attempt.
// The stamps column is a JSON object mapping location IDs to true; merging
// happens inside the database so concurrent stamp submissions never lose
// updates.  IsRedeemed is monotonic: once true it is never reset, and no
// further draw may succeed for the participant.
//
// Fields:
//  UserID           – opaque participant identifier (primary key).
//  Stamps           – set of collected stamp locations.
//  PrizeWonID       – prize won by this participant (nil until a win).
//  IsRedeemed       – whether the participant already claimed a prize.
//  RedeemCode       – code issued at win time (nil until a win).
//  RegistrationDate – first contact timestamp.
type Participant struct {
    UserID           string          // participants.user_id
    Stamps           map[string]bool // participants.stamps (JSON)
    PrizeWonID       *int64          // participants.prize_won_id (nullable)
    IsRedeemed       bool            // participants.is_redeemed
    RedeemCode       *string         // participants.redeem_code (nullable)
    RegistrationDate time.Time       // participants.registration_date
}

// StampCount returns the number of distinct collected locations.  Entries
// explicitly set to false do not count.
func (p *Participant) StampCount() int {
    n := 0
    for _, ok := range p.Stamps {
        if ok {
            n++
        }
    }
    return n
}
