// Package draw contains the campaign's core decision logic: the pure
// eligibility evaluator and the stock-weighted prize draw engine.
package draw

import "github.com/iliyamo/planet-stamp-roulette/internal/model"

// Reasons returned to the client when a participant may not spin.  The
// spin endpoint re-checks redemption state itself as defense in depth; the
// evaluator is the advisory "can I spin" answer shown before the attempt.
const (
    ReasonNoStamps        = "no stamps collected yet"
    ReasonAlreadyRedeemed = "already redeemed"
    ReasonIncomplete      = "incomplete collection"
)

// Decision is the outcome of an eligibility evaluation.  Reason is empty
// when Eligible is true.
type Decision struct {
    Eligible bool
    Reason   string
}

// Evaluate decides whether a participant may spin, given the participant
// row (nil when the participant has never been seen) and the configured
// total stamp count.  The rules, in order:
//
//   - unknown participant: not eligible, no stamps collected yet
//   - already redeemed: not eligible, terminal
//   - fewer than totalStamps distinct stamps: not eligible, incomplete
//   - otherwise eligible
//
// Duplicate stamp collections were already collapsed by the ledger, so the
// distinct count is simply the number of true entries.
func Evaluate(p *model.Participant, totalStamps int) Decision {
    if p == nil {
        return Decision{Eligible: false, Reason: ReasonNoStamps}
    }
    if p.IsRedeemed {
        return Decision{Eligible: false, Reason: ReasonAlreadyRedeemed}
    }
    if p.StampCount() < totalStamps {
        return Decision{Eligible: false, Reason: ReasonIncomplete}
    }
    return Decision{Eligible: true}
}
