// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios of the
// draw pipeline: a participant who already claimed a prize, a prize
// pool with no stock anywhere, and a guarded stock decrement that lost
// the race against a concurrent draw.
package repository

import "errors"

// ErrAlreadyRedeemed is returned when a draw commit finds that the
// participant has already won.  Handlers translate this into an HTTP
// 403 response; the condition is terminal and retrying never helps.
var ErrAlreadyRedeemed = errors.New("participant already redeemed a prize")

// ErrExhausted is returned when no prize has remaining stock.  Handlers
// translate this into an HTTP 400 response.
var ErrExhausted = errors.New("all prizes are exhausted")

// ErrStockConflict is returned when the guarded decrement affected zero
// rows because a concurrent draw took the last unit after selection.
// Callers may retry the whole selection+commit a bounded number of
// times before surfacing a 500.
var ErrStockConflict = errors.New("prize stock changed during commit")

// ErrPrizeNotFound is returned when an admin inventory update names a
// prize that does not exist.  Handlers translate this into 404.
var ErrPrizeNotFound = errors.New("prize not found")
