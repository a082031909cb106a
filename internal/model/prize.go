package model

// Prize represents a row in the `prizes` table.  Prizes are provisioned
// before the campaign starts and afterwards only their quantities change:
// each successful draw decrements RemainingQuantity by exactly one, and an
// admin inventory update resets TotalQuantity and RemainingQuantity
// together.  At every committed state 0 <= RemainingQuantity <=
// TotalQuantity holds.
//
// Fields:
//  ID                – primary key identifier of the prize.
//  Name              – unique human-readable label.
//  TotalQuantity     – stock the campaign started (or was reset) with.
//  RemainingQuantity – units still available to be won.
type Prize struct {
    ID                int64  // prizes.id
    Name              string // prizes.name
    TotalQuantity     int    // prizes.total_quantity
    RemainingQuantity int    // prizes.remaining_quantity
}
