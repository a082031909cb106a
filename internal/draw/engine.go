package draw

import (
    "context"
    "errors"
    "fmt"
    mrand "math/rand/v2"

    "github.com/iliyamo/planet-stamp-roulette/internal/model"
    "github.com/iliyamo/planet-stamp-roulette/internal/repository"
    "github.com/iliyamo/planet-stamp-roulette/internal/utils"
)

// Store is the persistence capability the engine needs: a snapshot of
// prizes that still have stock, and the atomic winner-recording commit.
// The production implementation is repository.PrizeRepo + repository.DrawStore;
// tests substitute fakes.
type Store interface {
    // ListRemaining returns prizes with remaining stock in ascending id order.
    ListRemaining(ctx context.Context) ([]model.Prize, error)
    // RecordWinner atomically commits a win.  It returns
    // repository.ErrAlreadyRedeemed when the participant already won and
    // repository.ErrStockConflict when the stock guard lost a race.
    RecordWinner(ctx context.Context, userID string, prizeID int64, prizeName, redeemCode string) error
}

// Result describes a successful draw.  PoolIndex and PoolSize locate the
// winning prize inside the with-stock snapshot the selection ran against;
// the HTTP layer derives the presentation-only roulette angle from them.
type Result struct {
    PrizeID    int64
    PrizeName  string
    RedeemCode string
    PoolIndex  int
    PoolSize   int
}

// Engine performs the stock-weighted prize draw.  Selection reads a
// possibly stale snapshot; the commit's guarded updates re-validate both
// redemption state and stock, so a lost race surfaces as a conflict that
// the engine retries once with a fresh snapshot.
type Engine struct {
    store   Store
    random  func() float64          // uniform in [0,1)
    newCode func() (string, error)  // redeem code generator
}

// Option customizes an Engine; used by tests to inject determinism.
type Option func(*Engine)

// WithRandom replaces the uniform random source.
func WithRandom(f func() float64) Option { return func(e *Engine) { e.random = f } }

// WithCodeGenerator replaces the redeem code generator.
func WithCodeGenerator(f func() (string, error)) Option {
    return func(e *Engine) { e.newCode = f }
}

// NewEngine constructs an Engine over the given store.
func NewEngine(store Store, opts ...Option) *Engine {
    e := &Engine{
        store:   store,
        random:  mrand.Float64,
        newCode: utils.NewRedeemCode,
    }
    for _, o := range opts {
        o(e)
    }
    return e
}

// commitAttempts bounds how many full selection+commit cycles a single
// Draw performs before surfacing the stock conflict.
const commitAttempts = 2

// Draw runs one complete draw for userID: snapshot, weighted selection,
// code generation, atomic commit.  On repository.ErrStockConflict the whole
// cycle repeats once against fresh stock; repository.ErrExhausted is
// returned when no prize has stock, repository.ErrAlreadyRedeemed when the
// participant already won.
func (e *Engine) Draw(ctx context.Context, userID string) (Result, error) {
    var lastErr error
    for attempt := 0; attempt < commitAttempts; attempt++ {
        prizes, err := e.store.ListRemaining(ctx)
        if err != nil {
            return Result{}, fmt.Errorf("load prize pool: %w", err)
        }
        if len(prizes) == 0 {
            return Result{}, repository.ErrExhausted
        }

        idx := pickIndex(prizes, e.random())
        winner := prizes[idx]

        code, err := e.newCode()
        if err != nil {
            return Result{}, fmt.Errorf("generate redeem code: %w", err)
        }

        err = e.store.RecordWinner(ctx, userID, winner.ID, winner.Name, code)
        if err == nil {
            return Result{
                PrizeID:    winner.ID,
                PrizeName:  winner.Name,
                RedeemCode: code,
                PoolIndex:  idx,
                PoolSize:   len(prizes),
            }, nil
        }
        if errors.Is(err, repository.ErrStockConflict) {
            lastErr = err
            continue
        }
        return Result{}, err
    }
    return Result{}, lastErr
}

// pickIndex selects a prize index weighted by remaining stock.  It walks
// the ordered pool accumulating remaining/total and picks the first prize
// where r falls below the cumulative share.  When floating-point
// accumulation never reaches 1.0, the last prize is the fallback so a
// non-empty pool always yields a winner.
func pickIndex(prizes []model.Prize, r float64) int {
    total := 0
    for _, p := range prizes {
        total += p.RemainingQuantity
    }
    cumulative := 0.0
    for i, p := range prizes {
        cumulative += float64(p.RemainingQuantity) / float64(total)
        if r < cumulative {
            return i
        }
    }
    return len(prizes) - 1
}
