package draw

import (
	"context"
	"errors"
	"testing"

	mrand "math/rand/v2"

	"github.com/iliyamo/planet-stamp-roulette/internal/model"
	"github.com/iliyamo/planet-stamp-roulette/internal/repository"
)

// fakeStore scripts the engine's persistence: each ListRemaining call
// serves the next snapshot, each RecordWinner call pops the next outcome.
type fakeStore struct {
	pools      [][]model.Prize
	listCalls  int
	commitErrs []error
	commits    []recordedCommit
}

type recordedCommit struct {
	userID    string
	prizeID   int64
	prizeName string
	code      string
}

func (f *fakeStore) ListRemaining(ctx context.Context) ([]model.Prize, error) {
	idx := f.listCalls
	if idx >= len(f.pools) {
		idx = len(f.pools) - 1
	}
	f.listCalls++
	return f.pools[idx], nil
}

func (f *fakeStore) RecordWinner(ctx context.Context, userID string, prizeID int64, prizeName, code string) error {
	f.commits = append(f.commits, recordedCommit{userID, prizeID, prizeName, code})
	if len(f.commitErrs) == 0 {
		return nil
	}
	err := f.commitErrs[0]
	f.commitErrs = f.commitErrs[1:]
	return err
}

func fixedRandom(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func staticCode(code string) func() (string, error) {
	return func() (string, error) { return code, nil }
}

func TestPickIndex_InjectedRandoms(t *testing.T) {
	// Pool A:1, B:3 -> cumulative shares 0.25, 1.0.
	pool := []model.Prize{
		{ID: 1, Name: "Gift A", RemainingQuantity: 1},
		{ID: 2, Name: "Gift B", RemainingQuantity: 3},
	}
	if got := pickIndex(pool, 0.2); got != 0 {
		t.Errorf("r=0.2: got index %d, want 0 (Gift A)", got)
	}
	if got := pickIndex(pool, 0.5); got != 1 {
		t.Errorf("r=0.5: got index %d, want 1 (Gift B)", got)
	}
	if got := pickIndex(pool, 0.0); got != 0 {
		t.Errorf("r=0.0: got index %d, want 0", got)
	}
	if got := pickIndex(pool, 0.25); got != 1 {
		t.Errorf("r=0.25: got index %d, want 1 (boundary belongs to next segment)", got)
	}
}

func TestPickIndex_RoundingFallsBackToLast(t *testing.T) {
	pool := []model.Prize{
		{ID: 1, RemainingQuantity: 1},
		{ID: 2, RemainingQuantity: 1},
		{ID: 3, RemainingQuantity: 1},
	}
	// Even if accumulation never catches r, a non-empty pool must yield a
	// winner: the last prize is the guaranteed fallback.
	if got := pickIndex(pool, 1.0); got != 2 {
		t.Errorf("fallback: got index %d, want 2", got)
	}
}

func TestPickIndex_Distribution(t *testing.T) {
	pool := []model.Prize{
		{ID: 1, RemainingQuantity: 1},
		{ID: 2, RemainingQuantity: 3},
	}
	rng := mrand.New(mrand.NewPCG(7, 13))
	const rounds = 100_000
	count := map[int]int{}
	for i := 0; i < rounds; i++ {
		count[pickIndex(pool, rng.Float64())]++
	}
	if p := float64(count[0]) / rounds; p < 0.23 || p > 0.27 {
		t.Errorf("prize 1 proportion %.4f want ~0.25", p)
	}
	if p := float64(count[1]) / rounds; p < 0.73 || p > 0.77 {
		t.Errorf("prize 2 proportion %.4f want ~0.75", p)
	}
}

func TestDraw_SinglePrizeAlwaysWins(t *testing.T) {
	store := &fakeStore{pools: [][]model.Prize{{
		{ID: 42, Name: "Only Gift", TotalQuantity: 1, RemainingQuantity: 1},
	}}}
	e := NewEngine(store, WithCodeGenerator(staticCode("AAAAAA")))
	for i := 0; i < 10; i++ {
		store.commits = nil
		res, err := e.Draw(context.Background(), "user-1")
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if res.PrizeID != 42 || res.PrizeName != "Only Gift" {
			t.Fatalf("draw %d: got prize %d %q", i, res.PrizeID, res.PrizeName)
		}
		if res.PoolIndex != 0 || res.PoolSize != 1 {
			t.Fatalf("draw %d: pool position %d/%d", i, res.PoolIndex, res.PoolSize)
		}
	}
}

func TestDraw_Exhausted(t *testing.T) {
	store := &fakeStore{pools: [][]model.Prize{{}}}
	e := NewEngine(store)
	_, err := e.Draw(context.Background(), "user-1")
	if !errors.Is(err, repository.ErrExhausted) {
		t.Fatalf("got %v, want ErrExhausted", err)
	}
	if len(store.commits) != 0 {
		t.Fatalf("no commit should be attempted on an empty pool")
	}
}

func TestDraw_AlreadyRedeemedIsTerminal(t *testing.T) {
	store := &fakeStore{
		pools:      [][]model.Prize{{{ID: 1, Name: "Gift A", RemainingQuantity: 2}}},
		commitErrs: []error{repository.ErrAlreadyRedeemed},
	}
	e := NewEngine(store)
	_, err := e.Draw(context.Background(), "winner")
	if !errors.Is(err, repository.ErrAlreadyRedeemed) {
		t.Fatalf("got %v, want ErrAlreadyRedeemed", err)
	}
	if len(store.commits) != 1 {
		t.Fatalf("already-redeemed must not be retried, got %d commits", len(store.commits))
	}
}

func TestDraw_RetriesOnceOnStockConflict(t *testing.T) {
	// First snapshot has the contested last unit of Gift A; the commit
	// loses the race, the retry sees only Gift B and succeeds.
	store := &fakeStore{
		pools: [][]model.Prize{
			{{ID: 1, Name: "Gift A", RemainingQuantity: 1}, {ID: 2, Name: "Gift B", RemainingQuantity: 1}},
			{{ID: 2, Name: "Gift B", RemainingQuantity: 1}},
		},
		commitErrs: []error{repository.ErrStockConflict},
	}
	e := NewEngine(store, WithRandom(fixedRandom(0.1, 0.1)), WithCodeGenerator(staticCode("ZZZZZZ")))
	res, err := e.Draw(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if res.PrizeID != 2 || res.PrizeName != "Gift B" {
		t.Fatalf("retry should win Gift B, got %d %q", res.PrizeID, res.PrizeName)
	}
	if store.listCalls != 2 {
		t.Fatalf("retry must re-read the pool, got %d reads", store.listCalls)
	}
	if len(store.commits) != 2 {
		t.Fatalf("expected 2 commit attempts, got %d", len(store.commits))
	}
}

func TestDraw_ConflictAfterRetrySurfaces(t *testing.T) {
	store := &fakeStore{
		pools:      [][]model.Prize{{{ID: 1, Name: "Gift A", RemainingQuantity: 1}}},
		commitErrs: []error{repository.ErrStockConflict, repository.ErrStockConflict},
	}
	e := NewEngine(store)
	_, err := e.Draw(context.Background(), "user-1")
	if !errors.Is(err, repository.ErrStockConflict) {
		t.Fatalf("got %v, want ErrStockConflict after retries", err)
	}
	if len(store.commits) != commitAttempts {
		t.Fatalf("expected %d commit attempts, got %d", commitAttempts, len(store.commits))
	}
}

func TestDraw_PassesGeneratedCodeToStore(t *testing.T) {
	store := &fakeStore{pools: [][]model.Prize{{{ID: 5, Name: "Gift", RemainingQuantity: 3}}}}
	e := NewEngine(store, WithCodeGenerator(staticCode("AB12CD")))
	res, err := e.Draw(context.Background(), "user-9")
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if res.RedeemCode != "AB12CD" {
		t.Fatalf("result code %q", res.RedeemCode)
	}
	c := store.commits[0]
	if c.userID != "user-9" || c.prizeID != 5 || c.prizeName != "Gift" || c.code != "AB12CD" {
		t.Fatalf("commit got %+v", c)
	}
}
