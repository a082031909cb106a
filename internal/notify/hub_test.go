package notify

import (
	"sync"
	"testing"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	h := NewHub()
	a := h.Register()
	b := h.Register()
	if h.Count() != 2 {
		t.Fatalf("Count = %d, want 2", h.Count())
	}

	h.Broadcast()
	select {
	case <-a:
	default:
		t.Fatal("observer a received no signal")
	}
	select {
	case <-b:
	default:
		t.Fatal("observer b received no signal")
	}

	h.Unregister(a)
	if h.Count() != 1 {
		t.Fatalf("Count after unregister = %d, want 1", h.Count())
	}
	if _, ok := <-a; ok {
		t.Fatal("unregistered channel should be closed")
	}

	h.Broadcast()
	select {
	case _, ok := <-b:
		if !ok {
			t.Fatal("observer b closed unexpectedly")
		}
	default:
		t.Fatal("remaining observer received no signal")
	}
}

func TestHubBroadcastNeverBlocks(t *testing.T) {
	h := NewHub()
	ch := h.Register()

	// Nobody drains ch; repeated broadcasts must coalesce, not block.
	for i := 0; i < 100; i++ {
		h.Broadcast()
	}
	if len(ch) != 1 {
		t.Fatalf("pending signals = %d, want 1", len(ch))
	}
}

func TestHubUnregisterTwiceIsNoop(t *testing.T) {
	h := NewHub()
	ch := h.Register()
	h.Unregister(ch)
	h.Unregister(ch)
	h.Unregister(make(chan struct{}, 1))
	if h.Count() != 0 {
		t.Fatalf("Count = %d, want 0", h.Count())
	}
}

func TestHubConcurrentAccess(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				ch := h.Register()
				h.Broadcast()
				h.Unregister(ch)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 500; j++ {
			h.Broadcast()
		}
	}()
	wg.Wait()

	if h.Count() != 0 {
		t.Fatalf("Count = %d, want 0 after all observers left", h.Count())
	}
}
