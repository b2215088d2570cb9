package weather

import (
	"sync"
	"testing"
)

func TestSequencer_LatestTokenIsCurrent(t *testing.T) {
	s := NewSequencer()
	if s.Current() != 0 {
		t.Fatalf("expected 0 before first Begin, got %d", s.Current())
	}

	first := s.Begin()
	if s.IsStale(first) {
		t.Fatal("first token should be current")
	}

	second := s.Begin()
	if second <= first {
		t.Fatalf("tokens not increasing: %d then %d", first, second)
	}
	if !s.IsStale(first) {
		t.Error("first token should be stale after second Begin")
	}
	if s.IsStale(second) {
		t.Error("second token should be current")
	}
}

func TestSequencer_ConcurrentBegin(t *testing.T) {
	s := NewSequencer()

	const n = 100
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		tokens = make(map[Token]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok := s.Begin()
			mu.Lock()
			tokens[tok] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(tokens) != n {
		t.Fatalf("expected %d distinct tokens, got %d", n, len(tokens))
	}
	current := 0
	for tok := range tokens {
		if !s.IsStale(tok) {
			current++
		}
	}
	if current != 1 || s.Current() != Token(n) {
		t.Errorf("expected exactly token %d current, got %d current tokens (latest %d)", n, current, s.Current())
	}
}
