package balancer

import "testing"

func TestRandomSelectsOnlineOverUndef(t *testing.T) {
	b, err := New(PolicyRandom, []string{"a:2181", "b:2181", "c:2181"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.MarkOnline(1)

	for i := 0; i < 20; i++ {
		info, err := b.SelectNext()
		if err != nil {
			t.Fatalf("SelectNext: %v", err)
		}
		if info.ID != 1 {
			t.Fatalf("SelectNext().ID = %d, want 1 (the only ONLINE endpoint)", info.ID)
		}
		if info.Settings.UseFallbackSessionLifetime {
			t.Fatal("random policy must always report optimal lifetime")
		}
	}
}

func TestRandomResetsAndFailsWhenExhausted(t *testing.T) {
	b, err := New(PolicyRandom, []string{"a:2181", "b:2181"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.MarkOffline(0)
	b.MarkOffline(1)

	if _, err := b.SelectNext(); err != ErrAllConnectionTriesFailed {
		t.Fatalf("SelectNext() err = %v, want ErrAllConnectionTriesFailed", err)
	}

	// Exhaustion must have reset OFFLINE back to UNDEF.
	info, err := b.SelectNext()
	if err != nil {
		t.Fatalf("SelectNext after reset: %v", err)
	}
	if info.ID != 0 && info.ID != 1 {
		t.Fatalf("SelectNext().ID = %d, want 0 or 1", info.ID)
	}
}

func TestRandomHasNoBetterHost(t *testing.T) {
	b, _ := New(PolicyRandom, []string{"a:2181", "b:2181"}, nil)
	b.MarkOnline(1)
	if b.HasBetter(0) {
		t.Fatal("random policy must never report a better host")
	}
	if got := b.WorthChecking(nil); got != nil {
		t.Fatalf("WorthChecking() = %v, want nil", got)
	}
}

func TestBadArguments(t *testing.T) {
	if _, err := New(PolicyRandom, nil, nil); err != ErrBadArguments {
		t.Fatalf("New(empty hosts) err = %v, want ErrBadArguments", err)
	}
}
