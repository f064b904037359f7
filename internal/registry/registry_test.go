package registry

import "testing"

func TestAddAssignsDenseIDs(t *testing.T) {
	r := New()
	for i, addr := range []string{"a:2181", "b:2181", "c:2181"} {
		id := r.Add(addr, false)
		if id != i {
			t.Fatalf("Add(%q) = %d, want %d", addr, id, i)
		}
	}
	if r.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", r.Size())
	}
}

func TestInitialStatusIsUndef(t *testing.T) {
	r := New()
	id := r.Add("a:2181", false)
	if got := r.Status(id); got != StatusUndef {
		t.Fatalf("Status() = %v, want UNDEF", got)
	}
}

func TestMarkOnlineOffline(t *testing.T) {
	r := New()
	id := r.Add("a:2181", false)
	r.MarkOnline(id)
	if got := r.Status(id); got != StatusOnline {
		t.Fatalf("Status() = %v, want ONLINE", got)
	}
	r.MarkOffline(id)
	if got := r.Status(id); got != StatusOffline {
		t.Fatalf("Status() = %v, want OFFLINE", got)
	}
}

func TestResetOfflineOnlyTouchesOffline(t *testing.T) {
	r := New()
	off := r.Add("a:2181", false)
	on := r.Add("b:2181", false)
	undef := r.Add("c:2181", false)
	r.MarkOffline(off)
	r.MarkOnline(on)

	r.ResetOffline()

	if got := r.Status(off); got != StatusUndef {
		t.Fatalf("offline endpoint Status() = %v, want UNDEF", got)
	}
	if got := r.Status(on); got != StatusOnline {
		t.Fatalf("online endpoint Status() = %v, want ONLINE", got)
	}
	if got := r.Status(undef); got != StatusUndef {
		t.Fatalf("undef endpoint Status() = %v, want UNDEF", got)
	}
}

func TestIDsWithStatusAscending(t *testing.T) {
	r := New()
	for i := 0; i < 5; i++ {
		r.Add("h", false)
	}
	r.MarkOnline(3)
	r.MarkOnline(1)
	r.MarkOffline(4)

	got := r.IDsWithStatus(StatusOnline)
	want := []int{1, 3}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("IDsWithStatus(ONLINE) = %v, want %v", got, want)
	}
}

func TestAvailableCount(t *testing.T) {
	r := New()
	for i := 0; i < 4; i++ {
		r.Add("h", false)
	}
	r.MarkOnline(0)
	r.MarkOffline(1)
	// 2 and 3 stay UNDEF
	if got := r.AvailableCount(); got != 3 {
		t.Fatalf("AvailableCount() = %d, want 3 (1 online + 2 undef)", got)
	}
}

func TestGetUnknownID(t *testing.T) {
	r := New()
	r.Add("a:2181", false)
	if _, ok := r.Get(99); ok {
		t.Fatal("Get(99) ok = true, want false")
	}
}

func TestSecureFlagPreserved(t *testing.T) {
	r := New()
	id := r.Add("a:2181", true)
	ep, ok := r.Get(id)
	if !ok || !ep.Secure {
		t.Fatalf("Get(%d) = %+v, ok=%v; want Secure=true", id, ep, ok)
	}
}
