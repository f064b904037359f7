package dnsprobe

import (
	"context"
	"errors"
	"net"
	"testing"
)

// fakeProber is a scripted Prober returning a fixed Result without a real
// lookup; it is used here to check that a test double satisfies Prober.
type fakeProber struct {
	result Result
	calls  int
}

func (f *fakeProber) Probe(ctx context.Context, address string) Result {
	f.calls++
	return f.result
}

func TestFakeProberSatisfiesInterface(t *testing.T) {
	var _ Prober = (*fakeProber)(nil)
	var _ Prober = (*ResolverProber)(nil)
}

func TestProbeEmptyHostIsTransient(t *testing.T) {
	p := NewResolverProber(nil)
	res := p.Probe(context.Background(), "")
	if !res.TransientError || res.OK || res.HostNotFound {
		t.Fatalf("Probe('') = %+v, want TransientError only", res)
	}
}

func TestNewResolverProberDefaultsResolver(t *testing.T) {
	p := NewResolverProber(nil)
	if p.resolver != net.DefaultResolver {
		t.Fatal("expected nil resolver to default to net.DefaultResolver")
	}
}

func TestDNSErrorMatchesErrorsAsTarget(t *testing.T) {
	notFound := &net.DNSError{Err: "no such host", IsNotFound: true}
	if !errors.As(error(notFound), new(*net.DNSError)) {
		t.Fatal("sanity: *net.DNSError must satisfy errors.As target")
	}
	_ = notFound
}
