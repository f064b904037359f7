// Package coordsession defines the contract the connection loop uses to
// construct a coordination-service session once an endpoint has passed its
// DNS pre-check, plus a reference TCP implementation used by the demo
// binaries. Constructing and maintaining the actual
// wire-protocol session (watches, ZXIDs, heartbeats) is out of scope here:
// the loop only needs a constructor that returns a live session or fails,
// and a session that can shorten its own deadline.
package coordsession

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"time"
)

// Args describes the endpoint the connection loop wants a session for.
type Args struct {
	Address       string
	OriginalIndex int
	Secure        bool
}

// Session is what a successful Constructor call returns.
type Session interface {
	// SetClientSessionDeadline shortens the session so the caller
	// re-evaluates the balancer within [minSec, maxSec] seconds, returning
	// the actual value chosen.
	SetClientSessionDeadline(minSec, maxSec int) (actualSeconds int, err error)
	Close() error
}

// Constructor builds a Session for args, or fails. clusterArgs carries
// whatever cluster-wide settings (timeouts, auth, chroot path) the
// surrounding coordination client needs; the balancer and connection loop
// never interpret it.
type Constructor func(ctx context.Context, args Args, clusterArgs any) (Session, error)

// tcpSession is a minimal reference Session backed by a TCP connection to a
// coordination node. It performs a one-line handshake so cmd/fakecoord can
// simulate failures (refused/reset connections, bad banners) for the
// connection loop's offline-marking logic to react to.
type tcpSession struct {
	conn net.Conn
}

// NewTCPConstructor returns a Constructor that dials args.Address with
// dialTimeout and expects the peer to write back the literal banner
// "ZKOK\n" within handshakeTimeout; anything else is treated as a failed
// construction.
func NewTCPConstructor(dialTimeout, handshakeTimeout time.Duration) Constructor {
	return func(ctx context.Context, args Args, _ any) (Session, error) {
		dialer := &net.Dialer{Timeout: dialTimeout}
		c, err := dialer.DialContext(ctx, "tcp", args.Address)
		if err != nil {
			return nil, fmt.Errorf("dialing endpoint %d (%s): %w", args.OriginalIndex, args.Address, err)
		}

		_ = c.SetReadDeadline(time.Now().Add(handshakeTimeout))
		banner := make([]byte, 5)
		if _, err := readFull(c, banner); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("handshaking with endpoint %d (%s): %w", args.OriginalIndex, args.Address, err)
		}
		if string(banner) != "ZKOK\n" {
			_ = c.Close()
			return nil, fmt.Errorf("endpoint %d (%s) rejected handshake", args.OriginalIndex, args.Address)
		}
		_ = c.SetReadDeadline(time.Time{})
		return &tcpSession{conn: c}, nil
	}
}

func readFull(c net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := c.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// SetClientSessionDeadline picks a value uniformly from [minSec, maxSec]
// and returns it. The reference TCP session applies no deadline to its
// connection: the returned value is informational only.
func (s *tcpSession) SetClientSessionDeadline(minSec, maxSec int) (int, error) {
	if maxSec < minSec {
		return 0, fmt.Errorf("invalid fallback session lifetime range [%d,%d]", minSec, maxSec)
	}
	actual := minSec
	if maxSec > minSec {
		actual = minSec + rand.Intn(maxSec-minSec+1)
	}
	return actual, nil
}

func (s *tcpSession) Close() error {
	return s.conn.Close()
}
