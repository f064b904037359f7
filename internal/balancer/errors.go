package balancer

import "errors"

// ErrBadArguments is returned by New when the host list is empty. It maps
// to ZBADARGUMENTS at the caller boundary.
var ErrBadArguments = errors.New("ZBADARGUMENTS: balancer requires at least one host")

// ErrAllConnectionTriesFailed is the internal sentinel a policy's
// SelectNext returns once no endpoint is ONLINE or UNDEF. It is never
// surfaced directly to a caller of the connection loop; conn.CreateClient
// translates it into one of the ZCONNECTIONLOSS flavors.
var ErrAllConnectionTriesFailed = errors.New("ALL_CONNECTION_TRIES_FAILED")
