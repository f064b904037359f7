package conn

import "errors"

// ErrConnectionLossDNS is returned by CreateClient when every candidate
// endpoint was exhausted and at least one DNS error was observed along the
// way.
var ErrConnectionLossDNS = errors.New("ZCONNECTIONLOSS: Cannot resolve any of provided ZooKeeper hosts due to DNS error")

// ErrConnectionLoss is returned by CreateClient when every candidate
// endpoint was exhausted without any DNS error being observed.
var ErrConnectionLoss = errors.New("ZCONNECTIONLOSS: Cannot use any of provided ZooKeeper nodes")
