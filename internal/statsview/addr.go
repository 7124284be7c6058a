package statsview

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

var (
	ErrUnavailable = errors.New("statsview: not in this build (rebuild with -tags statsview)")
	ErrAddr        = errors.New("statsview: bad listen address")
)

// DefaultAddr is used when neither --statsview-addr nor AVK_STATSVIEW_ADDR
// is given.
const DefaultAddr = "localhost:12600"

// Path is where the graphs are mounted.
const Path = "/debug/statsview"

// checkAddr accepts host:port with a numeric port in 1..65535. An empty
// host listens on every interface.
func checkAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAddr, err)
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%w: port %q", ErrAddr, port)
	}
	return nil
}

// URL is the page a browser should open for a server on addr.
func URL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + Path
	}
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + Path
}
