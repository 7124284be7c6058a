//go:build !statsview

package statsview

import "log"

// Launch validates addr and reports ErrUnavailable.
func Launch(addr string, _ *log.Logger) (stop func(), err error) {
	if err := checkAddr(addr); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}
