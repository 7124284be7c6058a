//go:build statsview

package statsview

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// listenGrace is how long Launch waits for an immediate listen failure.
const listenGrace = 100 * time.Millisecond

// Launch starts the server on addr and returns a function that shuts it
// down. Failures to listen within a short grace period are returned; later
// ones go to logger.
func Launch(addr string, logger *log.Logger) (stop func(), err error) {
	if err := checkAddr(addr); err != nil {
		return nil, err
	}
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()

	errc := make(chan error, 1)
	go func() { errc <- mgr.Start() }()
	select {
	case err := <-errc:
		return nil, fmt.Errorf("statsview: %w", err)
	case <-time.After(listenGrace):
	}
	go func() {
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("statsview: %v", err)
		}
	}()
	return mgr.Stop, nil
}
