// Package statsview serves the runner's memory and goroutine graphs while a
// cartridge runs. The server is only compiled into builds with the
// statsview tag:
//
//	go build -tags statsview ./cmd/avkrun
//
// Other builds get a Launch that reports ErrUnavailable.
package statsview
