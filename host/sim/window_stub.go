//go:build !tinygo && !cgo

package sim

import "errors"

func RunWindow(_ *Machine, _ string) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
