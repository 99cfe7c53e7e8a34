//go:build !unix && !windows

package slickqueue

import "fmt"

// Platforms without named shared memory still get local queues; the shared
// constructors fail cleanly.
type segment struct {
	mem []byte
}

func createOrOpenSegment(name string, size int) (*segment, error) {
	return nil, fmt.Errorf("%w: named shared memory is not supported on this platform (%q)",
		ErrShmMapFailure, name)
}

func openSegment(name string) (*segment, error) {
	return nil, fmt.Errorf("%w: named shared memory is not supported on this platform (%q)",
		ErrShmMapFailure, name)
}

func (s *segment) close(unlink bool) error { return nil }
