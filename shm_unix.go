//go:build unix

package slickqueue

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// segment is a named shared-memory mapping backed by a file under /dev/shm
// (or the temp directory where /dev/shm does not exist).
type segment struct {
	f    *os.File
	mem  []byte
	path string
}

func segmentPath(name string) string {
	if info, err := os.Stat("/dev/shm"); err == nil && info.IsDir() {
		return filepath.Join("/dev/shm", name)
	}
	return filepath.Join(os.TempDir(), name)
}

// createOrOpenSegment maps the named segment, creating the backing file when
// it does not exist. A fresh file is zero-filled, which is exactly the
// uninitialized header state the init handshake starts from.
func createOrOpenSegment(name string, size int) (*segment, error) {
	path := segmentPath(name)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrShmMapFailure, path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrShmMapFailure, path, err)
	}
	if st.Size() < int64(size) {
		if err := unix.Ftruncate(int(f.Fd()), int64(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: truncate %s to %d: %v", ErrShmMapFailure, path, size, err)
		}
	}
	return mapFile(f, path, size)
}

// openSegment maps an existing named segment at its current size.
func openSegment(name string) (*segment, error) {
	path := segmentPath(name)
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrShmMapFailure, path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", ErrShmMapFailure, path, err)
	}
	if st.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("%w: segment %s is empty", ErrShmMapFailure, path)
	}
	return mapFile(f, path, int(st.Size()))
}

func mapFile(f *os.File, path string, size int) (*segment, error) {
	mem, err := unix.Mmap(int(f.Fd()), 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrShmMapFailure, path, err)
	}
	return &segment{f: f, mem: mem, path: path}, nil
}

// close unmaps the segment. The owning handle also unlinks the name; live
// mappings in other processes survive the unlink.
func (s *segment) close(unlink bool) error {
	var first error
	if s.mem != nil {
		if err := unix.Munmap(s.mem); err != nil && first == nil {
			first = err
		}
		s.mem = nil
	}
	if s.f != nil {
		if err := s.f.Close(); err != nil && first == nil {
			first = err
		}
		s.f = nil
	}
	if unlink {
		if err := unix.Unlink(s.path); err != nil && first == nil {
			first = err
		}
	}
	return first
}
