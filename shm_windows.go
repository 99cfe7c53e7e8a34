//go:build windows

package slickqueue

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// segment is a named pagefile-backed mapping. Windows reclaims the mapping
// when the last handle closes, so close never needs an explicit unlink.
type segment struct {
	handle windows.Handle
	view   uintptr
	mem    []byte
}

func createOrOpenSegment(name string, size int) (*segment, error) {
	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("%w: segment name %q: %v", ErrShmMapFailure, name, err)
	}
	h, err := windows.CreateFileMapping(windows.InvalidHandle, nil,
		windows.PAGE_READWRITE, uint32(uint64(size)>>32), uint32(size), namep)
	if h == 0 {
		return nil, fmt.Errorf("%w: create mapping %q: %v", ErrShmMapFailure, name, err)
	}
	// err == ERROR_ALREADY_EXISTS means we attached to an existing mapping;
	// the init-state handshake decides who initializes either way.
	return mapView(h, name, uintptr(size))
}

func openSegment(name string) (*segment, error) {
	namep, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("%w: segment name %q: %v", ErrShmMapFailure, name, err)
	}
	h, err := windows.OpenFileMapping(windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, false, namep)
	if err != nil {
		return nil, fmt.Errorf("%w: open mapping %q: %v", ErrShmMapFailure, name, err)
	}
	return mapView(h, name, 0)
}

// mapView maps size bytes of the mapping, or the whole mapping when size is
// zero, in which case the actual extent is recovered from the view region.
func mapView(h windows.Handle, name string, size uintptr) (*segment, error) {
	view, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, 0, 0, size)
	if err != nil {
		windows.CloseHandle(h)
		return nil, fmt.Errorf("%w: map view of %q: %v", ErrShmMapFailure, name, err)
	}
	if size == 0 {
		var info windows.MemoryBasicInformation
		if err := windows.VirtualQuery(view, &info, unsafe.Sizeof(info)); err != nil {
			windows.UnmapViewOfFile(view)
			windows.CloseHandle(h)
			return nil, fmt.Errorf("%w: query view of %q: %v", ErrShmMapFailure, name, err)
		}
		size = info.RegionSize
	}
	return &segment{
		handle: h,
		view:   view,
		mem:    unsafe.Slice((*byte)(unsafe.Pointer(view)), size),
	}, nil
}

func (s *segment) close(unlink bool) error {
	var first error
	if s.view != 0 {
		if err := windows.UnmapViewOfFile(s.view); err != nil && first == nil {
			first = err
		}
		s.view = 0
		s.mem = nil
	}
	if s.handle != 0 {
		if err := windows.CloseHandle(s.handle); err != nil && first == nil {
			first = err
		}
		s.handle = 0
	}
	_ = unlink
	return first
}
