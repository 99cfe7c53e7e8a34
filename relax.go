//go:build !slickqueue_norelax

package slickqueue

import "runtime"

// cpuRelax backs off a failed CAS. Build with -tags slickqueue_norelax to
// spin without yielding.
func cpuRelax() {
	runtime.Gosched()
}
