//go:build slickqueue_norelax

package slickqueue

func cpuRelax() {}
