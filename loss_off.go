//go:build slickqueue_noloss

package slickqueue

const lossDetection = false
