//go:build !slickqueue_noloss

package slickqueue

// lossDetection folds the reader-side overrun accounting into the read
// paths. Build with -tags slickqueue_noloss to compile it out.
const lossDetection = true
