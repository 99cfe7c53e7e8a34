package slickqueue

import "sync/atomic"

// The queue storage is one contiguous region with a fixed, byte-precise
// layout. For shared queues the region is a named segment mapped by several
// processes, so every field below is a raw byte offset and part of a
// cross-process ABI.
//
//	offset  size  field
//	0       8     reserved (atomic, packed index:48 | last reserve size:16)
//	8       4     capacity
//	12      4     element size
//	16      8     last published index (atomic)
//	24      4     header magic (atomic)
//	28      20    reserved padding
//	48      4     init state (atomic)
//	52      12    reserved padding
//	64      16*C  control array
//	64+16*C sizeof(E)*C  data array
const (
	headerSize = 64
	slotSize   = 16

	// 'SLQ1'
	headerMagic = 0x534C5131

	// invalidIndex marks a control slot that has never been published and
	// an empty last-published pointer.
	invalidIndex = ^uint64(0)
)

// init state cell values. A segment starts zeroed (uninitialized); the
// creator CASes it to initializing, builds the arrays and releases ready.
// Legacy marks segments written before the header magic existed.
const (
	stateUninit       = 0
	stateLegacy       = 1
	stateInitializing = 2
	stateReady        = 3
)

// header overlays the first 64 bytes of the region. Field order and the
// padding arrays must not change: Go lays this struct out exactly at the
// offsets above.
type header struct {
	reserved      atomic.Uint64 // packed reservation word
	capacity      uint32        // written once by the creator before ready
	elemSize      uint32        // written once by the creator before ready
	lastPublished atomic.Uint64 // highest published index, invalidIndex when none
	magic         atomic.Uint32
	_             [20]byte
	initState     atomic.Uint32
	_             [12]byte
}

// slot is one control cell. dataIndex holds the virtual index of the slot's
// occupant (controls visibility and overwrite detection), size the length of
// the reserved run that covered it.
type slot struct {
	dataIndex atomic.Uint64
	size      atomic.Uint32
	_         uint32
}

func isPowerOfTwo(v uint32) bool {
	return v != 0 && (v&(v-1)) == 0
}

// segmentSize is the number of bytes a queue of the given capacity and
// element size occupies, header included.
func segmentSize(capacity uint32, elemSize uintptr) int {
	return headerSize + int(capacity)*slotSize + int(capacity)*int(elemSize)
}
