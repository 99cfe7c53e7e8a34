package slickqueue

import "sync/atomic"

// Read polls the queue at the private cursor and returns the next record as
// an in-place view, or nil when nothing is published there yet. The cursor
// advances past the record on success.
//
// A reader that falls more than the queue size behind loses the overwritten
// records: the cursor jumps to the slot's current occupant and the skipped
// count is added to the loss counter.
func (q *Queue[T]) Read(cursor *uint64) []T {
	for {
		c := *cursor
		k := c & q.mask
		s := &q.control[k]
		index := s.dataIndex.Load()

		if index != invalidIndex && q.reservedNow() < index {
			// the queue was reset behind us
			*cursor = 0
			continue
		}
		if lossDetection && index != invalidIndex && index > c && index&q.mask == k {
			q.loss.Add(index - c)
		}
		if index == invalidIndex || index < c {
			// not published yet
			return nil
		}
		if index&q.mask != k {
			// the producer wrapped past the tail, skip the unused slots
			*cursor = index
			continue
		}
		n := s.size.Load()
		*cursor = index + uint64(n)
		return q.span(k, n)
	}
}

// ReadShared is Read over a cursor shared by several readers. Each record is
// claimed by a CAS on the cursor, so concurrent readers split the stream
// without duplicates. Loss is accounted only by the reader whose claim
// commits.
func (q *Queue[T]) ReadShared(cursor *atomic.Uint64) []T {
	for {
		c := cursor.Load()
		k := c & q.mask
		s := &q.control[k]
		index := s.dataIndex.Load()

		if index != invalidIndex && q.reservedNow() < index {
			// the queue was reset behind us
			cursor.Store(0)
			continue
		}
		if index == invalidIndex || index < c {
			// not published yet
			return nil
		}
		var overrun uint64
		if lossDetection && index > c && index&q.mask == k {
			overrun = index - c
		}
		if index&q.mask != k {
			// the producer wrapped past the tail, skip the unused slots
			cursor.CompareAndSwap(c, index)
			continue
		}
		n := s.size.Load()
		if cursor.CompareAndSwap(c, index+uint64(n)) {
			if overrun != 0 {
				q.loss.Add(overrun)
			}
			return q.span(k, n)
		}
		// another reader claimed the record, retry
		cpuRelax()
	}
}

// ReadLast returns a snapshot view of the most recently published record, or
// nil when nothing was ever published. The slot may be overwritten by a
// concurrent producer at any time; the view is best effort.
//
// When the handle bound to a segment without a valid header magic, the
// last-published pointer cannot be trusted and the record is derived from
// the reservation word instead.
func (q *Queue[T]) ReadLast() []T {
	if q.lastPubValid {
		last := q.hdr.lastPublished.Load()
		if last == invalidIndex {
			return nil
		}
		k := last & q.mask
		return q.span(k, q.control[k].size.Load())
	}

	// legacy: locate the latest run from the reservation word
	r := q.hdr.reserved.Load()
	index := reservedIndex(r)
	if index == 0 {
		return nil
	}
	n := reservedSize(r)
	return q.span((index-uint64(n))&q.mask, n)
}

// LossCount returns the number of records this handle's readers skipped due
// to overwrite. Zero when loss detection is compiled out.
func (q *Queue[T]) LossCount() uint64 {
	return q.loss.Load()
}
