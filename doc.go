// Package slickqueue provides a lock-free, bounded, lossy ring queue for
// multiple producers and multiple consumers.
//
// Storage is either process-local or a named shared-memory segment, so
// independent processes can exchange fixed-size records through the same
// queue. Producers reserve a run of slots, write in place and publish;
// consumers poll with a private cursor, or share one atomic cursor for
// work-stealing. The queue never blocks and never exerts back-pressure:
// when producers outrun consumers, older records are overwritten and the
// readers skip forward, optionally counting what they lost.
//
//	q, _ := slickqueue.New[Tick](1 << 12)
//
//	// producer
//	i := q.Reserve()
//	*q.At(i) = Tick{Px: 101.25}
//	q.Publish(i)
//
//	// consumer
//	var cursor uint64
//	if rec := q.Read(&cursor); rec != nil {
//		handle(rec[0])
//	}
//
// Cross-process queues bind by segment name:
//
//	writer, _ := slickqueue.NewShared[Tick](1<<12, "ticks")
//	reader, _ := slickqueue.OpenShared[Tick]("ticks")
//
// The element type must be trivially copyable: no Go pointers, maps,
// slices or channels, since records live in raw (possibly shared) memory.
package slickqueue
