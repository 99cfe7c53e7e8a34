package slickqueue

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/eapache/queue"
	"github.com/valyala/fastrand"
)

func TestReadLast(t *testing.T) {
	q, err := New[int32](4)
	if err != nil {
		t.Fatal(err)
	}
	if rec := q.ReadLast(); rec != nil {
		t.Fatalf("last record on empty queue = %v, want nil", rec)
	}

	for _, v := range []int32{1, 2, 3} {
		i := q.Reserve()
		*q.At(i) = v
		q.Publish(i)
	}
	rec := q.ReadLast()
	if rec == nil || len(rec) != 1 || rec[0] != 3 {
		t.Fatalf("last record = %v, want [3]", rec)
	}
}

func TestReadLastMultiSlot(t *testing.T) {
	q, err := New[byte](8)
	if err != nil {
		t.Fatal(err)
	}
	i, err := q.ReserveN(3)
	if err != nil {
		t.Fatal(err)
	}
	copy(q.Span(i, 3), "abc")
	q.PublishN(i, 3)

	if rec := q.ReadLast(); string(rec) != "abc" {
		t.Fatalf("last record = %q, want \"abc\"", rec)
	}
}

// Without a trusted last-published pointer the latest run is derived from
// the reservation word.
func TestReadLastLegacy(t *testing.T) {
	q, err := New[int32](4)
	if err != nil {
		t.Fatal(err)
	}
	q.lastPubValid = false

	if rec := q.ReadLast(); rec != nil {
		t.Fatalf("legacy last record on empty queue = %v, want nil", rec)
	}

	i := q.Reserve()
	*q.At(i) = 7
	q.Publish(i)
	rec := q.ReadLast()
	if rec == nil || rec[0] != 7 {
		t.Fatalf("legacy last record = %v, want [7]", rec)
	}

	i = q.Reserve()
	*q.At(i) = 9
	q.Publish(i)
	rec = q.ReadLast()
	if rec == nil || rec[0] != 9 {
		t.Fatalf("legacy last record = %v, want [9]", rec)
	}
}

func TestReadSharedSequential(t *testing.T) {
	q, err := New[int32](4)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []int32{5, 12, 23} {
		i := q.Reserve()
		*q.At(i) = v
		q.Publish(i)
	}

	var cursor atomic.Uint64
	for _, want := range []int32{5, 12, 23} {
		rec := q.ReadShared(&cursor)
		if rec == nil || rec[0] != want {
			t.Fatalf("shared read = %v, want [%d]", rec, want)
		}
	}
	if rec := q.ReadShared(&cursor); rec != nil {
		t.Fatalf("shared read past head = %v, want nil", rec)
	}
	if got := cursor.Load(); got != 3 {
		t.Fatalf("shared cursor = %d, want 3", got)
	}
}

// Overrun accounting on the shared cursor happens only when the claim
// commits.
func TestReadSharedLossyOverwrite(t *testing.T) {
	q, err := New[int32](2)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []int32{10, 20, 30} {
		i := q.Reserve()
		*q.At(i) = v
		q.Publish(i)
	}

	var cursor atomic.Uint64
	rec := q.ReadShared(&cursor)
	if rec == nil || rec[0] != 30 {
		t.Fatalf("shared read after overwrite = %v, want [30]", rec)
	}
	if got := cursor.Load(); got != 3 {
		t.Fatalf("shared cursor = %d, want 3", got)
	}
	if got := q.LossCount(); got != 2 {
		t.Fatalf("loss count = %d, want 2", got)
	}
}

func TestReadSharedResetRewind(t *testing.T) {
	q, err := New[int32](4)
	if err != nil {
		t.Fatal(err)
	}
	q.control[3].dataIndex.Store(7)
	q.control[3].size.Store(1)

	var cursor atomic.Uint64
	cursor.Store(7)
	if rec := q.ReadShared(&cursor); rec != nil {
		t.Fatalf("shared read during reset transient = %v, want nil", rec)
	}
	if got := cursor.Load(); got != 0 {
		t.Fatalf("shared cursor = %d, want 0 after rewind", got)
	}
}

// Readers sharing one cursor split the stream: every record is claimed by
// exactly one of them.
func TestReadSharedWorkStealing(t *testing.T) {
	const (
		capacity = 1 << 10
		N        = 200
		readers  = 3
	)

	q, err := New[int64](capacity)
	if err != nil {
		t.Fatal(err)
	}
	for i := int64(0); i < N; i++ {
		idx := q.Reserve()
		*q.At(idx) = i
		q.Publish(idx)
	}

	var cursor atomic.Uint64
	seen := make([]int32, N)

	var wg sync.WaitGroup
	wg.Add(readers)
	for r := 0; r < readers; r++ {
		go func() {
			defer wg.Done()
			for {
				rec := q.ReadShared(&cursor)
				if rec == nil {
					return
				}
				v := rec[0]
				if v < 0 || v >= N {
					t.Errorf("out-of-range value %d", v)
					return
				}
				atomic.AddInt32(&seen[v], 1)
			}
		}()
	}
	wg.Wait()

	for i := 0; i < N; i++ {
		if seen[i] != 1 {
			t.Fatalf("value %d claimed %d times (expected 1)", i, seen[i])
		}
	}
	if got := cursor.Load(); got != N {
		t.Fatalf("final shared cursor = %d, want %d", got, N)
	}
}

// The private-cursor read path delivers exactly the producer's sequence; a
// plain FIFO tracks the expected order.
func TestReadInOrderAgainstFIFO(t *testing.T) {
	const N = 200

	q, err := New[int64](256)
	if err != nil {
		t.Fatal(err)
	}
	expected := queue.New()
	for i := 0; i < N; i++ {
		idx := q.Reserve()
		v := int64(fastrand.Uint32())
		*q.At(idx) = v
		q.Publish(idx)
		expected.Add(v)
	}

	var cursor uint64
	for expected.Length() > 0 {
		rec := q.Read(&cursor)
		if rec == nil {
			t.Fatalf("reader stalled with %d records outstanding", expected.Length())
		}
		want := expected.Remove().(int64)
		if rec[0] != want {
			t.Fatalf("expected %d, got %d (order violated)", want, rec[0])
		}
	}
	if cursor != N {
		t.Fatalf("cursor = %d, want %d", cursor, N)
	}
}
