package sink

// DefaultCapacity is the row-buffer bound used when none is configured.
// 100 rows keeps peak memory flat while amortizing file writes at
// sub-millisecond sampling intervals.
const DefaultCapacity = 100

// Buffer accumulates rows up to a fixed capacity and hands them to the sink
// in batches. Reaching capacity flushes automatically; callers flush
// explicitly on drain so cancellation never loses buffered rows.
type Buffer struct {
	sink     Sink
	capacity int
	rows     [][]string
}

func NewBuffer(s Sink, capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		sink:     s,
		capacity: capacity,
		rows:     make([][]string, 0, capacity),
	}
}

// Append adds one row, flushing first to the sink if that fills the buffer.
func (b *Buffer) Append(row []string) error {
	b.rows = append(b.rows, row)
	if len(b.rows) >= b.capacity {
		return b.Flush()
	}
	return nil
}

// Flush emits all buffered rows to the sink, then clears the buffer.
// No-op when empty. Rows are retained on sink failure.
func (b *Buffer) Flush() error {
	if len(b.rows) == 0 {
		return nil
	}
	if err := b.sink.AppendRows(b.rows); err != nil {
		return err
	}
	b.rows = b.rows[:0]
	return nil
}

// Len returns the number of currently buffered rows.
func (b *Buffer) Len() int { return len(b.rows) }
