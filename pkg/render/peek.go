package render

import "iter"

// Peeker adds one-token lookahead to a pull-based iterator. It holds at
// most one buffered item; Next drains the buffer before pulling from the
// underlying sequence, so Peek and Next may be interleaved arbitrarily,
// including across recursive re-entry on a shared instance.
type Peeker[T any] struct {
	next func() (T, bool)
	stop func()
	buf  *T
}

// NewPeeker wraps a one-shot sequence. Call Stop when done if the sequence
// might not be fully consumed.
func NewPeeker[T any](seq iter.Seq[T]) *Peeker[T] {
	next, stop := iter.Pull(seq)
	return &Peeker[T]{next: next, stop: stop}
}

// Next consumes and returns the next item. The second result is false once
// the sequence is exhausted.
func (p *Peeker[T]) Next() (T, bool) {
	if p.buf != nil {
		v := *p.buf
		p.buf = nil
		return v, true
	}
	return p.next()
}

// Peek returns the next item without consuming it. Repeated calls return
// the same value until Next is called.
func (p *Peeker[T]) Peek() (T, bool) {
	if p.buf == nil {
		v, ok := p.next()
		if !ok {
			var zero T
			return zero, false
		}
		p.buf = &v
	}
	return *p.buf, true
}

// Stop releases the underlying sequence.
func (p *Peeker[T]) Stop() {
	p.stop()
}
