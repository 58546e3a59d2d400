package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
)

// DefaultMaxSize bounds how much input ReadAllLimited accepts when the caller
// passes a non-positive limit.
const DefaultMaxSize int64 = 16 << 20

// Cursor is a forward-only reader over a finite byte slice. Every read either
// consumes exactly the requested width or fails with ErrUnexpectedEOF and
// leaves the position untouched.
type Cursor struct {
	data []byte
	pos  int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// ReadAllLimited loads r into memory and returns a cursor over it. Inputs
// larger than limit are rejected before any decoding happens.
func ReadAllLimited(r io.Reader, limit int64) (*Cursor, error) {
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}
	return NewCursor(data), nil
}

// Offset is the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.pos }

// Remaining is the number of bytes not yet consumed.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Len is the total size of the underlying source.
func (c *Cursor) Len() int { return len(c.data) }

func (c *Cursor) need(n int) error {
	if n < 0 || c.Remaining() < n {
		return &ShortReadError{Offset: c.pos, Want: n, Have: c.Remaining()}
	}
	return nil
}

func (c *Cursor) ReadU1() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *Cursor) ReadU2() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *Cursor) ReadU4() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadBytes returns a copy of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	copy(buf, c.data[c.pos:c.pos+n])
	c.pos += n
	return buf, nil
}
