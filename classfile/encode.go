package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var ErrUtf8TooLong = errors.New("classfile: Utf8 constant longer than 65535 bytes")

// MarshalBinary encodes the pool in the layout DecodePool reads. Utf8
// entries are written from Raw, so a decoded pool encodes back to its input
// bytes.
func (cp *ConstantPool) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, cp.Size())
	buf = binary.BigEndian.AppendUint16(buf, cp.Count)
	for _, e := range cp.Entries {
		var err error
		if buf, err = e.AppendBinary(buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// AppendBinary appends the entry's tag byte and payload to b.
func (e ConstantPoolEntry) AppendBinary(b []byte) ([]byte, error) {
	if e.Info == nil {
		return b, fmt.Errorf("constant pool entry #%d has no payload", e.Index)
	}
	if u, ok := e.Info.(*ConstantUtf8Info); ok && len(u.Raw) > math.MaxUint16 {
		return b, fmt.Errorf("constant pool entry #%d: %w", e.Index, ErrUtf8TooLong)
	}
	b = append(b, byte(e.Tag()))
	return e.Info.appendPayload(b), nil
}

func EncodePool(w io.Writer, cp *ConstantPool) error {
	data, err := cp.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
