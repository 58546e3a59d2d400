package classfile

import (
	"fmt"
	"io"
	"os"
)

// reader wraps a Cursor with a sticky error so that a variant decoder can
// issue several reads and check once. After the first failure every read
// returns a zero value and consumes nothing.
type reader struct {
	c   *Cursor
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var v uint8
	v, r.err = r.c.ReadU1()
	return v
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var v uint16
	v, r.err = r.c.ReadU2()
	return v
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var v uint32
	v, r.err = r.c.ReadU4()
	return v
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	var v []byte
	v, r.err = r.c.ReadBytes(n)
	return v
}

func ParseFile(path string, opts ...DecodeOption) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

// Parse loads rd into memory, bounded by WithMaxSize, and decodes it.
func Parse(rd io.Reader, opts ...DecodeOption) (*ClassFile, error) {
	o := applyDecodeOptions(opts)
	c, err := ReadAllLimited(rd, o.maxSize)
	if err != nil {
		return nil, err
	}
	return decode(c, o)
}

// Decode reads the header and the constant pool from data. Bytes after the
// pool are left undecoded.
func Decode(data []byte, opts ...DecodeOption) (*ClassFile, error) {
	return decode(NewCursor(data), applyDecodeOptions(opts))
}

func decode(c *Cursor, o *decodeOptions) (*ClassFile, error) {
	header, err := readHeader(c, o)
	if err != nil {
		return nil, err
	}

	cp, err := decodePool(&reader{c: c}, o)
	if err != nil {
		return nil, fmt.Errorf("failed to read constant pool: %w", err)
	}

	return &ClassFile{
		Header:       header,
		ConstantPool: cp,
		Unparsed:     c.Remaining(),
	}, nil
}

// ReadHeader reads the magic number and the minor and major versions.
func ReadHeader(c *Cursor, opts ...DecodeOption) (Header, error) {
	return readHeader(c, applyDecodeOptions(opts))
}

func readHeader(c *Cursor, o *decodeOptions) (Header, error) {
	r := &reader{c: c}

	magic := r.readU4()
	if r.err != nil {
		return Header{}, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic && !o.skipMagicCheck {
		return Header{}, fmt.Errorf("%w: 0x%X (expected 0xCAFEBABE)", ErrBadMagic, magic)
	}

	h := Header{
		Magic:        magic,
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return Header{}, fmt.Errorf("failed to read version: %w", r.err)
	}
	return h, nil
}
