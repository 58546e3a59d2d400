package classfile

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF   = errors.New("classfile: unexpected end of input")
	ErrUnrecognizedTag = errors.New("classfile: unrecognized constant pool tag")
	ErrInvalidUtf8     = errors.New("classfile: invalid modified UTF-8")
	ErrSizeMismatch    = errors.New("classfile: payload size mismatch")
	ErrBadMagic        = errors.New("classfile: bad magic number")
	ErrInputTooLarge   = errors.New("classfile: input too large")
)

// ShortReadError reports a read that needed more bytes than were left.
type ShortReadError struct {
	Offset int
	Want   int
	Have   int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("classfile: unexpected end of input at offset %d: need %d bytes, %d left", e.Offset, e.Want, e.Have)
}

func (e *ShortReadError) Unwrap() error { return ErrUnexpectedEOF }

type UnrecognizedTagError struct {
	Tag ConstantTag
}

func (e *UnrecognizedTagError) Error() string {
	return fmt.Sprintf("classfile: unrecognized constant pool tag %d", uint8(e.Tag))
}

func (e *UnrecognizedTagError) Unwrap() error { return ErrUnrecognizedTag }

// DecodeError locates a fatal failure inside the constant pool. Offset is the
// position of the entry's tag byte.
type DecodeError struct {
	Entry  uint16
	Offset int
	Tag    ConstantTag
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Entry == 0 {
		return fmt.Sprintf("constant pool count at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("constant pool entry #%d (tag %d) at offset %d: %v", e.Entry, uint8(e.Tag), e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Utf8Error marks the first malformed byte of a Utf8 constant.
type Utf8Error struct {
	Pos int
}

func (e *Utf8Error) Error() string {
	return fmt.Sprintf("classfile: invalid modified UTF-8 at byte %d", e.Pos)
}

func (e *Utf8Error) Unwrap() error { return ErrInvalidUtf8 }
