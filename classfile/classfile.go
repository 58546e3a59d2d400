package classfile

import "fmt"

type Header struct {
	Magic        uint32
	MinorVersion uint16
	MajorVersion uint16
}

// JavaVersion maps the major version to the Java release that introduced it,
// e.g. 52 to "8". Unknown majors render as "?".
func (h Header) JavaVersion() string {
	switch {
	case h.MajorVersion >= 49:
		return fmt.Sprintf("%d", h.MajorVersion-44)
	case h.MajorVersion >= 45:
		return fmt.Sprintf("1.%d", h.MajorVersion-44)
	default:
		return "?"
	}
}

// ClassFile is the part of a class file this package decodes: the header
// and the constant pool. Unparsed counts the bytes that follow the pool
// (access flags, fields, methods, attributes).
type ClassFile struct {
	Header
	ConstantPool *ConstantPool
	Unparsed     int
}

func (cf *ClassFile) Version() string {
	return fmt.Sprintf("%d.%d", cf.MajorVersion, cf.MinorVersion)
}
