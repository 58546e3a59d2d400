package format

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Weltraumschaf/jba/classfile"
)

// DumpEncoder writes one labelled line per field: the label padded to
// NameWidth, the raw bytes in hex, and a decoded value.
//
//	constant_pool_count: 0 3 (d3)
//	constant #1:         7 0 2 (Class foo)
type DumpEncoder struct {
	w    io.Writer
	opts Options
	cf   *classfile.ClassFile
}

func NewDumpEncoder(w io.Writer, opts Options) *DumpEncoder {
	if opts.NameWidth <= 0 {
		opts.NameWidth = DefaultNameWidth
	}
	return &DumpEncoder{w: w, opts: opts}
}

func (e *DumpEncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *DumpEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	cf := e.cf

	if e.opts.Name != "" {
		fmt.Fprintf(&sb, "%s:\n%s\n", e.opts.Name, strings.Repeat("=", len(e.opts.Name)+1))
	}

	if !e.opts.PoolOnly {
		sb.WriteString(e.entry("magic:", binary.BigEndian.AppendUint32(nil, cf.Magic)))
		sb.WriteString("\n")
		e.writeU2(&sb, "minor_version:", cf.MinorVersion)
		e.writeU2(&sb, "major_version:", cf.MajorVersion)
	}

	cp := cf.ConstantPool
	e.writeU2(&sb, "constant_pool_count:", cp.Count)
	for _, entry := range cp.Entries {
		raw, err := entry.AppendBinary(nil)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "%s (%s %s)\n", e.entry(fmt.Sprintf("constant #%d:", entry.Index), raw), entry.Tag(), describeEntry(cp, entry))
	}

	return []byte(sb.String()), nil
}

func (e *DumpEncoder) writeU2(sb *strings.Builder, name string, v uint16) {
	fmt.Fprintf(sb, "%s (d%d)\n", e.entry(name, binary.BigEndian.AppendUint16(nil, v)), v)
}

func (e *DumpEncoder) entry(name string, raw []byte) string {
	return padName(name, e.opts.NameWidth) + formatBytesAsHex(raw)
}

func describeEntry(cp *classfile.ConstantPool, entry classfile.ConstantPoolEntry) string {
	if u, ok := entry.Info.(*classfile.ConstantUtf8Info); ok {
		if u.Err != nil {
			return strconv.Quote(u.Value) + " invalid"
		}
		return strconv.Quote(u.Value)
	}
	return cp.Describe(entry.Index)
}

func formatBytesAsHex(raw []byte) string {
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = fmt.Sprintf("%X", b)
	}
	return strings.Join(parts, " ")
}

// padName right-pads name to width. Longer names are kept whole.
func padName(name string, width int) string {
	if len(name) >= width {
		return name
	}
	return name + strings.Repeat(" ", width-len(name))
}
