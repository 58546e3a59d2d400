package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/Weltraumschaf/jba/classfile"
)

// LineEncoder writes tab-separated records for grep and cut.
type LineEncoder struct {
	w    io.Writer
	opts Options
	cf   *classfile.ClassFile
}

func NewLineEncoder(w io.Writer, opts Options) *LineEncoder {
	return &LineEncoder{w: w, opts: opts}
}

func (e *LineEncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	cf := e.cf

	if !e.opts.PoolOnly {
		fmt.Fprintf(&sb, "class\t%s\t%08X\t%s\t%s\n", e.opts.Name, cf.Magic, cf.Version(), cf.JavaVersion())
	}

	cp := cf.ConstantPool
	fmt.Fprintf(&sb, "pool\t%d\t%d\n", cp.Count, cp.Len())
	for _, entry := range cp.Entries {
		fmt.Fprintf(&sb, "%d\t%d\t%s\t%s\n",
			entry.Index,
			entry.Offset,
			entry.Tag(),
			e.describe(cp, entry),
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) describe(cp *classfile.ConstantPool, entry classfile.ConstantPoolEntry) string {
	desc := describeEntry(cp, entry)
	if nat, ok := entry.Info.(*classfile.ConstantNameAndTypeInfo); ok {
		if source := classfile.DescribeType(cp.GetUtf8(nat.DescriptorIndex)); source != "" {
			desc += "\t" + source
		}
	}
	return desc
}
