// Package format renders decoded class files. The classfile package only
// produces structured values; every textual or serialized view lives here.
package format

import (
	"fmt"
	"io"

	"github.com/Weltraumschaf/jba/classfile"
)

type Encoder interface {
	Encode(cf *classfile.ClassFile) error
}

// Options are shared by all encoders. Name is the file name shown as a
// title; PoolOnly drops the header.
type Options struct {
	Name      string
	NameWidth int
	PoolOnly  bool
}

const DefaultNameWidth = 21

var Names = []string{"dump", "line", "json", "yaml", "cbor"}

func New(name string, w io.Writer, opts Options) (Encoder, error) {
	if opts.NameWidth <= 0 {
		opts.NameWidth = DefaultNameWidth
	}
	switch name {
	case "dump":
		return NewDumpEncoder(w, opts), nil
	case "line":
		return NewLineEncoder(w, opts), nil
	case "json":
		return NewJSONEncoder(w, opts), nil
	case "yaml":
		return NewYAMLEncoder(w, opts), nil
	case "cbor":
		return NewCBOREncoder(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (expected dump, line, json, yaml, or cbor)", name)
	}
}
