package format

import (
	"encoding/json"
	"io"

	"github.com/Weltraumschaf/jba/classfile"
)

type JSONEncoder struct {
	w    io.Writer
	opts Options
	cf   *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer, opts Options) *JSONEncoder {
	return &JSONEncoder{w: w, opts: opts}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(newDocument(e.cf, e.opts), "", "  ")
}
