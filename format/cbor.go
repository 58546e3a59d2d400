package format

import (
	"fmt"
	"io"

	"github.com/Weltraumschaf/jba/classfile"
	"github.com/fxamacker/cbor/v2"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("format: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// CBOREncoder writes the document in canonical CBOR, so equal pools always
// produce equal bytes.
type CBOREncoder struct {
	w    io.Writer
	opts Options
	cf   *classfile.ClassFile
}

func NewCBOREncoder(w io.Writer, opts Options) *CBOREncoder {
	return &CBOREncoder{w: w, opts: opts}
}

func (e *CBOREncoder) Encode(cf *classfile.ClassFile) error {
	e.cf = cf
	data, err := e.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

func (e *CBOREncoder) MarshalBinary() ([]byte, error) {
	return cborEncMode.Marshal(newDocument(e.cf, e.opts))
}
