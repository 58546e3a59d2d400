package format

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/Weltraumschaf/jba/classfile"
)

// document is the structured view shared by the JSON, YAML and CBOR
// encoders. Payload keys are fixed per tag.
type document struct {
	File         string     `json:"file,omitempty" yaml:"file,omitempty" cbor:"file,omitempty"`
	Header       *docHeader `json:"header,omitempty" yaml:"header,omitempty" cbor:"header,omitempty"`
	ConstantPool docPool    `json:"constantPool" yaml:"constantPool" cbor:"constantPool"`
}

type docHeader struct {
	Magic        string `json:"magic" yaml:"magic" cbor:"magic"`
	MinorVersion uint16 `json:"minorVersion" yaml:"minorVersion" cbor:"minorVersion"`
	MajorVersion uint16 `json:"majorVersion" yaml:"majorVersion" cbor:"majorVersion"`
	JavaVersion  string `json:"javaVersion" yaml:"javaVersion" cbor:"javaVersion"`
}

type docPool struct {
	Count   uint16     `json:"count" yaml:"count" cbor:"count"`
	Entries []docEntry `json:"entries" yaml:"entries" cbor:"entries"`
}

type docEntry struct {
	Index       uint16         `json:"index" yaml:"index" cbor:"index"`
	Offset      int            `json:"offset" yaml:"offset" cbor:"offset"`
	Tag         uint8          `json:"tag" yaml:"tag" cbor:"tag"`
	Kind        string         `json:"kind" yaml:"kind" cbor:"kind"`
	Payload     map[string]any `json:"payload" yaml:"payload" cbor:"payload"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty" cbor:"description,omitempty"`
	Invalid     string         `json:"invalid,omitempty" yaml:"invalid,omitempty" cbor:"invalid,omitempty"`
}

func newDocument(cf *classfile.ClassFile, opts Options) document {
	doc := document{File: opts.Name}
	if !opts.PoolOnly {
		doc.Header = &docHeader{
			Magic:        fmt.Sprintf("%08X", cf.Magic),
			MinorVersion: cf.MinorVersion,
			MajorVersion: cf.MajorVersion,
			JavaVersion:  cf.JavaVersion(),
		}
	}

	cp := cf.ConstantPool
	doc.ConstantPool = docPool{Count: cp.Count, Entries: make([]docEntry, 0, cp.Len())}
	for _, e := range cp.Entries {
		entry := docEntry{
			Index:       e.Index,
			Offset:      e.Offset,
			Tag:         uint8(e.Tag()),
			Kind:        e.Tag().String(),
			Payload:     payloadFields(e.Info),
			Description: cp.Describe(e.Index),
		}
		if u, ok := e.Info.(*classfile.ConstantUtf8Info); ok && u.Err != nil {
			entry.Invalid = u.Err.Error()
		}
		doc.ConstantPool.Entries = append(doc.ConstantPool.Entries, entry)
	}
	return doc
}

// payloadFields names each raw field of a constant. Floating point values
// are carried as bits plus a formatted string so NaN and infinities survive
// JSON.
func payloadFields(info classfile.ConstantInfo) map[string]any {
	switch c := info.(type) {
	case *classfile.ConstantUtf8Info:
		return map[string]any{"length": len(c.Raw), "bytes": hex.EncodeToString(c.Raw), "value": c.Value}
	case *classfile.ConstantIntegerInfo:
		return map[string]any{"bytes": c.Bytes, "value": c.Value()}
	case *classfile.ConstantFloatInfo:
		return map[string]any{"bytes": c.Bytes, "value": strconv.FormatFloat(float64(c.Value()), 'g', -1, 32)}
	case *classfile.ConstantLongInfo:
		return map[string]any{"highBytes": c.HighBytes, "lowBytes": c.LowBytes, "value": c.Value()}
	case *classfile.ConstantDoubleInfo:
		return map[string]any{"highBytes": c.HighBytes, "lowBytes": c.LowBytes, "value": strconv.FormatFloat(c.Value(), 'g', -1, 64)}
	case *classfile.ConstantClassInfo:
		return map[string]any{"nameIndex": c.NameIndex}
	case *classfile.ConstantStringInfo:
		return map[string]any{"stringIndex": c.StringIndex}
	case *classfile.ConstantFieldrefInfo:
		return memberFields(c.ClassIndex, c.NameAndTypeIndex)
	case *classfile.ConstantMethodrefInfo:
		return memberFields(c.ClassIndex, c.NameAndTypeIndex)
	case *classfile.ConstantInterfaceMethodrefInfo:
		return memberFields(c.ClassIndex, c.NameAndTypeIndex)
	case *classfile.ConstantNameAndTypeInfo:
		return map[string]any{"nameIndex": c.NameIndex, "descriptorIndex": c.DescriptorIndex}
	case *classfile.ConstantMethodHandleInfo:
		return map[string]any{"referenceKind": uint8(c.ReferenceKind), "referenceIndex": c.ReferenceIndex}
	case *classfile.ConstantMethodTypeInfo:
		return map[string]any{"descriptorIndex": c.DescriptorIndex}
	case *classfile.ConstantDynamicInfo:
		return map[string]any{"bootstrapMethodAttrIndex": c.BootstrapMethodAttrIndex, "nameAndTypeIndex": c.NameAndTypeIndex}
	case *classfile.ConstantInvokeDynamicInfo:
		return map[string]any{"bootstrapMethodAttrIndex": c.BootstrapMethodAttrIndex, "nameAndTypeIndex": c.NameAndTypeIndex}
	case *classfile.ConstantModuleInfo:
		return map[string]any{"nameIndex": c.NameIndex}
	case *classfile.ConstantPackageInfo:
		return map[string]any{"nameIndex": c.NameIndex}
	}
	return map[string]any{}
}

func memberFields(classIndex, nameAndTypeIndex uint16) map[string]any {
	return map[string]any{"classIndex": classIndex, "nameAndTypeIndex": nameAndTypeIndex}
}
