package classfile

import (
	"encoding/binary"
	"math"
	"sort"
)

// ConstantInfo is the payload of one constant pool entry. The set of
// implementations is closed: one struct per known tag.
type ConstantInfo interface {
	Tag() ConstantTag
	// PayloadSize is the number of bytes following the tag byte.
	PayloadSize() int
	appendPayload(b []byte) []byte
}

type ConstantUtf8Info struct {
	Raw   []byte
	Value string
	// Err is non-nil when Raw is not well-formed modified UTF-8. Value then
	// holds a lossy rendering with U+FFFD substitutions.
	Err error
}

// NewUtf8 builds a Utf8 constant holding s in modified UTF-8.
func NewUtf8(s string) *ConstantUtf8Info {
	return &ConstantUtf8Info{Raw: encodeModifiedUtf8(s), Value: s}
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }
func (c *ConstantUtf8Info) PayloadSize() int { return 2 + len(c.Raw) }
func (c *ConstantUtf8Info) Valid() bool      { return c.Err == nil }
func (c *ConstantUtf8Info) appendPayload(b []byte) []byte {
	b = binary.BigEndian.AppendUint16(b, uint16(len(c.Raw)))
	return append(b, c.Raw...)
}

type ConstantIntegerInfo struct {
	Bytes uint32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }
func (c *ConstantIntegerInfo) PayloadSize() int { return 4 }
func (c *ConstantIntegerInfo) Value() int32     { return int32(c.Bytes) }
func (c *ConstantIntegerInfo) appendPayload(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, c.Bytes)
}

type ConstantFloatInfo struct {
	Bytes uint32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }
func (c *ConstantFloatInfo) PayloadSize() int { return 4 }
func (c *ConstantFloatInfo) Value() float32   { return math.Float32frombits(c.Bytes) }
func (c *ConstantFloatInfo) appendPayload(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, c.Bytes)
}

type ConstantLongInfo struct {
	HighBytes uint32
	LowBytes  uint32
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }
func (c *ConstantLongInfo) PayloadSize() int { return 8 }
func (c *ConstantLongInfo) Value() int64 {
	return int64(uint64(c.HighBytes)<<32 | uint64(c.LowBytes))
}
func (c *ConstantLongInfo) appendPayload(b []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, c.HighBytes)
	return binary.BigEndian.AppendUint32(b, c.LowBytes)
}

type ConstantDoubleInfo struct {
	HighBytes uint32
	LowBytes  uint32
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }
func (c *ConstantDoubleInfo) PayloadSize() int { return 8 }
func (c *ConstantDoubleInfo) Value() float64 {
	return math.Float64frombits(uint64(c.HighBytes)<<32 | uint64(c.LowBytes))
}
func (c *ConstantDoubleInfo) appendPayload(b []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, c.HighBytes)
	return binary.BigEndian.AppendUint32(b, c.LowBytes)
}

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }
func (c *ConstantClassInfo) PayloadSize() int { return 2 }
func (c *ConstantClassInfo) appendPayload(b []byte) []byte {
	return binary.BigEndian.AppendUint16(b, c.NameIndex)
}

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }
func (c *ConstantStringInfo) PayloadSize() int { return 2 }
func (c *ConstantStringInfo) appendPayload(b []byte) []byte {
	return binary.BigEndian.AppendUint16(b, c.StringIndex)
}

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }
func (c *ConstantFieldrefInfo) PayloadSize() int { return 4 }
func (c *ConstantFieldrefInfo) appendPayload(b []byte) []byte {
	return appendIndexPair(b, c.ClassIndex, c.NameAndTypeIndex)
}

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }
func (c *ConstantMethodrefInfo) PayloadSize() int { return 4 }
func (c *ConstantMethodrefInfo) appendPayload(b []byte) []byte {
	return appendIndexPair(b, c.ClassIndex, c.NameAndTypeIndex)
}

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }
func (c *ConstantInterfaceMethodrefInfo) PayloadSize() int { return 4 }
func (c *ConstantInterfaceMethodrefInfo) appendPayload(b []byte) []byte {
	return appendIndexPair(b, c.ClassIndex, c.NameAndTypeIndex)
}

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }
func (c *ConstantNameAndTypeInfo) PayloadSize() int { return 4 }
func (c *ConstantNameAndTypeInfo) appendPayload(b []byte) []byte {
	return appendIndexPair(b, c.NameIndex, c.DescriptorIndex)
}

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }
func (c *ConstantMethodHandleInfo) PayloadSize() int { return 3 }
func (c *ConstantMethodHandleInfo) appendPayload(b []byte) []byte {
	b = append(b, byte(c.ReferenceKind))
	return binary.BigEndian.AppendUint16(b, c.ReferenceIndex)
}

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }
func (c *ConstantMethodTypeInfo) PayloadSize() int { return 2 }
func (c *ConstantMethodTypeInfo) appendPayload(b []byte) []byte {
	return binary.BigEndian.AppendUint16(b, c.DescriptorIndex)
}

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }
func (c *ConstantDynamicInfo) PayloadSize() int { return 4 }
func (c *ConstantDynamicInfo) appendPayload(b []byte) []byte {
	return appendIndexPair(b, c.BootstrapMethodAttrIndex, c.NameAndTypeIndex)
}

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }
func (c *ConstantInvokeDynamicInfo) PayloadSize() int { return 4 }
func (c *ConstantInvokeDynamicInfo) appendPayload(b []byte) []byte {
	return appendIndexPair(b, c.BootstrapMethodAttrIndex, c.NameAndTypeIndex)
}

type ConstantModuleInfo struct {
	NameIndex uint16
}

func (c *ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }
func (c *ConstantModuleInfo) PayloadSize() int { return 2 }
func (c *ConstantModuleInfo) appendPayload(b []byte) []byte {
	return binary.BigEndian.AppendUint16(b, c.NameIndex)
}

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (c *ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }
func (c *ConstantPackageInfo) PayloadSize() int { return 2 }
func (c *ConstantPackageInfo) appendPayload(b []byte) []byte {
	return binary.BigEndian.AppendUint16(b, c.NameIndex)
}

func appendIndexPair(b []byte, first, second uint16) []byte {
	b = binary.BigEndian.AppendUint16(b, first)
	return binary.BigEndian.AppendUint16(b, second)
}

// ConstantPoolEntry is one decoded record. Offset is the position of its tag
// byte in the decoded input.
type ConstantPoolEntry struct {
	Index  uint16
	Offset int
	Info   ConstantInfo
}

func (e ConstantPoolEntry) Tag() ConstantTag { return e.Info.Tag() }

// Size is the tag byte plus the payload.
func (e ConstantPoolEntry) Size() int {
	if e.Info == nil {
		return 0
	}
	return 1 + e.Info.PayloadSize()
}

// ConstantPool holds the declared count and the entries in decode order.
// Entries are sorted by Index. A pool is not modified after decoding.
type ConstantPool struct {
	Count   uint16
	Entries []ConstantPoolEntry
}

// NewConstantPool numbers infos 1..n, one slot each, and computes the offsets
// they would have when encoded at the start of a buffer.
func NewConstantPool(infos ...ConstantInfo) *ConstantPool {
	cp := &ConstantPool{
		Count:   uint16(len(infos) + 1),
		Entries: make([]ConstantPoolEntry, len(infos)),
	}
	offset := 2
	for i, info := range infos {
		cp.Entries[i] = ConstantPoolEntry{Index: uint16(i + 1), Offset: offset, Info: info}
		offset += 1 + info.PayloadSize()
	}
	return cp
}

func (cp *ConstantPool) Len() int { return len(cp.Entries) }

// Size is the encoded size of the pool including the count field.
func (cp *ConstantPool) Size() int {
	n := 2
	for _, e := range cp.Entries {
		n += e.Size()
	}
	return n
}

// Lookup finds the entry numbered index.
func (cp *ConstantPool) Lookup(index uint16) (ConstantPoolEntry, bool) {
	if cp == nil || index == 0 {
		return ConstantPoolEntry{}, false
	}
	if i := int(index) - 1; i < len(cp.Entries) && cp.Entries[i].Index == index {
		return cp.Entries[i], true
	}
	i := sort.Search(len(cp.Entries), func(i int) bool { return cp.Entries[i].Index >= index })
	if i < len(cp.Entries) && cp.Entries[i].Index == index {
		return cp.Entries[i], true
	}
	return ConstantPoolEntry{}, false
}

func (cp *ConstantPool) info(index uint16) ConstantInfo {
	entry, ok := cp.Lookup(index)
	if !ok {
		return nil
	}
	return entry.Info
}

// InvalidText lists the indices of Utf8 entries that failed to decode.
func (cp *ConstantPool) InvalidText() []uint16 {
	var out []uint16
	for _, e := range cp.Entries {
		if u, ok := e.Info.(*ConstantUtf8Info); ok && u.Err != nil {
			out = append(out, e.Index)
		}
	}
	return out
}
