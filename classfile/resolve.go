package classfile

import (
	"fmt"
	"strconv"
	"strings"
)

// The getters below resolve references on demand. They return zero values
// when the index is out of range or names an entry of another kind.

func (cp *ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := cp.info(index).(*ConstantUtf8Info); ok {
		return entry.Value
	}
	return ""
}

func (cp *ConstantPool) GetClassName(index uint16) string {
	if entry, ok := cp.info(index).(*ConstantClassInfo); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp *ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if entry, ok := cp.info(index).(*ConstantNameAndTypeInfo); ok {
		return cp.GetUtf8(entry.NameIndex), cp.GetUtf8(entry.DescriptorIndex)
	}
	return "", ""
}

func (cp *ConstantPool) GetString(index uint16) string {
	if entry, ok := cp.info(index).(*ConstantStringInfo); ok {
		return cp.GetUtf8(entry.StringIndex)
	}
	return ""
}

func (cp *ConstantPool) GetInteger(index uint16) (int32, bool) {
	if entry, ok := cp.info(index).(*ConstantIntegerInfo); ok {
		return entry.Value(), true
	}
	return 0, false
}

func (cp *ConstantPool) GetLong(index uint16) (int64, bool) {
	if entry, ok := cp.info(index).(*ConstantLongInfo); ok {
		return entry.Value(), true
	}
	return 0, false
}

func (cp *ConstantPool) GetFloat(index uint16) (float32, bool) {
	if entry, ok := cp.info(index).(*ConstantFloatInfo); ok {
		return entry.Value(), true
	}
	return 0, false
}

func (cp *ConstantPool) GetDouble(index uint16) (float64, bool) {
	if entry, ok := cp.info(index).(*ConstantDoubleInfo); ok {
		return entry.Value(), true
	}
	return 0, false
}

// GetMemberRef resolves a Fieldref, Methodref or InterfaceMethodref.
func (cp *ConstantPool) GetMemberRef(index uint16) (className, name, descriptor string) {
	var classIndex, natIndex uint16
	switch entry := cp.info(index).(type) {
	case *ConstantFieldrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	case *ConstantMethodrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	case *ConstantInterfaceMethodrefInfo:
		classIndex, natIndex = entry.ClassIndex, entry.NameAndTypeIndex
	default:
		return "", "", ""
	}
	className = cp.GetClassName(classIndex)
	name, descriptor = cp.GetNameAndType(natIndex)
	return
}

func (cp *ConstantPool) GetMethodHandle(index uint16) *ConstantMethodHandleInfo {
	if entry, ok := cp.info(index).(*ConstantMethodHandleInfo); ok {
		return entry
	}
	return nil
}

func (cp *ConstantPool) GetMethodType(index uint16) string {
	if entry, ok := cp.info(index).(*ConstantMethodTypeInfo); ok {
		return cp.GetUtf8(entry.DescriptorIndex)
	}
	return ""
}

func (cp *ConstantPool) GetInvokeDynamic(index uint16) *ConstantInvokeDynamicInfo {
	if entry, ok := cp.info(index).(*ConstantInvokeDynamicInfo); ok {
		return entry
	}
	return nil
}

func (cp *ConstantPool) GetModuleName(index uint16) string {
	if entry, ok := cp.info(index).(*ConstantModuleInfo); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp *ConstantPool) GetPackageName(index uint16) string {
	if entry, ok := cp.info(index).(*ConstantPackageInfo); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

// Describe renders the entry at index the way javap comments it, following
// references as far as the pool allows. Broken references render as "#n".
func (cp *ConstantPool) Describe(index uint16) string {
	entry, ok := cp.Lookup(index)
	if !ok {
		return fmt.Sprintf("#%d", index)
	}
	switch info := entry.Info.(type) {
	case *ConstantUtf8Info:
		return info.Value
	case *ConstantIntegerInfo:
		return strconv.FormatInt(int64(info.Value()), 10)
	case *ConstantFloatInfo:
		return strconv.FormatFloat(float64(info.Value()), 'g', -1, 32) + "f"
	case *ConstantLongInfo:
		return strconv.FormatInt(info.Value(), 10) + "l"
	case *ConstantDoubleInfo:
		return strconv.FormatFloat(info.Value(), 'g', -1, 64) + "d"
	case *ConstantClassInfo:
		return cp.refOrIndex(info.NameIndex)
	case *ConstantStringInfo:
		return strconv.Quote(cp.refOrIndex(info.StringIndex))
	case *ConstantFieldrefInfo, *ConstantMethodrefInfo, *ConstantInterfaceMethodrefInfo:
		return cp.describeMember(index)
	case *ConstantNameAndTypeInfo:
		return cp.describeNameAndType(index)
	case *ConstantMethodHandleInfo:
		return info.ReferenceKind.String() + " " + cp.describeMember(info.ReferenceIndex)
	case *ConstantMethodTypeInfo:
		return cp.refOrIndex(info.DescriptorIndex)
	case *ConstantDynamicInfo:
		return fmt.Sprintf("#%d:%s", info.BootstrapMethodAttrIndex, cp.describeNameAndType(info.NameAndTypeIndex))
	case *ConstantInvokeDynamicInfo:
		return fmt.Sprintf("#%d:%s", info.BootstrapMethodAttrIndex, cp.describeNameAndType(info.NameAndTypeIndex))
	case *ConstantModuleInfo:
		return cp.refOrIndex(info.NameIndex)
	case *ConstantPackageInfo:
		return cp.refOrIndex(info.NameIndex)
	}
	return fmt.Sprintf("#%d", index)
}

// DescribeType renders a field or method descriptor in source syntax, or
// returns "" when desc is neither.
func DescribeType(desc string) string {
	if strings.HasPrefix(desc, "(") {
		if md := ParseMethodDescriptor(desc); md != nil {
			return md.String()
		}
		return ""
	}
	if ft := ParseFieldDescriptor(desc); ft != nil {
		return ft.String()
	}
	return ""
}

func (cp *ConstantPool) describeMember(index uint16) string {
	owner, name, desc := cp.GetMemberRef(index)
	if owner == "" || name == "" {
		return fmt.Sprintf("#%d", index)
	}
	return owner + "." + quoteSpecial(name) + ":" + desc
}

func (cp *ConstantPool) describeNameAndType(index uint16) string {
	name, desc := cp.GetNameAndType(index)
	if name == "" {
		return fmt.Sprintf("#%d", index)
	}
	return quoteSpecial(name) + ":" + desc
}

func (cp *ConstantPool) refOrIndex(index uint16) string {
	if u, ok := cp.info(index).(*ConstantUtf8Info); ok {
		return u.Value
	}
	return fmt.Sprintf("#%d", index)
}

func quoteSpecial(name string) string {
	if strings.HasPrefix(name, "<") {
		return `"` + name + `"`
	}
	return name
}
