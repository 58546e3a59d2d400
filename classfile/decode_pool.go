package classfile

import "fmt"

type constantDecoder func(r *reader) ConstantInfo

var baseDecoders = map[ConstantTag]constantDecoder{
	ConstantUtf8:               readUtf8,
	ConstantInteger:            readInteger,
	ConstantFloat:              readFloat,
	ConstantLong:               readLong,
	ConstantDouble:             readDouble,
	ConstantClass:              readClass,
	ConstantString:             readString,
	ConstantFieldref:           readFieldref,
	ConstantMethodref:          readMethodref,
	ConstantInterfaceMethodref: readInterfaceMethodref,
	ConstantNameAndType:        readNameAndType,
	ConstantMethodHandle:       readMethodHandle,
	ConstantMethodType:         readMethodType,
	ConstantInvokeDynamic:      readInvokeDynamic,
}

var extendedDecoders = map[ConstantTag]constantDecoder{
	ConstantDynamic: readDynamic,
	ConstantModule:  readModule,
	ConstantPackage: readPackage,
}

// DecodePool reads the constant pool count followed by count-1 tagged
// entries. Any error aborts the whole pool and no entries are returned.
func DecodePool(c *Cursor, opts ...DecodeOption) (*ConstantPool, error) {
	return decodePool(&reader{c: c}, applyDecodeOptions(opts))
}

func decodePool(r *reader, o *decodeOptions) (*ConstantPool, error) {
	start := r.c.Offset()
	count := r.readU2()
	if r.err != nil {
		return nil, &DecodeError{Offset: start, Err: r.err}
	}

	cp := &ConstantPool{Count: count}
	if count > 1 {
		cp.Entries = make([]ConstantPoolEntry, 0, count-1)
	}
	for i := 1; i < int(count); i++ {
		entry, err := decodePoolEntry(r, uint16(i), o)
		if err != nil {
			return nil, err
		}
		cp.Entries = append(cp.Entries, entry)
		if o.wideSlots && entry.Tag().Wide() {
			i++
		}
	}
	return cp, nil
}

// decodePoolEntry reads one tag and its payload and checks that the variant
// reader consumed exactly the payload size it declares.
func decodePoolEntry(r *reader, index uint16, o *decodeOptions) (ConstantPoolEntry, error) {
	start := r.c.Offset()
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return ConstantPoolEntry{}, &DecodeError{Entry: index, Offset: start, Err: r.err}
	}

	decode, ok := o.decoderFor(tag)
	if !ok {
		return ConstantPoolEntry{}, &DecodeError{Entry: index, Offset: start, Tag: tag, Err: &UnrecognizedTagError{Tag: tag}}
	}

	info := decode(r)
	if r.err != nil {
		return ConstantPoolEntry{}, &DecodeError{Entry: index, Offset: start, Tag: tag, Err: r.err}
	}
	if consumed := r.c.Offset() - start - 1; consumed != info.PayloadSize() {
		err := fmt.Errorf("%w: %s read %d bytes, declares %d", ErrSizeMismatch, tag, consumed, info.PayloadSize())
		return ConstantPoolEntry{}, &DecodeError{Entry: index, Offset: start, Tag: tag, Err: err}
	}

	return ConstantPoolEntry{Index: index, Offset: start, Info: info}, nil
}

func readUtf8(r *reader) ConstantInfo {
	length := r.readU2()
	raw := r.readBytes(int(length))
	value, err := decodeModifiedUtf8(raw)
	return &ConstantUtf8Info{Raw: raw, Value: value, Err: err}
}

func readInteger(r *reader) ConstantInfo {
	return &ConstantIntegerInfo{Bytes: r.readU4()}
}

func readFloat(r *reader) ConstantInfo {
	return &ConstantFloatInfo{Bytes: r.readU4()}
}

func readLong(r *reader) ConstantInfo {
	high := r.readU4()
	low := r.readU4()
	return &ConstantLongInfo{HighBytes: high, LowBytes: low}
}

func readDouble(r *reader) ConstantInfo {
	high := r.readU4()
	low := r.readU4()
	return &ConstantDoubleInfo{HighBytes: high, LowBytes: low}
}

func readClass(r *reader) ConstantInfo {
	return &ConstantClassInfo{NameIndex: r.readU2()}
}

func readString(r *reader) ConstantInfo {
	return &ConstantStringInfo{StringIndex: r.readU2()}
}

func readFieldref(r *reader) ConstantInfo {
	classIndex := r.readU2()
	nameAndTypeIndex := r.readU2()
	return &ConstantFieldrefInfo{
		ClassIndex:       classIndex,
		NameAndTypeIndex: nameAndTypeIndex,
	}
}

func readMethodref(r *reader) ConstantInfo {
	classIndex := r.readU2()
	nameAndTypeIndex := r.readU2()
	return &ConstantMethodrefInfo{
		ClassIndex:       classIndex,
		NameAndTypeIndex: nameAndTypeIndex,
	}
}

func readInterfaceMethodref(r *reader) ConstantInfo {
	classIndex := r.readU2()
	nameAndTypeIndex := r.readU2()
	return &ConstantInterfaceMethodrefInfo{
		ClassIndex:       classIndex,
		NameAndTypeIndex: nameAndTypeIndex,
	}
}

func readNameAndType(r *reader) ConstantInfo {
	nameIndex := r.readU2()
	descriptorIndex := r.readU2()
	return &ConstantNameAndTypeInfo{
		NameIndex:       nameIndex,
		DescriptorIndex: descriptorIndex,
	}
}

func readMethodHandle(r *reader) ConstantInfo {
	referenceKind := MethodHandleKind(r.readU1())
	referenceIndex := r.readU2()
	return &ConstantMethodHandleInfo{
		ReferenceKind:  referenceKind,
		ReferenceIndex: referenceIndex,
	}
}

func readMethodType(r *reader) ConstantInfo {
	return &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
}

func readInvokeDynamic(r *reader) ConstantInfo {
	bootstrapMethodAttrIndex := r.readU2()
	nameAndTypeIndex := r.readU2()
	return &ConstantInvokeDynamicInfo{
		BootstrapMethodAttrIndex: bootstrapMethodAttrIndex,
		NameAndTypeIndex:         nameAndTypeIndex,
	}
}

func readDynamic(r *reader) ConstantInfo {
	bootstrapMethodAttrIndex := r.readU2()
	nameAndTypeIndex := r.readU2()
	return &ConstantDynamicInfo{
		BootstrapMethodAttrIndex: bootstrapMethodAttrIndex,
		NameAndTypeIndex:         nameAndTypeIndex,
	}
}

func readModule(r *reader) ConstantInfo {
	return &ConstantModuleInfo{NameIndex: r.readU2()}
}

func readPackage(r *reader) ConstantInfo {
	return &ConstantPackageInfo{NameIndex: r.readU2()}
}
