package classfile

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodePoolScenario(t *testing.T) {
	c := NewCursor(mustHex(t, "00 03 07 00 02 01 00 03 66 6F 6F"))
	cp, err := DecodePool(c)
	if err != nil {
		t.Fatalf("DecodePool: %v", err)
	}

	if cp.Count != 3 || cp.Len() != 2 {
		t.Fatalf("Count/Len = %d/%d, want 3/2", cp.Count, cp.Len())
	}

	first := cp.Entries[0]
	class, ok := first.Info.(*ConstantClassInfo)
	if first.Index != 1 || first.Tag() != ConstantClass || !ok || class.NameIndex != 2 {
		t.Errorf("entry 1 = %+v, want Class{NameIndex: 2} at index 1", first)
	}

	second := cp.Entries[1]
	text, ok := second.Info.(*ConstantUtf8Info)
	if second.Index != 2 || second.Tag() != ConstantUtf8 || !ok || text.Value != "foo" || !text.Valid() {
		t.Errorf("entry 2 = %+v, want Utf8{foo} at index 2", second)
	}

	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", c.Remaining())
	}
}

func TestDecodePoolCounts(t *testing.T) {
	t.Run("count 1 is empty", func(t *testing.T) {
		c := NewCursor(mustHex(t, "00 01 FF"))
		cp, err := DecodePool(c)
		if err != nil {
			t.Fatalf("DecodePool: %v", err)
		}
		if cp.Len() != 0 {
			t.Errorf("Len() = %d, want 0", cp.Len())
		}
		if c.Offset() != 2 {
			t.Errorf("consumed %d bytes, want 2", c.Offset())
		}
	})

	t.Run("count 0 is empty", func(t *testing.T) {
		cp, err := DecodePool(NewCursor(mustHex(t, "00 00")))
		if err != nil {
			t.Fatalf("DecodePool: %v", err)
		}
		if cp.Len() != 0 {
			t.Errorf("Len() = %d, want 0", cp.Len())
		}
	})

	t.Run("count N yields N-1 sequential entries", func(t *testing.T) {
		cp, err := DecodePool(NewCursor(mustHex(t, allTagsPool)))
		if err != nil {
			t.Fatalf("DecodePool: %v", err)
		}
		if cp.Len() != int(cp.Count)-1 {
			t.Fatalf("Len() = %d, want %d", cp.Len(), cp.Count-1)
		}
		for i, e := range cp.Entries {
			if e.Index != uint16(i+1) {
				t.Errorf("Entries[%d].Index = %d, want %d", i, e.Index, i+1)
			}
		}
	})
}

func TestDecodePoolEmptyUtf8(t *testing.T) {
	c := NewCursor(mustHex(t, "00 02 01 00 00"))
	cp, err := DecodePool(c)
	if err != nil {
		t.Fatalf("DecodePool: %v", err)
	}
	if got := cp.GetUtf8(1); got != "" {
		t.Errorf("GetUtf8(1) = %q, want empty", got)
	}
	if size := c.Offset() - 2; size != 3 {
		t.Errorf("entry consumed %d bytes, want 3", size)
	}
}

func TestDecodePoolAllTags(t *testing.T) {
	cp, err := DecodePool(NewCursor(mustHex(t, allTagsPool)))
	if err != nil {
		t.Fatalf("DecodePool: %v", err)
	}

	want := []ConstantInfo{
		NewUtf8("Foo"),
		&ConstantClassInfo{NameIndex: 1},
		NewUtf8("bar"),
		NewUtf8("I"),
		&ConstantNameAndTypeInfo{NameIndex: 3, DescriptorIndex: 4},
		&ConstantFieldrefInfo{ClassIndex: 2, NameAndTypeIndex: 5},
		&ConstantMethodrefInfo{ClassIndex: 2, NameAndTypeIndex: 5},
		&ConstantInterfaceMethodrefInfo{ClassIndex: 2, NameAndTypeIndex: 5},
		&ConstantStringInfo{StringIndex: 1},
		&ConstantIntegerInfo{Bytes: 0xFFFFFFFF},
		&ConstantFloatInfo{Bytes: 0x3FC00000},
		&ConstantLongInfo{HighBytes: 1, LowBytes: 1},
		&ConstantDoubleInfo{HighBytes: 0x3FF00000},
		&ConstantMethodHandleInfo{ReferenceKind: RefInvokeStatic, ReferenceIndex: 7},
		&ConstantMethodTypeInfo{DescriptorIndex: 4},
		&ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: 0, NameAndTypeIndex: 5},
	}
	if cp.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", cp.Len(), len(want))
	}
	for i, w := range want {
		if got := cp.Entries[i].Info; !reflect.DeepEqual(got, w) {
			t.Errorf("entry #%d = %#v, want %#v", i+1, got, w)
		}
	}

	if v, _ := cp.GetInteger(10); v != -1 {
		t.Errorf("GetInteger(10) = %d, want -1", v)
	}
	if v, _ := cp.GetFloat(11); v != 1.5 {
		t.Errorf("GetFloat(11) = %v, want 1.5", v)
	}
	if v, _ := cp.GetLong(12); v != 1<<32+1 {
		t.Errorf("GetLong(12) = %d, want %d", v, int64(1<<32+1))
	}
	if v, _ := cp.GetDouble(13); v != 1.0 {
		t.Errorf("GetDouble(13) = %v, want 1", v)
	}
}

func TestDecodePoolByteAccounting(t *testing.T) {
	data := mustHex(t, allTagsPool)
	c := NewCursor(data)
	cp, err := DecodePool(c)
	if err != nil {
		t.Fatalf("DecodePool: %v", err)
	}

	for i, e := range cp.Entries {
		end := c.Offset()
		if i+1 < len(cp.Entries) {
			end = cp.Entries[i+1].Offset
		}
		if got := end - e.Offset; got != e.Size() {
			t.Errorf("entry #%d (%s) spans %d bytes, declares %d", e.Index, e.Tag(), got, e.Size())
		}
	}
	if c.Offset() != cp.Size() || cp.Size() != len(data) {
		t.Errorf("consumed %d, Size() %d, input %d", c.Offset(), cp.Size(), len(data))
	}
}

func TestDecodePoolSizeMismatch(t *testing.T) {
	orig := baseDecoders[ConstantClass]
	t.Cleanup(func() { baseDecoders[ConstantClass] = orig })
	baseDecoders[ConstantClass] = func(r *reader) ConstantInfo {
		info := &ConstantClassInfo{NameIndex: r.readU2()}
		r.readU1()
		return info
	}

	cp, err := DecodePool(NewCursor(mustHex(t, "00 02 07 00 01 00")))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("err = %v, want ErrSizeMismatch", err)
	}
	if cp != nil {
		t.Error("expected no pool on error")
	}
}

func TestDecodePoolTruncated(t *testing.T) {
	data := mustHex(t, allTagsPool)
	for n := 0; n < len(data); n++ {
		cp, err := DecodePool(NewCursor(data[:n]))
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Fatalf("prefix %d: err = %v, want ErrUnexpectedEOF", n, err)
		}
		if cp != nil {
			t.Fatalf("prefix %d: got a partial pool", n)
		}
	}

	t.Run("class with one index byte", func(t *testing.T) {
		c := NewCursor(mustHex(t, "00 02 07 00"))
		_, err := DecodePool(c)
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("err = %v, want *DecodeError", err)
		}
		if decodeErr.Entry != 1 || decodeErr.Offset != 2 || decodeErr.Tag != ConstantClass {
			t.Errorf("DecodeError = %+v, want entry 1 at offset 2 with tag 7", decodeErr)
		}
		if c.Offset() != 3 {
			t.Errorf("Offset() = %d, want 3", c.Offset())
		}
	})
}

func TestDecodePoolUnrecognizedTag(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		entry  uint16
		offset int
	}{
		{"first entry", "00 03 63 07 00 01", 1, 2},
		{"second entry", "00 03 07 00 02 63", 2, 5},
		{"zero", "00 02 00", 1, 2},
		{"module without extended tags", "00 02 13 00 01", 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, err := DecodePool(NewCursor(mustHex(t, tt.input)))
			if cp != nil {
				t.Error("expected no pool on error")
			}
			if !errors.Is(err, ErrUnrecognizedTag) {
				t.Fatalf("err = %v, want ErrUnrecognizedTag", err)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("err = %T, want *DecodeError", err)
			}
			if decodeErr.Entry != tt.entry || decodeErr.Offset != tt.offset {
				t.Errorf("entry/offset = %d/%d, want %d/%d", decodeErr.Entry, decodeErr.Offset, tt.entry, tt.offset)
			}
			var tagErr *UnrecognizedTagError
			if !errors.As(err, &tagErr) || tagErr.Tag != decodeErr.Tag {
				t.Errorf("UnrecognizedTagError = %v, want tag %d", tagErr, decodeErr.Tag)
			}
		})
	}

	t.Run("99", func(t *testing.T) {
		_, err := DecodePool(NewCursor(mustHex(t, "00 02 63")))
		var tagErr *UnrecognizedTagError
		if !errors.As(err, &tagErr) || tagErr.Tag != 99 {
			t.Errorf("err = %v, want UnrecognizedTag(99)", err)
		}
	})
}

func TestDecodePoolInvalidUtf8(t *testing.T) {
	cp, err := DecodePool(NewCursor(mustHex(t, "00 03 01 00 02 FF 41 07 00 01")))
	if err != nil {
		t.Fatalf("DecodePool: %v", err)
	}
	if cp.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cp.Len())
	}

	text := cp.Entries[0].Info.(*ConstantUtf8Info)
	if !errors.Is(text.Err, ErrInvalidUtf8) {
		t.Errorf("Err = %v, want ErrInvalidUtf8", text.Err)
	}
	if !reflect.DeepEqual(text.Raw, []byte{0xFF, 0x41}) {
		t.Errorf("Raw = %x, want ff41", text.Raw)
	}
	if text.Value != "\uFFFDA" {
		t.Errorf("Value = %q, want %q", text.Value, "\uFFFDA")
	}
	if got := cp.InvalidText(); !reflect.DeepEqual(got, []uint16{1}) {
		t.Errorf("InvalidText() = %v, want [1]", got)
	}
}

func TestDecodePoolWideSlots(t *testing.T) {
	input := "00 04 05 00 00 00 00 00 00 00 02 01 00 01 41"

	cp, err := DecodePool(NewCursor(mustHex(t, input)), WithWideSlots())
	if err != nil {
		t.Fatalf("DecodePool: %v", err)
	}
	if cp.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cp.Len())
	}
	if cp.Entries[0].Index != 1 || cp.Entries[1].Index != 3 {
		t.Errorf("indices = %d,%d, want 1,3", cp.Entries[0].Index, cp.Entries[1].Index)
	}
	if _, ok := cp.Lookup(2); ok {
		t.Error("Lookup(2) found the reserved slot")
	}
	if got := cp.GetUtf8(3); got != "A" {
		t.Errorf("GetUtf8(3) = %q, want %q", got, "A")
	}

	t.Run("one slot per record by default", func(t *testing.T) {
		_, err := DecodePool(NewCursor(mustHex(t, input)))
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Errorf("err = %v, want ErrUnexpectedEOF", err)
		}
	})

	t.Run("wide entry in last slot", func(t *testing.T) {
		cp, err := DecodePool(NewCursor(mustHex(t, "00 03 06 00 00 00 00 00 00 00 00")), WithWideSlots())
		if err != nil {
			t.Fatalf("DecodePool: %v", err)
		}
		if cp.Len() != 1 {
			t.Errorf("Len() = %d, want 1", cp.Len())
		}
	})
}

func TestDecodePoolExtendedTags(t *testing.T) {
	input := "00 05 01 00 01 6D 13 00 01 14 00 01 11 00 00 00 02"
	cp, err := DecodePool(NewCursor(mustHex(t, input)), WithExtendedTags())
	if err != nil {
		t.Fatalf("DecodePool: %v", err)
	}
	if got := cp.GetModuleName(2); got != "m" {
		t.Errorf("GetModuleName(2) = %q, want %q", got, "m")
	}
	if got := cp.GetPackageName(3); got != "m" {
		t.Errorf("GetPackageName(3) = %q, want %q", got, "m")
	}
	dyn, ok := cp.Entries[3].Info.(*ConstantDynamicInfo)
	if !ok || dyn.NameAndTypeIndex != 2 {
		t.Errorf("entry 4 = %#v, want Dynamic{NameAndTypeIndex: 2}", cp.Entries[3].Info)
	}
}

func TestDecodePoolIdempotent(t *testing.T) {
	data := mustHex(t, allTagsPool)
	a, err := DecodePool(NewCursor(data))
	if err != nil {
		t.Fatal(err)
	}
	b, err := DecodePool(NewCursor(data))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("decoding the same bytes twice gave different pools")
	}
}
