package classfile

import "strings"

// FieldType is a parsed field descriptor such as "[Ljava/lang/String;".
type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool     { return ft.ArrayDepth > 0 }
func (ft *FieldType) IsPrimitive() bool { return ft.BaseType != "" && ft.ArrayDepth == 0 }

// MethodDescriptor is a parsed method descriptor. ReturnType is nil for void.
type MethodDescriptor struct {
	Parameters []FieldType
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	if md.ReturnType != nil {
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString("void")
	}
	sb.WriteString(" (")
	for i := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(md.Parameters[i].String())
	}
	sb.WriteString(")")
	return sb.String()
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

// ParseFieldDescriptor returns nil unless desc is exactly one field type.
func ParseFieldDescriptor(desc string) *FieldType {
	ft, n := parseFieldType(desc)
	if ft == nil || n != len(desc) {
		return nil
	}
	return ft
}

// ParseMethodDescriptor returns nil unless desc is a complete method descriptor.
func ParseMethodDescriptor(desc string) *MethodDescriptor {
	if !strings.HasPrefix(desc, "(") {
		return nil
	}
	rest := desc[1:]
	md := &MethodDescriptor{}
	for !strings.HasPrefix(rest, ")") {
		ft, n := parseFieldType(rest)
		if ft == nil {
			return nil
		}
		md.Parameters = append(md.Parameters, *ft)
		rest = rest[n:]
	}
	rest = rest[1:]
	if rest == "V" {
		return md
	}
	ft, n := parseFieldType(rest)
	if ft == nil || n != len(rest) {
		return nil
	}
	md.ReturnType = ft
	return md
}

// parseFieldType reads one field type from the front of s and reports how
// many bytes it used.
func parseFieldType(s string) (*FieldType, int) {
	ft := &FieldType{}
	i := 0
	for i < len(s) && s[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(s) {
		return nil, 0
	}
	if base, ok := baseTypes[s[i]]; ok {
		ft.BaseType = base
		return ft, i + 1
	}
	if s[i] != 'L' {
		return nil, 0
	}
	end := strings.IndexByte(s[i:], ';')
	if end <= 1 {
		return nil, 0
	}
	ft.ClassName = s[i+1 : i+end]
	return ft, i + end + 1
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
