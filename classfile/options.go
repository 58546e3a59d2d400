package classfile

type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	wideSlots      bool
	extendedTags   bool
	skipMagicCheck bool
	maxSize        int64
}

// WithWideSlots numbers Long and Double constants as two pool slots, the way
// the JVM does. By default every record takes exactly one slot.
func WithWideSlots() DecodeOption {
	return func(o *decodeOptions) {
		o.wideSlots = true
	}
}

// WithExtendedTags accepts the Dynamic, Module and Package constants in
// addition to the fourteen base tags.
func WithExtendedTags() DecodeOption {
	return func(o *decodeOptions) {
		o.extendedTags = true
	}
}

// WithoutMagicCheck reads the header without rejecting a foreign magic number.
func WithoutMagicCheck() DecodeOption {
	return func(o *decodeOptions) {
		o.skipMagicCheck = true
	}
}

// WithMaxSize caps how many bytes Parse and ParseFile load.
func WithMaxSize(n int64) DecodeOption {
	return func(o *decodeOptions) {
		o.maxSize = n
	}
}

func applyDecodeOptions(opts []DecodeOption) *decodeOptions {
	o := &decodeOptions{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *decodeOptions) decoderFor(tag ConstantTag) (constantDecoder, bool) {
	if d, ok := baseDecoders[tag]; ok {
		return d, true
	}
	if o.extendedTags {
		d, ok := extendedDecoders[tag]
		return d, ok
	}
	return nil, false
}
