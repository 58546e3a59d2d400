// Package analyze runs one analysis session: read a class file, decode its
// constant pool and render it.
package analyze

import (
	"fmt"
	"io"
	"os"

	"github.com/Weltraumschaf/jba/classfile"
	"github.com/Weltraumschaf/jba/config"
	"github.com/Weltraumschaf/jba/format"
	"github.com/dustin/go-humanize"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jba.analyze")

// magic, minor and major version
const headerSize = 8

type Options struct {
	Config config.Config
	// PoolOnly drops the file title and header.
	PoolOnly bool
}

// Load opens and decodes path with the limits and options of cfg.
func Load(path string, cfg config.Config) (*classfile.ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Debugf("open %s: %s", path, err)
		return nil, fmt.Errorf("can't read file %s", path)
	}
	defer f.Close()

	cf, err := classfile.Parse(f, cfg.DecodeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}
	size := uint64(headerSize + cf.ConstantPool.Size() + cf.Unparsed)
	log.Infof("%s: %s, version %s, %d constants, %d bytes after the pool",
		path, humanize.IBytes(size), cf.Version(), cf.ConstantPool.Len(), cf.Unparsed)

	for _, index := range cf.ConstantPool.InvalidText() {
		log.Warningf("%s: constant #%d is not valid modified UTF-8", path, index)
	}
	return cf, nil
}

// File analyzes path and writes it to w in the configured format.
func File(path string, opts Options, w io.Writer) error {
	cf, err := Load(path, opts.Config)
	if err != nil {
		return err
	}

	name := path
	if opts.PoolOnly {
		name = ""
	}
	enc, err := format.New(opts.Config.Format, w, opts.Config.FormatOptions(name, opts.PoolOnly))
	if err != nil {
		return err
	}
	if err := enc.Encode(cf); err != nil {
		return fmt.Errorf("write %s: %w", opts.Config.Format, err)
	}
	return nil
}

// Resolve writes the symbolic form of one constant pool entry.
func Resolve(path string, index uint16, cfg config.Config, w io.Writer) error {
	cf, err := Load(path, cfg)
	if err != nil {
		return err
	}

	entry, ok := cf.ConstantPool.Lookup(index)
	if !ok {
		return fmt.Errorf("no constant #%d in %s (count %d)", index, path, cf.ConstantPool.Count)
	}

	_, err = fmt.Fprintf(w, "#%d = %s\t%s\n", index, entry.Tag(), cf.ConstantPool.Describe(index))
	return err
}
