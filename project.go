package pcodedmp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/malware-tools/pcodedmp/internal/cfb"
	"github.com/malware-tools/pcodedmp/internal/compress"
	"github.com/malware-tools/pcodedmp/internal/log"
)

// Document is an open legacy Office compound document. It owns the
// underlying compound-file reader and, once Disassemble has run, the
// anomalies collected across every VBA project it found.
type Document struct {
	reader    *cfb.Reader
	opts      *Options
	logger    *log.Helper
	Anomalies []string
}

// New opens name as a compound document and memory-maps its contents.
func New(name string, opts *Options) (*Document, error) {
	r, err := cfb.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotCompoundFile, err)
	}
	return newDocument(r, opts), nil
}

// NewBytes opens an in-memory compound document.
func NewBytes(data []byte, opts *Options) (*Document, error) {
	r, err := cfb.OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotCompoundFile, err)
	}
	return newDocument(r, opts), nil
}

func newDocument(r *cfb.Reader, opts *Options) *Document {
	o := opts.withDefaults()
	return &Document{
		reader: r,
		opts:   o,
		logger: log.NewHelper(o.Logger),
	}
}

// Close releases the document's underlying file mapping, if any.
func (d *Document) Close() error {
	return d.reader.Close()
}

// Disassemble writes a full textual report of every VBA project found in
// the document to w: the dir stream, the identifier table, and every
// module's p-code disassembly, in that order (spec.md §6 output format).
// A failure parsing one project is logged and does not prevent the rest
// of the document, or later projects in it, from being processed.
func (d *Document) Disassemble(w io.Writer) error {
	projects := d.reader.FindVBAProjects()
	if len(projects) == 0 {
		return ErrNoVBAProject
	}
	for _, vp := range projects {
		fmt.Fprintln(w, strings.Repeat("=", 79))
		if err := d.processProject(w, vp); err != nil {
			d.logger.Errorf("project %s: %v", vp.Root, err)
		}
	}
	return nil
}

func (d *Document) processProject(w io.Writer, vp cfb.VBAProject) error {
	if !d.opts.DisasmOnly {
		fmt.Fprintf(w, "dir stream: %s\n", vp.DirStreamPath)
	}

	compressed, err := d.reader.ReadStream(vp.DirStreamPath)
	if err != nil {
		return err
	}
	dirData, err := compress.Decompress(compressed)
	if err != nil {
		return err
	}
	dir := parseDirStream(dirData)
	if !d.opts.DisasmOnly {
		fmt.Fprintln(w, strings.Repeat("-", 79))
		fmt.Fprintln(w, "dir stream after decompression:")
		fmt.Fprintf(w, "%d bytes\n", len(dirData))
		if d.opts.Verbose {
			fmt.Fprint(w, hexdump(dirData))
		}
	}

	vbaProjectData, err := d.reader.ReadStream(vp.ProjectPath)
	if err != nil {
		return err
	}
	if !d.opts.DisasmOnly {
		fmt.Fprintln(w, strings.Repeat("-", 79))
		fmt.Fprintln(w, "_VBA_PROJECT stream:")
		fmt.Fprintf(w, "%d bytes\n", len(vbaProjectData))
		if d.opts.Verbose {
			fmt.Fprint(w, hexdump(vbaProjectData))
		}
	}

	if magic, err := peekU16LE(vbaProjectData, 0); err != nil || magic != 0x61CC {
		d.Anomalies = addAnomaly(d.Anomalies, AnoBadProjectMagic)
	}
	identifiers := extractIdentifiers(vbaProjectData, d.opts.MaxIdentifiers)
	if uint32(len(identifiers)) >= d.opts.MaxIdentifiers {
		d.Anomalies = addAnomaly(d.Anomalies, AnoTruncatedIdentifierTable)
	}
	if !d.opts.DisasmOnly {
		fmt.Fprintln(w, "Identifiers:")
		fmt.Fprintln(w)
		for i, ident := range identifiers {
			fmt.Fprintf(w, "%04X: %s\n", i, ident)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "_VBA_PROJECT parsing done.")
		fmt.Fprintln(w, strings.Repeat("-", 79))
	}

	if vp.SignaturePath == "" {
		d.Anomalies = addAnomaly(d.Anomalies, AnoUnsignedProject)
	} else if sig, err := d.reader.ReadStream(vp.SignaturePath); err == nil {
		info, err := parseSignature(sig)
		if err != nil {
			d.Anomalies = addAnomaly(d.Anomalies, AnoInvalidSignature)
		} else if !d.opts.DisasmOnly {
			fmt.Fprintf(w, "Digital signature: %s\n", info.Summary())
			fmt.Fprintln(w, strings.Repeat("-", 79))
		}
	}

	fmt.Fprintln(w, "Module streams:")
	dec := newDecoder(dir.codepage)
	for _, modName := range dir.moduleNames {
		modulePath := vp.Root + "/VBA/" + modName
		if vp.Root == "" {
			modulePath = "VBA/" + modName
		}
		moduleData, err := d.reader.ReadStream(modulePath)
		if err != nil {
			d.logger.Warnf("module %s: %v", modulePath, err)
			continue
		}
		fmt.Fprintf(w, "%s - %d bytes\n", modulePath, len(moduleData))
		if err := d.disassembleModule(w, moduleData, vbaProjectData, identifiers, dir.is64bit, dec); err != nil {
			d.logger.Errorf("module %s: %v", modulePath, err)
		}
	}
	return nil
}

func (d *Document) disassembleModule(w io.Writer, moduleData, vbaProjectData []byte, identifiers []string, is64bit bool, dec decoder) error {
	if d.opts.Verbose && !d.opts.DisasmOnly {
		fmt.Fprint(w, hexdump(moduleData))
	}

	layout, err := locateModuleLayout(moduleData, vbaProjectData, is64bit)
	if err != nil {
		if errors.Is(err, ErrNoPcodeMagic) {
			d.Anomalies = addAnomaly(d.Anomalies, AnoNoPcodeMagic)
			return nil
		}
		return err
	}
	if len(layout.lines) == 0 {
		d.Anomalies = addAnomaly(d.Anomalies, AnoEmptyModule)
	}

	if d.opts.Verbose {
		if len(layout.declarationTable) > 0 {
			fmt.Fprintln(w, "Declaration table:")
			fmt.Fprint(w, hexdump(layout.declarationTable))
		}
		if len(layout.indirectTable) > 0 {
			fmt.Fprintln(w, "Indirect table:")
			fmt.Fprint(w, hexdump(layout.indirectTable))
		}
		if len(layout.objectTable) > 0 {
			fmt.Fprintln(w, "Object table:")
			fmt.Fprint(w, hexdump(layout.objectTable))
		}
	}

	tables := auxTables{
		declaration: layout.declarationTable,
		indirect:    layout.indirectTable,
		object:      layout.objectTable,
		end:         layout.end,
	}
	for i, ln := range layout.lines {
		start := layout.pcodeStart + ln.offset
		err := disassembleLine(w, moduleData, start, ln.length, layout.end, layout.ver, is64bit, identifiers, tables, dec, d.opts.Verbose, i)
		if err != nil {
			var uoe *unrecognizedOpcodeError
			if errors.As(err, &uoe) {
				d.Anomalies = addAnomaly(d.Anomalies, AnoUnrecognizedOpcode)
				continue
			}
			return err
		}
	}
	return nil
}

// mapFile opens path as a compound document, disassembles it to w, prints
// its anomalies to stderr and closes it.
func mapFile(path string, opts *Options, w io.Writer) error {
	doc, err := New(path, opts)
	if err != nil {
		return err
	}
	defer doc.Close()
	if err := doc.Disassemble(w); err != nil {
		return err
	}
	for _, a := range doc.Anomalies {
		fmt.Fprintln(os.Stderr, "anomaly:", a)
	}
	return nil
}
