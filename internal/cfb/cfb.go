// Package cfb is the out-of-scope "compound-file container reader"
// collaborator named in spec.md §1: it exposes the named streams of a
// legacy compound document (.doc/.xls/.ppt and friends) as byte slices,
// and the core disassembler consumes it purely as a byte-producing
// service. It implements just enough of [MS-CFB] to walk the directory
// tree, resolve FAT/MiniFAT sector chains, and read a stream given its
// path — no write support, no defragmentation, no DIFAT-sector chain
// beyond what the header's 109 inline entries plus a handful of DIFAT
// sectors would realistically need for an Office document.
package cfb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"

	mmap "github.com/edsrzf/mmap-go"
)

const (
	headerSize    = 512
	direntrySize  = 128
	miniSectorCut = 4096

	freeSect   = 0xFFFFFFFF
	endOfChain = 0xFFFFFFFE
	fatSect    = 0xFFFFFFFD
	difSect    = 0xFFFFFFFC

	noStream = 0xFFFFFFFF

	objTypeStorage   = 1
	objTypeStream    = 2
	objTypeRootEntry = 5
)

var signature = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Errors returned by Open/OpenBytes/ReadStream.
var (
	ErrBadSignature = errors.New("cfb: bad compound file signature")
	ErrNoSuchStream = errors.New("cfb: no such stream")
	ErrCorrupt      = errors.New("cfb: corrupt directory or sector chain")
)

type header struct {
	Signature              [8]byte
	CLSID                  [16]byte
	MinorVersion           uint16
	MajorVersion           uint16
	ByteOrder              uint16
	SectorShift            uint16
	MiniSectorShift        uint16
	Reserved               [6]byte
	NumDirSectors          uint32
	NumFATSectors          uint32
	FirstDirSectorLoc      uint32
	TransactionSignature   uint32
	MiniStreamCutoffSize   uint32
	FirstMiniFATSectorLoc  uint32
	NumMiniFATSectors      uint32
	FirstDIFATSectorLoc    uint32
	NumDIFATSectors        uint32
	DIFAT                  [109]uint32
}

type direntry struct {
	Name                   [64]byte
	NameLen                uint16
	ObjectType             byte
	ColorFlag              byte
	LeftSiblingID          uint32
	RightSiblingID         uint32
	ChildID                uint32
	CLSID                  [16]byte
	StateBits              uint32
	CreationTime           uint64
	ModifiedTime           uint64
	StartingSectorLocation uint32
	StreamSize             uint64
}

func (d *direntry) name() string {
	n := int(d.NameLen)
	if n < 2 {
		return ""
	}
	// NameLen includes the trailing NUL terminator; strip it off.
	u16 := make([]uint16, 0, (n-2)/2)
	for i := 0; i+1 < n-2 && i+1 < len(d.Name); i += 2 {
		u16 = append(u16, binary.LittleEndian.Uint16(d.Name[i:i+2]))
	}
	var sb strings.Builder
	for _, r := range u16 {
		sb.WriteRune(rune(r))
	}
	return sb.String()
}

// entry is a resolved directory-tree node with its full path.
type entry struct {
	path string
	d    direntry
}

// Reader reads streams out of an opened compound file.
type Reader struct {
	data       []byte
	mm         mmap.MMap
	f          *os.File
	hdr        header
	sectorSize int
	miniSize   int
	fat        []uint32
	miniFAT    []uint32
	miniStream []byte
	entries    map[string]*entry
	root       *entry
}

// Open memory-maps path and opens it as a compound file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	r, err := OpenBytes(mm)
	if err != nil {
		mm.Unmap()
		f.Close()
		return nil, err
	}
	r.mm = mm
	r.f = f
	return r, nil
}

// OpenBytes opens an in-memory compound file.
func OpenBytes(data []byte) (*Reader, error) {
	if len(data) < headerSize {
		return nil, ErrBadSignature
	}
	r := &Reader{data: data}
	if err := r.parseHeader(); err != nil {
		return nil, err
	}
	if err := r.buildFAT(); err != nil {
		return nil, err
	}
	if err := r.buildDirectory(); err != nil {
		return nil, err
	}
	if err := r.buildMiniFAT(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases any memory-mapped backing file.
func (r *Reader) Close() error {
	if r.mm != nil {
		_ = r.mm.Unmap()
	}
	if r.f != nil {
		return r.f.Close()
	}
	return nil
}

func (r *Reader) parseHeader() error {
	buf := bytes.NewReader(r.data[:headerSize])
	if err := binary.Read(buf, binary.LittleEndian, &r.hdr); err != nil {
		return err
	}
	if r.hdr.Signature != signature {
		return ErrBadSignature
	}
	r.sectorSize = 1 << r.hdr.SectorShift
	r.miniSize = 1 << r.hdr.MiniSectorShift
	return nil
}

func (r *Reader) sector(id uint32) ([]byte, error) {
	start := headerSize + int(id)*r.sectorSize
	if start < 0 || start+r.sectorSize > len(r.data) {
		return nil, ErrCorrupt
	}
	return r.data[start : start+r.sectorSize], nil
}

// buildFAT assembles the full sector allocation table from the header's
// inline DIFAT entries plus any DIFAT sectors.
func (r *Reader) buildFAT() error {
	var fatSectors []uint32
	for _, id := range r.hdr.DIFAT {
		if id != freeSect {
			fatSectors = append(fatSectors, id)
		}
	}
	next := r.hdr.FirstDIFATSectorLoc
	for i := uint32(0); i < r.hdr.NumDIFATSectors && next != endOfChain && next != freeSect; i++ {
		sec, err := r.sector(next)
		if err != nil {
			return err
		}
		entriesPerSector := r.sectorSize/4 - 1
		for j := 0; j < entriesPerSector; j++ {
			id := binary.LittleEndian.Uint32(sec[j*4:])
			if id != freeSect {
				fatSectors = append(fatSectors, id)
			}
		}
		next = binary.LittleEndian.Uint32(sec[entriesPerSector*4:])
	}

	entriesPerSector := r.sectorSize / 4
	r.fat = make([]uint32, 0, len(fatSectors)*entriesPerSector)
	for _, sid := range fatSectors {
		sec, err := r.sector(sid)
		if err != nil {
			return err
		}
		for j := 0; j < entriesPerSector; j++ {
			r.fat = append(r.fat, binary.LittleEndian.Uint32(sec[j*4:]))
		}
	}
	return nil
}

// chain follows the FAT starting at startSector, returning the concatenated
// sector bytes truncated to size (if size >= 0).
func (r *Reader) chain(startSector uint32, size int64) ([]byte, error) {
	var out []byte
	id := startSector
	seen := map[uint32]bool{}
	for id != endOfChain && id != freeSect {
		if seen[id] {
			return nil, ErrCorrupt
		}
		seen[id] = true
		sec, err := r.sector(id)
		if err != nil {
			return nil, err
		}
		out = append(out, sec...)
		if int(id) >= len(r.fat) {
			return nil, ErrCorrupt
		}
		id = r.fat[id]
	}
	if size >= 0 && int64(len(out)) > size {
		out = out[:size]
	}
	return out, nil
}

func (r *Reader) buildDirectory() error {
	dirBytes, err := r.chain(r.hdr.FirstDirSectorLoc, -1)
	if err != nil {
		return err
	}
	count := len(dirBytes) / direntrySize
	raw := make([]direntry, count)
	for i := 0; i < count; i++ {
		buf := bytes.NewReader(dirBytes[i*direntrySize : (i+1)*direntrySize])
		if err := binary.Read(buf, binary.LittleEndian, &raw[i]); err != nil {
			return err
		}
	}
	if count == 0 {
		return ErrCorrupt
	}
	r.entries = make(map[string]*entry)
	rootEntry := &entry{path: "", d: raw[0]}
	r.root = rootEntry
	var walk func(id uint32, prefix string)
	walk = func(id uint32, prefix string) {
		if id == noStream || int(id) >= len(raw) {
			return
		}
		d := raw[id]
		name := d.name()
		var path string
		if prefix == "" {
			path = name
		} else {
			path = prefix + "/" + name
		}
		if d.ObjectType == objTypeStorage || d.ObjectType == objTypeStream {
			r.entries[strings.ToLower(path)] = &entry{path: path, d: d}
		}
		// Walk the red-black sibling tree.
		walk(d.LeftSiblingID, prefix)
		walk(d.RightSiblingID, prefix)
		if d.ObjectType == objTypeStorage || d.ObjectType == objTypeRootEntry {
			childPrefix := path
			if d.ObjectType == objTypeRootEntry {
				childPrefix = prefix
			}
			walk(d.ChildID, childPrefix)
		}
	}
	walk(raw[0].ChildID, "")
	return nil
}

func (r *Reader) buildMiniFAT() error {
	if r.hdr.NumMiniFATSectors == 0 {
		return nil
	}
	b, err := r.chain(r.hdr.FirstMiniFATSectorLoc, -1)
	if err != nil {
		return err
	}
	r.miniFAT = make([]uint32, len(b)/4)
	for i := range r.miniFAT {
		r.miniFAT[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	ms, err := r.chain(r.root.d.StartingSectorLocation, int64(r.root.d.StreamSize))
	if err != nil {
		return err
	}
	r.miniStream = ms
	return nil
}

func (r *Reader) miniChain(startSector uint32, size int64) ([]byte, error) {
	var out []byte
	id := startSector
	seen := map[uint32]bool{}
	for id != endOfChain && id != freeSect {
		if seen[id] {
			return nil, ErrCorrupt
		}
		seen[id] = true
		start := int(id) * r.miniSize
		if start+r.miniSize > len(r.miniStream) {
			return nil, ErrCorrupt
		}
		out = append(out, r.miniStream[start:start+r.miniSize]...)
		if int(id) >= len(r.miniFAT) {
			return nil, ErrCorrupt
		}
		id = r.miniFAT[id]
	}
	if size >= 0 && int64(len(out)) > size {
		out = out[:size]
	}
	return out, nil
}

// Streams lists every stream path in the file.
func (r *Reader) Streams() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		if e.d.ObjectType == objTypeStream {
			out = append(out, e.path)
		}
	}
	return out
}

// ReadStream returns the bytes of the stream at path (case-insensitive,
// "/"-separated).
func (r *Reader) ReadStream(path string) ([]byte, error) {
	e, ok := r.entries[strings.ToLower(path)]
	if !ok || e.d.ObjectType != objTypeStream {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchStream, path)
	}
	size := int64(e.d.StreamSize)
	if size < miniSectorCut {
		return r.miniChain(e.d.StartingSectorLocation, size)
	}
	return r.chain(e.d.StartingSectorLocation, size)
}

// VBAProject locates a VBA project root: a storage containing both a "dir"
// and a "_VBA_PROJECT" stream directly under a "VBA" substorage (the usual
// shape across Word/Excel/PowerPoint documents, and also directly at the
// top for standalone VBA project files).
type VBAProject struct {
	Root            string // storage path containing the "VBA" substorage
	DirStreamPath   string
	ProjectPath     string
	SignaturePath   string // "" if absent
}

// FindVBAProjects scans the directory tree for VBA project roots.
func (r *Reader) FindVBAProjects() []VBAProject {
	var projects []VBAProject
	for _, e := range r.entries {
		if e.d.ObjectType != objTypeStorage {
			continue
		}
		if !strings.EqualFold(baseName(e.path), "VBA") {
			continue
		}
		dirPath := e.path + "/dir"
		projPath := e.path + "/_VBA_PROJECT"
		if _, ok := r.entries[strings.ToLower(dirPath)]; !ok {
			continue
		}
		if _, ok := r.entries[strings.ToLower(projPath)]; !ok {
			continue
		}
		root := parentPath(e.path)
		p := VBAProject{Root: root, DirStreamPath: dirPath, ProjectPath: projPath}
		sigPath := root + "/_VBA_PROJECT_SIGNATURE"
		if root == "" {
			sigPath = "_VBA_PROJECT_SIGNATURE"
		}
		if _, ok := r.entries[strings.ToLower(sigPath)]; ok {
			p.SignaturePath = sigPath
		}
		projects = append(projects, p)
	}
	return projects
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func parentPath(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return ""
}
