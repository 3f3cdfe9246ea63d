package cfb

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildSyntheticCFB assembles a minimal compound file by hand: one FAT
// sector, one directory sector holding a root entry, a "VBA" storage and
// two streams under it ("dir" and "_VBA_PROJECT"), each stream exactly
// 4096 bytes long so ReadStream resolves them through the regular FAT
// chain rather than the MiniFAT.
func buildSyntheticCFB(t *testing.T, dirContent, projectContent []byte) []byte {
	t.Helper()
	const sectorSize = 512

	pad := func(b []byte, n int) []byte {
		out := make([]byte, n)
		copy(out, b)
		return out
	}
	utf16Name := func(s string) [64]byte {
		var out [64]byte
		for i, r := range s {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(r))
		}
		return out
	}

	hdr := header{
		Signature:             signature,
		MajorVersion:          3,
		ByteOrder:             0xFFFE,
		SectorShift:           9,
		MiniSectorShift:       6,
		NumFATSectors:         1,
		FirstDirSectorLoc:     1,
		MiniStreamCutoffSize:  4096,
		FirstMiniFATSectorLoc: endOfChain,
		FirstDIFATSectorLoc:   endOfChain,
	}
	hdr.DIFAT[0] = 0
	for i := 1; i < len(hdr.DIFAT); i++ {
		hdr.DIFAT[i] = freeSect
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
		t.Fatalf("writing header: %v", err)
	}

	// Sector 0: the FAT. Chains: 0 is the FAT sector itself, 1 is the
	// (single-sector) directory, 2-9 the dir stream, 10-17 the
	// _VBA_PROJECT stream; everything past that is free.
	fat := make([]uint32, sectorSize/4)
	fat[0] = fatSect
	fat[1] = endOfChain
	for i := uint32(2); i <= 8; i++ {
		fat[i] = i + 1
	}
	fat[9] = endOfChain
	for i := uint32(10); i <= 16; i++ {
		fat[i] = i + 1
	}
	fat[17] = endOfChain
	for i := 18; i < len(fat); i++ {
		fat[i] = freeSect
	}
	for _, v := range fat {
		binary.Write(&buf, binary.LittleEndian, v)
	}

	// Sector 1: the directory, holding 4 entries (sectorSize/128 = 4).
	root := direntry{
		Name:                   utf16Name("Root Entry"),
		NameLen:                22,
		ObjectType:             objTypeRootEntry,
		LeftSiblingID:          noStream,
		RightSiblingID:         noStream,
		ChildID:                1,
		StartingSectorLocation: endOfChain,
	}
	vbaStorage := direntry{
		Name:           utf16Name("VBA"),
		NameLen:        8,
		ObjectType:     objTypeStorage,
		LeftSiblingID:  noStream,
		RightSiblingID: noStream,
		ChildID:        2,
	}
	dirStream := direntry{
		Name:                   utf16Name("dir"),
		NameLen:                8,
		ObjectType:             objTypeStream,
		LeftSiblingID:          noStream,
		RightSiblingID:         3,
		ChildID:                noStream,
		StartingSectorLocation: 2,
		StreamSize:             4096,
	}
	projectStream := direntry{
		Name:                   utf16Name("_VBA_PROJECT"),
		NameLen:                26,
		ObjectType:             objTypeStream,
		LeftSiblingID:          noStream,
		RightSiblingID:         noStream,
		ChildID:                noStream,
		StartingSectorLocation: 10,
		StreamSize:             4096,
	}
	for _, e := range []direntry{root, vbaStorage, dirStream, projectStream} {
		binary.Write(&buf, binary.LittleEndian, &e)
	}

	// Sectors 2-9: the "dir" stream.
	buf.Write(pad(dirContent, 4096))
	// Sectors 10-17: the "_VBA_PROJECT" stream.
	buf.Write(pad(projectContent, 4096))

	return buf.Bytes()
}

func TestOpenBytesBadSignature(t *testing.T) {
	_, err := OpenBytes([]byte{0x00, 0x01, 0x02, 0x03})
	if err != ErrBadSignature {
		t.Fatalf("err = %v, want ErrBadSignature", err)
	}
}

func TestOpenBytesAndReadStream(t *testing.T) {
	dirContent := []byte("dir-stream-payload")
	projectContent := []byte("vba-project-payload")
	data := buildSyntheticCFB(t, dirContent, projectContent)

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	got, err := r.ReadStream("VBA/dir")
	if err != nil {
		t.Fatalf("ReadStream(VBA/dir): %v", err)
	}
	if !bytes.Equal(got[:len(dirContent)], dirContent) {
		t.Errorf("dir stream content = %q, want prefix %q", got[:len(dirContent)], dirContent)
	}
	if len(got) != 4096 {
		t.Errorf("dir stream length = %d, want 4096", len(got))
	}

	got, err = r.ReadStream("vba/_vba_project")
	if err != nil {
		t.Fatalf("ReadStream(vba/_vba_project) (case-insensitive): %v", err)
	}
	if !bytes.Equal(got[:len(projectContent)], projectContent) {
		t.Errorf("_VBA_PROJECT content = %q, want prefix %q", got[:len(projectContent)], projectContent)
	}
}

func TestOpenBytesReadStreamNotFound(t *testing.T) {
	data := buildSyntheticCFB(t, nil, nil)
	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	if _, err := r.ReadStream("nope"); err == nil {
		t.Fatal("expected ReadStream of a missing stream to fail")
	}
}

func TestFindVBAProjects(t *testing.T) {
	data := buildSyntheticCFB(t, []byte{0x01}, []byte{0xCC, 0x61})
	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	projects := r.FindVBAProjects()
	if len(projects) != 1 {
		t.Fatalf("FindVBAProjects = %d entries, want 1", len(projects))
	}
	p := projects[0]
	if p.Root != "" {
		t.Errorf("Root = %q, want empty (top-level VBA storage)", p.Root)
	}
	if p.DirStreamPath != "VBA/dir" {
		t.Errorf("DirStreamPath = %q, want VBA/dir", p.DirStreamPath)
	}
	if p.ProjectPath != "VBA/_VBA_PROJECT" {
		t.Errorf("ProjectPath = %q, want VBA/_VBA_PROJECT", p.ProjectPath)
	}
	if p.SignaturePath != "" {
		t.Errorf("SignaturePath = %q, want empty (no signature stream present)", p.SignaturePath)
	}
}

func TestStreamsListsBothStreams(t *testing.T) {
	data := buildSyntheticCFB(t, nil, nil)
	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	names := map[string]bool{}
	for _, s := range r.Streams() {
		names[s] = true
	}
	if !names["VBA/dir"] || !names["VBA/_VBA_PROJECT"] {
		t.Errorf("Streams() = %v, want VBA/dir and VBA/_VBA_PROJECT", r.Streams())
	}
}
