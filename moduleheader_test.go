package pcodedmp

import "testing"

func TestSliceAtWithinBounds(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	got, err := sliceAt(buf, 1, 3)
	if err != nil {
		t.Fatalf("sliceAt: %v", err)
	}
	want := []byte{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSliceAtOutOfBounds(t *testing.T) {
	buf := []byte{1, 2, 3}
	if _, err := sliceAt(buf, 2, 5); err != ErrOutsideBoundary {
		t.Fatalf("err = %v, want ErrOutsideBoundary", err)
	}
}

func TestSliceAtOffsetPastEnd(t *testing.T) {
	buf := []byte{1, 2, 3}
	if _, err := sliceAt(buf, 10, 0); err != ErrOutsideBoundary {
		t.Fatalf("err = %v, want ErrOutsideBoundary", err)
	}
}

func TestLocateModuleLayoutMissingPcodeMagic(t *testing.T) {
	// A VBA7 32-bit module header: version >= 0x97 selects VBA7 and
	// is64bit=false the 32-bit layout in locateModuleLayout. All the auxiliary-table lengths are
	// zero, so every table slice is empty; the p-code header at offset
	// 0x0019 is zero, so the magic check reads moduleData[0x3C:0x3E],
	// which is never 0xCAFE in an all-zero buffer.
	moduleData := make([]byte, 0x200)
	vbaProjectData := make([]byte, 4)
	vbaProjectData[2] = 0x97 // version, little-endian

	_, err := locateModuleLayout(moduleData, vbaProjectData, false)
	if err != ErrNoPcodeMagic {
		t.Fatalf("err = %v, want ErrNoPcodeMagic", err)
	}
}
