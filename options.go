package pcodedmp

import (
	"os"

	"github.com/malware-tools/pcodedmp/internal/log"
)

// Default bound on how many identifiers a single _VBA_PROJECT stream will
// yield before the extractor gives up — guards against a malformed numIDs
// computation (spec.md §4.3 step 9) spinning on attacker-controlled input.
const MaxDefaultIdentifierCount = 1 << 16

// Options configures a Document parse, mirroring the teacher's Options
// struct in file.go: zero-value-friendly, defaulted in New/NewBytes.
type Options struct {
	// Verbose includes hexdumps of each stream, each module's auxiliary
	// tables, and raw opcode words alongside mnemonics (spec.md §6).
	Verbose bool

	// DisasmOnly suppresses stream dumps and the identifier listing,
	// emitting only the per-line disassembly (spec.md §6).
	DisasmOnly bool

	// MaxIdentifiers bounds how many identifiers the extractor will
	// collect from _VBA_PROJECT before stopping, by default
	// MaxDefaultIdentifierCount.
	MaxIdentifiers uint32

	// Logger receives diagnostics; defaults to an unfiltered stdout logger.
	Logger log.Logger
}

func (o *Options) withDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.MaxIdentifiers == 0 {
		out.MaxIdentifiers = MaxDefaultIdentifierCount
	}
	if out.Logger == nil {
		out.Logger = log.NewStdLogger(os.Stdout)
	}
	return &out
}
