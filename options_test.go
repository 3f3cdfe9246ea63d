package pcodedmp

import "testing"

func TestOptionsWithDefaultsNil(t *testing.T) {
	o := (*Options)(nil).withDefaults()
	if o.MaxIdentifiers != MaxDefaultIdentifierCount {
		t.Errorf("MaxIdentifiers = %d, want %d", o.MaxIdentifiers, MaxDefaultIdentifierCount)
	}
	if o.Logger == nil {
		t.Error("expected a default Logger to be installed")
	}
}

func TestOptionsWithDefaultsPreservesExplicitValues(t *testing.T) {
	o := (&Options{Verbose: true, MaxIdentifiers: 5}).withDefaults()
	if !o.Verbose {
		t.Error("expected Verbose to be preserved")
	}
	if o.MaxIdentifiers != 5 {
		t.Errorf("MaxIdentifiers = %d, want 5", o.MaxIdentifiers)
	}
}
