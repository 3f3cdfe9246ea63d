package pcodedmp

// Anomalies found in a VBA project while parsing. These don't prevent the
// rest of the parse from continuing, but are worth surfacing to an analyst
// since legitimate Office toolchains don't normally produce them.
var (
	// AnoBadProjectMagic is reported when _VBA_PROJECT doesn't start with
	// the expected 0x61CC magic word.
	AnoBadProjectMagic = "_VBA_PROJECT magic 0x61CC not found"

	// AnoNoPcodeMagic is reported when a module's p-code region doesn't
	// start with the expected 0xCAFE magic word.
	AnoNoPcodeMagic = "module p-code magic 0xCAFE not found"

	// AnoEmptyModule is reported when a module stream has a declared
	// p-code region with zero lines.
	AnoEmptyModule = "module has zero p-code lines"

	// AnoUnrecognizedOpcode is reported when a line's opcode translates
	// to an index outside the canonical opcode table.
	AnoUnrecognizedOpcode = "line contains an unrecognized opcode"

	// AnoTruncatedIdentifierTable is reported when identifier extraction
	// collected Options.MaxIdentifiers identifiers and stopped there. A
	// _VBA_PROJECT stream that ends before its declared identifier count
	// is not reported.
	AnoTruncatedIdentifierTable = "_VBA_PROJECT identifier table ended early"

	// AnoUnsignedProject is reported when a project has no
	// _VBA_PROJECT_SIGNATURE stream at all.
	AnoUnsignedProject = "project has no digital signature stream"

	// AnoInvalidSignature is reported when a _VBA_PROJECT_SIGNATURE
	// stream is present but doesn't parse as a well-formed PKCS#7 blob, or
	// holds no certificate matching its first signer.
	AnoInvalidSignature = "project signature stream is not a valid PKCS#7 structure"
)

// addAnomaly appends anomaly to anomalies if it isn't already present.
func addAnomaly(anomalies []string, anomaly string) []string {
	for _, a := range anomalies {
		if a == anomaly {
			return anomalies
		}
	}
	return append(anomalies, anomaly)
}
