package protocol

// Dialect carries the wire-compatibility toggles needed because real
// firmware revisions disagree with the documented protocol in at least
// one place. spec.md §9 leaves the choice open; DESIGN.md resolves it
// by defaulting to the behavior actually observed on the wire.
type Dialect struct {
	// EmitDocumentedFrontPanelQuery selects which form a front-panel
	// lock-state report is formatted in. false (the default) emits the
	// actual, buggy wire form "FPL<0|1>"; true emits the documented
	// "FPL<0|1>QFPL" form. Both forms are always accepted on parse
	// (frontPanelReportPatterns), since a client must tolerate whichever
	// firmware revision it happens to be talking to.
	EmitDocumentedFrontPanelQuery bool
}

// DefaultDialect is the dialect matching observed hardware behavior.
func DefaultDialect() Dialect {
	return Dialect{EmitDocumentedFrontPanelQuery: false}
}
