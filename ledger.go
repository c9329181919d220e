package ledgercore

// LedgerType tags which variant side-record a Ledger carries.
type LedgerType string

const (
	LedgerIntermediate LedgerType = "Intermediate"
	LedgerLeaf         LedgerType = "Leaf"
	LedgerDerived      LedgerType = "Derived"
)

// Ledger is a node in the chart-of-accounts tree. It carries only its own
// id and an optional parent id — no back-pointer to a parent object, so the
// graph is walked top-down through ParentID rather than held together by a
// cyclic ownership reference.
type Ledger struct {
	ID           ID
	Number       Code
	Name         Name
	ParentID     *ID
	Type         LedgerType
	CurrencyCode *CurrencyCode
	Archived     bool
}

// IntermediateLedger is the side record for a LedgerIntermediate node. It
// carries no extra fields today; its presence is what lets the graph
// distinguish "can have children" nodes from leaves without a type switch
// on Ledger.Type alone.
type IntermediateLedger struct {
	LedgerID ID
}

// LeafLedger is the side record for a LedgerLeaf node. Leaves are the only
// valid posting targets.
type LeafLedger struct {
	LedgerID ID
}

// DerivedLedger is the side record for a LedgerDerived node. Its balance is
// a pure function over DependsOn, but the formula is not implemented —
// Balance always returns a NotImplemented error rather than guessing one.
type DerivedLedger struct {
	LedgerID  ID
	DependsOn []ID
}

// Balance is intentionally unimplemented: no balance formula has been
// agreed for derived ledgers yet.
func (DerivedLedger) Balance() (Amount, error) {
	return Amount{}, NewNotImplementedErrorf("derived ledger balance formula is not specified")
}

// GeneralLedger is the singleton chart-of-accounts header for a tenant.
type GeneralLedger struct {
	ID           ID
	Name         Name
	RootLedgerID ID
	CurrencyCode CurrencyCode
}

// LedgerXactType names the two ledger-transaction shapes the posting engine
// produces: "LL" (ledger<->ledger) and "LA" (ledger<->account).
type LedgerXactType struct {
	Code        Code // "LL" or "LA"
	Description Name
}

const (
	LedgerXactTypeLedgerLedger  = "LL"
	LedgerXactTypeLedgerAccount = "LA"
)
