package loantxn

// GuardContext carries the transaction-wide reasons every entry mutation
// is off at once.
type GuardContext struct {
	GlobalDisabled bool
}

func CanEditEntry(e *Entry, ctx GuardContext) bool {
	return e.Editable() && !e.SoftDeleted() && !ctx.GlobalDisabled
}

func CanRemoveEntry(e *Entry, ctx GuardContext) bool {
	return e.Removable() && !e.SoftDeleted() && !ctx.GlobalDisabled
}

// CanRestoreEntry ignores GlobalDisabled: restoring is the recovery action
// for an over-eager delete and must stay reachable.
func CanRestoreEntry(e *Entry) bool { return e.SoftDeleted() }

// MutationsDisabled aggregates the per-transaction disable conditions:
// read-only lifecycle, unpersisted parent, or the deduction-suppressing
// loan type.
func (t *LoanTransaction) MutationsDisabled(externalLock bool) bool {
	return t.ReadOnly(externalLock) || !t.Persisted() || t.LoanType.SuppressesDeductions()
}

// CanAddDeduction gates creating new deduction entries, independent of any
// single entry's state.
func (t *LoanTransaction) CanAddDeduction(externalLock bool) bool {
	return !t.MutationsDisabled(externalLock)
}

func (t *LoanTransaction) Guard(externalLock bool) GuardContext {
	return GuardContext{GlobalDisabled: t.MutationsDisabled(externalLock)}
}
