package loantxn

// DeductionLike reports whether this kind of entry is user-managed.
// The set is closed: anything outside the known deduction kinds fails
// closed (not editable, not removable), including unknown type strings.
func (t EntryType) DeductionLike() bool {
	switch t {
	case EntryDeduction, EntryAutomaticDeduction:
		return true
	}
	return false
}

func (e *Entry) Editable() bool  { return e.Type.DeductionLike() }
func (e *Entry) Removable() bool { return e.Type.DeductionLike() }

func (e *Entry) SoftDeleted() bool { return e.IsAutomaticLoanDeductionDeleted }
