package loantxn

import "time"

// ResolveStatus derives lifecycle position from the three milestone dates.
// The most advanced milestone present wins; later milestones imply the
// earlier ones were reached, so the check runs from the end backward.
// All absent means draft. Chronological ordering between the dates is not
// validated here; the milestone workflows only ever advance monotonically.
func ResolveStatus(printed, approved, released *time.Time) Status {
	switch {
	case released != nil:
		return StatusReleased
	case approved != nil:
		return StatusApproved
	case printed != nil:
		return StatusPrinted
	}
	return StatusDraft
}

func (t *LoanTransaction) Status() Status {
	return ResolveStatus(t.PrintedDate, t.ApprovedDate, t.ReleasedDate)
}

// ReadOnly is true once any milestone date is set, or when the caller
// imposes its own lock (e.g. a permission check upstream). The two
// conditions are OR'd; status itself is never mutated by this package.
func (t *LoanTransaction) ReadOnly(externalLock bool) bool {
	return t.Status() != StatusDraft || externalLock
}
