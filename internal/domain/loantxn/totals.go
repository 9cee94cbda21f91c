package loantxn

import "github.com/shopspring/decimal"

// Totals is the derived bookkeeping state of an entry set. Balanced is
// advisory: an unbalanced transaction can still be saved, the flag only
// feeds the balance indicator.
type Totals struct {
	TotalDebit      decimal.Decimal `json:"total_debit"`
	TotalCredit     decimal.Decimal `json:"total_credit"`
	TotalAddOn      decimal.Decimal `json:"total_add_on"`
	DeductionsTotal decimal.Decimal `json:"deductions_total"`
	Difference      decimal.Decimal `json:"difference"`
	Balanced        bool            `json:"balanced"`
}

// ComputeTotals aggregates the live entry set. Soft-deleted automatic
// deductions do not count toward any total. Pure: same entries, same
// totals, no hidden state.
func ComputeTotals(entries []Entry) Totals {
	t := Totals{
		TotalDebit:      decimal.Zero,
		TotalCredit:     decimal.Zero,
		TotalAddOn:      decimal.Zero,
		DeductionsTotal: decimal.Zero,
	}
	for i := range entries {
		e := &entries[i]
		if e.SoftDeleted() {
			continue
		}
		t.TotalDebit = t.TotalDebit.Add(e.Debit)
		t.TotalCredit = t.TotalCredit.Add(e.Credit)
		if e.IsAddOn {
			t.TotalAddOn = t.TotalAddOn.Add(e.Amount())
		}
		if e.Type.DeductionLike() && !e.IsAddOn {
			t.DeductionsTotal = t.DeductionsTotal.Add(e.Credit)
		}
	}
	t.Difference = t.TotalDebit.Sub(t.TotalCredit).Abs()
	t.Balanced = t.TotalDebit.Equal(t.TotalCredit)
	return t
}

// RecomputeTotals stamps the running totals onto the aggregate and returns
// them. Called after every entry mutation so the stored totals and the
// entry list never diverge.
func (t *LoanTransaction) RecomputeTotals() Totals {
	totals := ComputeTotals(t.Entries)
	t.TotalDebit = totals.TotalDebit
	t.TotalCredit = totals.TotalCredit
	t.TotalAddOn = totals.TotalAddOn
	return totals
}
