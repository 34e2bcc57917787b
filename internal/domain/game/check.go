package game

import "fmt"

// Band is the three-way outcome classification of a check
type Band string

const (
	BandFailure     Band = "Failure"
	BandMixed       Band = "Mixed Success"
	BandFullSuccess Band = "Full Success"
)

// ClassifyCheck maps a check total to its outcome band.
// 6 is a Failure and 10 is a Full Success; there is no overlap.
func ClassifyCheck(total int) Band {
	switch {
	case total <= 6:
		return BandFailure
	case total < 10:
		return BandMixed
	default:
		return BandFullSuccess
	}
}

// CheckResult holds a resolved 2d6+stat+modifier check
type CheckResult struct {
	D1       int
	D2       int
	Stat     int
	Modifier int
	Total    int
	Band     Band
}

// ResolveCheck computes the total and band for two d6 draws against a
// stat value and an optional modifier
func ResolveCheck(d1, d2, stat, modifier int) *CheckResult {
	total := d1 + d2 + stat + modifier
	return &CheckResult{
		D1:       d1,
		D2:       d2,
		Stat:     stat,
		Modifier: modifier,
		Total:    total,
		Band:     ClassifyCheck(total),
	}
}

// Equation renders the arithmetic without the final total. With a
// nonzero modifier the pre-modifier subtotal is shown first, then the
// signed modifier.
func (r *CheckResult) Equation() string {
	statSign := "+"
	if r.Stat < 0 {
		statSign = "-"
	}

	if r.Modifier == 0 {
		return fmt.Sprintf("%d + %d %s %d", r.D1, r.D2, statSign, abs(r.Stat))
	}

	modSign := "+"
	if r.Modifier < 0 {
		modSign = "-"
	}
	withoutMod := r.D1 + r.D2 + r.Stat
	return fmt.Sprintf("%d + %d %s %d = %d %s %d", r.D1, r.D2, statSign, abs(r.Stat), withoutMod, modSign, abs(r.Modifier))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
