package user

import "time"

// BirthdateRangeForAges converts inclusive age bounds into an inclusive
// birthdate range as of now. Both bounds derive from the single now snapshot
// passed in, so the two filter branches can never drift apart within one
// query. A user turns minAge exactly minAge years after their birthdate, so
// the newest admissible birthdate is now minus minAge years; symmetrically
// the oldest admissible birthdate is now minus maxAge years.
func BirthdateRangeForAges(minAge *int, maxAge *int, now time.Time) (from *time.Time, to *time.Time) {
	if maxAge != nil {
		earliest := now.AddDate(-*maxAge, 0, 0)
		from = &earliest
	}
	if minAge != nil {
		latest := now.AddDate(-*minAge, 0, 0)
		to = &latest
	}
	return from, to
}
