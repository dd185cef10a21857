package booking

import "time"

// Overlaps reports whether the proposed [start, end) interval collides with an
// existing booking. Four cases count as a collision:
//
//  1. the proposed start falls strictly inside the existing interval,
//  2. the proposed end falls strictly inside the existing interval,
//  3. the proposed interval strictly contains the existing one,
//  4. the intervals touch: existing end equals proposed start, or proposed end
//     equals existing start.
//
// Case 4 makes back-to-back bookings illegal. That is intentional product
// behavior, not an off-by-one: an item needs a handover gap between rentals.
func Overlaps(existing *Booking, start, end time.Time) bool {
	startInsideExisting := existing.Start().Before(start) && existing.End().After(start)
	endInsideExisting := existing.Start().Before(end) && existing.End().After(end)
	containsExisting := start.Before(existing.Start()) && end.After(existing.End())
	touchesExisting := existing.End().Equal(start) || end.Equal(existing.Start())

	return startInsideExisting || endInsideExisting || containsExisting || touchesExisting
}

// HasConflict reports whether the proposed interval collides with any of the
// given bookings. Callers pass only APPROVED bookings of the same item and
// guarantee start < end.
func HasConflict(existing []*Booking, start, end time.Time) bool {
	for _, bk := range existing {
		if Overlaps(bk, start, end) {
			return true
		}
	}
	return false
}
