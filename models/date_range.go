package models

import "time"

// DateRange is an occupancy window, half-open: [Start, End).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) Valid() bool {
	return r.Start.Before(r.End)
}

func (r DateRange) UTC() DateRange {
	return DateRange{Start: r.Start.UTC(), End: r.End.UTC()}
}

// Overlaps applies the same three-clause test the store query uses.
func (r DateRange) Overlaps(other DateRange) bool {
	if !r.Valid() {
		return false
	}
	checkInInside := !other.Start.Before(r.Start) && other.Start.Before(r.End)
	checkOutInside := other.End.After(r.Start) && !other.End.After(r.End)
	contains := !other.Start.After(r.Start) && !other.End.Before(r.End)
	return checkInInside || checkOutInside || contains
}
