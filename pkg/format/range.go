package format

// Range restricts formatting to a half-open byte span of the input.
// A nil bound is unbounded on that side.
type Range struct {
	Start *int
	End   *int
}

// RangeFromValues builds a Range from optional byte bounds.
// Returns nil when neither bound is set, meaning "whole file".
func RangeFromValues(start, end *int) *Range {
	if start == nil && end == nil {
		return nil
	}
	return &Range{Start: start, End: end}
}

// Contains reports whether the byte span [lo, hi) lies entirely inside
// the range. A nil Range contains everything.
func (r *Range) Contains(lo, hi int) bool {
	if r == nil {
		return true
	}
	if r.Start != nil && lo < *r.Start {
		return false
	}
	if r.End != nil && hi > *r.End {
		return false
	}
	return true
}
