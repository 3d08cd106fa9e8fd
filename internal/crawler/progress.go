package crawler

import (
	"flixmap/internal/models"
	"slices"
)

const (
	ModeAscending  = "ascending"
	ModeDescending = "descending"
)

// ResumePoint summarises a set of mapped ids. ascending yields the minimum,
// descending the top of the unbroken run that starts at the minimum and any
// other mode the maximum.
func ResumePoint(ids []int, mode string) (int, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	switch mode {
	case ModeAscending:
		return sorted[0], true
	case ModeDescending:
		top := sorted[0]
		for _, id := range sorted[1:] {
			if id != top+1 {
				break
			}
			top = id
		}
		return top, true
	default:
		return sorted[len(sorted)-1], true
	}
}

// Latest applies ResumePoint to the mapped ids of type t, or of every type
// when t is empty.
func Latest(store *models.MappingStore, mode string, t models.ContentType) (int, bool) {
	return ResumePoint(store.IDs(t), mode)
}
