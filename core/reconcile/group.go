package reconcile

import (
	"cmp"
	"slices"
)

// GroupByParent builds the baseline of every parent from stored association records.
// Soft-deleted records are skipped and each child appears at most once per parent.
func GroupByParent[P comparable, C cmp.Ordered](records []Association[P, C]) map[P][]C {
	grouped := make(map[P][]C)
	for _, r := range records {
		if r.IsDeleted {
			continue
		}
		grouped[r.ParentID] = append(grouped[r.ParentID], r.ChildID)
	}
	for parent, children := range grouped {
		slices.Sort(children)
		grouped[parent] = slices.Compact(children)
	}
	return grouped
}

// IndexByChild maps each live child of one parent to its association record id.
// It is used by stores that delete links by record id rather than by pair.
func IndexByChild[P comparable, C cmp.Ordered](records []Association[P, C], parent P) map[C]uint {
	index := make(map[C]uint)
	for _, r := range records {
		if r.IsDeleted || r.ParentID != parent {
			continue
		}
		if _, seen := index[r.ChildID]; !seen {
			index[r.ChildID] = r.ID
		}
	}
	return index
}
