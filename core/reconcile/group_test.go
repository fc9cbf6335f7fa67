package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupByParent(t *testing.T) {
	records := []Association[uint, uint]{
		{ID: 1, ParentID: 1, ChildID: 7},
		{ID: 2, ParentID: 1, ChildID: 5},
		{ID: 3, ParentID: 1, ChildID: 9, IsDeleted: true},
		{ID: 4, ParentID: 2, ChildID: 5},
		{ID: 5, ParentID: 1, ChildID: 5},
		{ID: 6, ParentID: 3, ChildID: 1, IsDeleted: true},
	}

	grouped := GroupByParent(records)

	assert.Equal(t, map[uint][]uint{
		1: {5, 7},
		2: {5},
	}, grouped)
	assert.NotContains(t, grouped, uint(3), "parents with only deleted links have no baseline")
}

func TestGroupByParent_Empty(t *testing.T) {
	assert.Empty(t, GroupByParent[uint, uint](nil))
}

func TestIndexByChild(t *testing.T) {
	records := []Association[uint, uint]{
		{ID: 10, ParentID: 1, ChildID: 3},
		{ID: 11, ParentID: 1, ChildID: 4, IsDeleted: true},
		{ID: 12, ParentID: 2, ChildID: 3},
		{ID: 13, ParentID: 1, ChildID: 3},
	}

	index := IndexByChild(records, uint(1))

	assert.Equal(t, map[uint]uint{3: 10}, index)
}
