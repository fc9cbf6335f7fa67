package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name      string
		baseline  []uint
		desired   []uint
		toAdd     []uint
		toRemove  []uint
		unchanged []uint
	}{
		{
			name:      "Empty to empty",
			baseline:  nil,
			desired:   nil,
			toAdd:     []uint{},
			toRemove:  []uint{},
			unchanged: []uint{},
		},
		{
			name:      "Full removal",
			baseline:  []uint{1, 2, 3},
			desired:   []uint{},
			toAdd:     []uint{},
			toRemove:  []uint{1, 2, 3},
			unchanged: []uint{},
		},
		{
			name:      "Full creation",
			baseline:  []uint{},
			desired:   []uint{10, 20},
			toAdd:     []uint{10, 20},
			toRemove:  []uint{},
			unchanged: []uint{},
		},
		{
			name:      "Amenity swap",
			baseline:  []uint{5, 7},
			desired:   []uint{5, 9},
			toAdd:     []uint{9},
			toRemove:  []uint{7},
			unchanged: []uint{5},
		},
		{
			name:      "Duplicates collapse",
			baseline:  []uint{1, 1, 2},
			desired:   []uint{2, 2, 3},
			toAdd:     []uint{3},
			toRemove:  []uint{1},
			unchanged: []uint{2},
		},
		{
			name:      "Order is irrelevant",
			baseline:  []uint{3, 1, 2},
			desired:   []uint{2, 3, 1},
			toAdd:     []uint{},
			toRemove:  []uint{},
			unchanged: []uint{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Diff(tt.baseline, tt.desired)
			assert.Equal(t, tt.toAdd, plan.ToAdd)
			assert.Equal(t, tt.toRemove, plan.ToRemove)
			assert.Equal(t, tt.unchanged, plan.Unchanged)
			assert.Equal(t, len(tt.toAdd)+len(tt.toRemove), plan.Operations())
			assert.Equal(t, plan.Operations() == 0, plan.Empty())
		})
	}
}

// TestDiff_SetArithmetic checks |B-A| adds and |A-B| removes over a range of generated sets.
func TestDiff_SetArithmetic(t *testing.T) {
	for mask := 0; mask < 64; mask++ {
		var a, b []uint
		for i := uint(1); i <= 6; i++ {
			if mask&(1<<(i-1)) != 0 {
				a = append(a, i)
			}
			if (mask>>1)&(1<<(i-1)) != 0 || i%3 == 0 {
				b = append(b, i)
			}
		}

		plan := Diff(a, b)

		setA := newSet(a)
		setB := newSet(b)
		for _, id := range plan.ToAdd {
			assert.Contains(t, setB, id)
			assert.NotContains(t, setA, id)
		}
		for _, id := range plan.ToRemove {
			assert.Contains(t, setA, id)
			assert.NotContains(t, setB, id)
		}
		for _, id := range plan.Unchanged {
			assert.Contains(t, setA, id)
			assert.Contains(t, setB, id)
		}
		assert.Equal(t, len(setA)+len(plan.ToAdd), len(setB)+len(plan.ToRemove))
	}
}

func TestDiff_StringIDs(t *testing.T) {
	plan := Diff([]string{"wifi", "pool"}, []string{"pool", "spa"})
	assert.Equal(t, []string{"spa"}, plan.ToAdd)
	assert.Equal(t, []string{"wifi"}, plan.ToRemove)
	assert.Equal(t, []string{"pool"}, plan.Unchanged)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []uint{1, 2, 3}, Dedupe([]uint{3, 1, 2, 3, 1}))
	assert.Empty(t, Dedupe([]uint{}))

	input := []uint{2, 1}
	Dedupe(input)
	assert.Equal(t, []uint{2, 1}, input, "input must not be modified")
}
