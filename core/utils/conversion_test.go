package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("5, 9,,7,")
	require.NoError(t, err)
	assert.Equal(t, []uint{5, 9, 7}, ids)

	ids, err = ParseIDList("")
	require.NoError(t, err)
	assert.Equal(t, []uint{}, ids)

	_, err = ParseIDList("1,x")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestToUint(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    uint
		wantErr bool
	}{
		{"uint", uint(3), 3, false},
		{"int", 7, 7, false},
		{"int64", int64(8), 8, false},
		{"float integral", 12.0, 12, false},
		{"string", "15", 15, false},
		{"string float", "16.0", 16, false},
		{"bytes", []byte("17"), 17, false},
		{"zero", 0, 0, true},
		{"negative", -1, 0, true},
		{"fraction", 1.5, 0, true},
		{"text", "wifi", 0, true},
		{"nil", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUint(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "5,9", JoinIDs([]uint{5, 9}))
	assert.Equal(t, "", JoinIDs(nil))
}
