package Schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchAssets(t *testing.T) {
	assets := []AssetRef{
		{ID: 1, Location: "Server Room A"},
		{ID: 2, Location: "  Server Room A  "},
		{ID: 3, Location: "server room a"},
		{ID: 4, Location: "Server Room B"},
		{ID: 5, Location: ""},
	}

	tests := []struct {
		name     string
		taskName string
		wantIDs  []uint
	}{
		{"exact match with trimming on both sides", " Server Room A ", []uint{1, 2}},
		{"case sensitive", "SERVER ROOM A", nil},
		{"no match returns nothing, never everything", "Warehouse", nil},
		{"lowercase location only matches itself", "server room a", []uint{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := MatchAssets(tt.taskName, assets)
			var ids []uint
			for _, a := range matched {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMatchAssetsEmptyPool(t *testing.T) {
	assert.Empty(t, MatchAssets("Server Room A", nil))
}
