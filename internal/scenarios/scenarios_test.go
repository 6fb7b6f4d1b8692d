package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaglabs/shopcheck/internal/dataset"
)

func TestAll_Catalog(t *testing.T) {
	all := All()
	require.Len(t, all, 10)

	seen := map[string]bool{}
	for _, s := range all {
		assert.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
		assert.NotNil(t, s.Run, s.ID)
		assert.NotEmpty(t, s.Name, s.ID)
		assert.NotEmpty(t, s.File, s.ID)
		assert.NotEmpty(t, s.Tags, s.ID)
	}
	assert.Equal(t, "TC_01", all[0].ID)
	assert.Equal(t, "TC_10", all[9].ID)
}

func TestAll_SmokeTags(t *testing.T) {
	var smoke []string
	for _, s := range All() {
		if s.HasTag(TagSmoke) {
			smoke = append(smoke, s.ID)
		}
	}
	assert.Equal(t, []string{"TC_01", "TC_02", "TC_08"}, smoke)
}

func TestExpectedOrder(t *testing.T) {
	products := []dataset.Product{
		{Name: "Bike Light", PriceCents: 999},
		{Name: "Backpack", PriceCents: 2999},
		{Name: "Onesie", PriceCents: 799},
	}

	tests := []struct {
		name string
		opt  dataset.SortOption
		want []string
	}{
		{name: "name ascending", opt: dataset.SortOption{Field: "name"}, want: []string{"Backpack", "Bike Light", "Onesie"}},
		{name: "name descending", opt: dataset.SortOption{Field: "name", Descending: true}, want: []string{"Onesie", "Bike Light", "Backpack"}},
		{name: "price ascending", opt: dataset.SortOption{Field: "price"}, want: []string{"Onesie", "Bike Light", "Backpack"}},
		{name: "price descending", opt: dataset.SortOption{Field: "price", Descending: true}, want: []string{"Backpack", "Bike Light", "Onesie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			got := expectedOrder(products, tt.opt)

			// THEN
			names := make([]string, len(got))
			for i, p := range got {
				names[i] = p.Name
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, "Bike Light", products[0].Name, "input is not reordered")
		})
	}
}
