package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/feedcalc/internal/model"
)

func testProducts() []model.FeedProduct {
	return []model.FeedProduct{
		{Code: "701 C", Name: "Broiler Starter", UnitPrice: decimal.RequireFromString("3432.50"), BagWeightKg: 50},
		{Code: "702 C", Name: "Broiler Grower", UnitPrice: decimal.RequireFromString("3432.50"), BagWeightKg: 50},
		{Code: "705 P", Name: "House Feed", UnitPrice: decimal.RequireFromString("1062.50"), BagWeightKg: 25},
		{Code: "501 C", Name: "Layer Starter", UnitPrice: decimal.RequireFromString("3038.00"), BagWeightKg: 50},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "701 c", want: "701 C"},
		{in: "  701   c  ", want: "701 C"},
		{in: "709\tc/p", want: "709 C/P"},
		{in: "", want: ""},
		{in: "   ", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestFindByPrefix(t *testing.T) {
	c := New(testProducts())

	t.Run("prefix matches in catalog order", func(t *testing.T) {
		res := c.FindByPrefix("70")
		require.Len(t, res, 3)
		assert.Equal(t, "701 C", res[0].Code)
		assert.Equal(t, "702 C", res[1].Code)
		assert.Equal(t, "705 P", res[2].Code)
	})

	t.Run("code with suffix found by number", func(t *testing.T) {
		res := c.FindByPrefix("701")
		require.Len(t, res, 1)
		assert.Equal(t, "701 C", res[0].Code)
	})

	t.Run("query is normalized", func(t *testing.T) {
		res := c.FindByPrefix("  701   c ")
		require.Len(t, res, 1)
	})

	t.Run("empty query yields nothing", func(t *testing.T) {
		assert.Empty(t, c.FindByPrefix(""))
		assert.Empty(t, c.FindByPrefix("   "))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, c.FindByPrefix("999"))
	})
}

func TestFindExact(t *testing.T) {
	c := New(testProducts())

	p, ok := c.FindExact("705p")
	assert.False(t, ok, "internal whitespace is part of the code")

	p, ok = c.FindExact(" 705 p ")
	require.True(t, ok)
	assert.Equal(t, "House Feed", p.Name)

	_, ok = c.FindExact("70")
	assert.False(t, ok, "prefix must not match exactly")
}

func TestCatalogIsSnapshot(t *testing.T) {
	src := testProducts()
	c := New(src)

	src[0].Name = "changed"
	assert.Equal(t, "Broiler Starter", c.Products()[0].Name)

	out := c.Products()
	out[1].Name = "changed"
	assert.Equal(t, "Broiler Grower", c.Products()[1].Name)
}

func TestFilterApply(t *testing.T) {
	minPrice := decimal.NewFromInt(2000)
	maxPrice := decimal.NewFromInt(3100)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "default sort by code",
			filter: Filter{},
			want:   []string{"501 C", "701 C", "702 C", "705 P"},
		},
		{
			name:   "search by name case insensitive",
			filter: Filter{Search: "broiler"},
			want:   []string{"701 C", "702 C"},
		},
		{
			name:   "price range",
			filter: Filter{MinPrice: &minPrice, MaxPrice: &maxPrice},
			want:   []string{"501 C"},
		},
		{
			name:   "price descending",
			filter: Filter{Sort: SortByPrice, Descending: true},
			want:   []string{"701 C", "702 C", "501 C", "705 P"},
		},
		{
			name:   "name ascending",
			filter: Filter{Sort: SortByName},
			want:   []string{"702 C", "701 C", "705 P", "501 C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.filter.Apply(testProducts())
			codes := make([]string, 0, len(res))
			for _, p := range res {
				codes = append(codes, p.Code)
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}
