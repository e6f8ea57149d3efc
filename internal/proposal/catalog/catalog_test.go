package catalog

import (
	"strings"
	"testing"

	"proposal-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Shape(t *testing.T) {
	c := Default()

	cats := c.Categories()
	require.Len(t, cats, 8)
	assert.Equal(t, "core-website", cats[0].ID)
	assert.Equal(t, "maintenance", cats[7].ID)
	assert.Equal(t, 32, c.Len())

	ids := make(map[string]bool)
	for _, it := range c.Items() {
		assert.False(t, ids[it.ID], "duplicate id %s", it.ID)
		ids[it.ID] = true
	}
}

func TestDefault_ItemValues(t *testing.T) {
	c := Default()

	tests := []struct {
		id        string
		approach  Approach
		price     int
		days      float64
		recurring int
		category  string
	}{
		{"discovery", NoCode, 400, 3, 0, "core-website"},
		{"core-pages", CMS, 1400, 14, 0, "core-website"},
		{"online-ordering", Custom, 4500, 20, 0, "ecommerce"},
		{"google-business", NoCode, 200, 0.5, 0, "marketplaces"},
		{"brand-identity", CMS, 500, 5, 0, "content-production"},
		{"maintenance-support", Custom, 0, 0, 600, "maintenance"},
		{"hosting-platform", NoCode, 0, 0, 100, "maintenance"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			it, ok := c.Item(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.price, it.Price.For(tt.approach))
			assert.Equal(t, tt.days, it.Days.For(tt.approach))
			assert.Equal(t, tt.recurring, it.Monthly())
			assert.Equal(t, tt.recurring > 0, it.IsRecurring())

			cat, ok := c.CategoryOf(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.category, cat.ID)
		})
	}
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()

	it, _ := c.Item("hosting-platform")
	it.Recurring.Monthly = 1
	it.Label = "changed"

	again, _ := c.Item("hosting-platform")
	assert.Equal(t, 100, again.Monthly())
	assert.Equal(t, "Hosting & Platform", again.Label)

	cats := c.Categories()
	cats[0].Items[0].Price.NoCode = 999999
	first, _ := c.Item(cats[0].Items[0].ID)
	assert.Equal(t, 400, first.Price.NoCode)
}

func TestCatalog_Lookups(t *testing.T) {
	c := Default()

	assert.True(t, c.Contains("qr-ordering"))
	assert.False(t, c.Contains("jetpack"))

	_, ok := c.Category("nope")
	assert.False(t, ok)
	assert.Nil(t, c.CategoryItemIDs("nope"))
	assert.Equal(t, []string{"payment-gateway", "delivery-management", "delivery-zones"}, c.CategoryItemIDs("payments-delivery"))

	var order []string
	c.Each(func(_ string, it Item) { order = append(order, it.ID) })
	assert.Equal(t, "discovery", order[0])
	assert.Equal(t, "content-updates", order[len(order)-1])
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		problem string
	}{
		{
			name:    "missing approach key",
			doc:     `{"version":"1","categories":[{"id":"a","name":"A","items":[{"id":"x","label":"X","category":"a","days":{"nocode":1,"cms":1},"price":{"nocode":1,"cms":1,"custom":1}}]}]}`,
			problem: "custom",
		},
		{
			name:    "negative price",
			doc:     `{"version":"1","categories":[{"id":"a","name":"A","items":[{"id":"x","label":"X","category":"a","days":{"nocode":1,"cms":1,"custom":1},"price":{"nocode":-1,"cms":1,"custom":1}}]}]}`,
			problem: "nocode",
		},
		{
			name: "duplicate id across categories",
			doc: `{"version":"1","categories":[
				{"id":"a","name":"A","items":[{"id":"x","label":"X","category":"a","days":{"nocode":1,"cms":1,"custom":1},"price":{"nocode":1,"cms":1,"custom":1}}]},
				{"id":"b","name":"B","items":[{"id":"x","label":"X","category":"b","days":{"nocode":1,"cms":1,"custom":1},"price":{"nocode":1,"cms":1,"custom":1}}]}]}`,
			problem: "duplicate item id",
		},
		{
			name:    "category back-reference mismatch",
			doc:     `{"version":"1","categories":[{"id":"a","name":"A","items":[{"id":"x","label":"X","category":"b","days":{"nocode":1,"cms":1,"custom":1},"price":{"nocode":1,"cms":1,"custom":1}}]}]}`,
			problem: "declares category",
		},
		{
			name:    "recurring with price",
			doc:     `{"version":"1","categories":[{"id":"a","name":"A","items":[{"id":"x","label":"X","category":"a","days":{"nocode":0,"cms":0,"custom":0},"price":{"nocode":5,"cms":0,"custom":0},"recurring":{"monthly":10}}]}]}`,
			problem: "recurring item",
		},
		{
			name:    "not json",
			doc:     `{`,
			problem: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.HasCode(err, errors.ErrCodeCatalogInvalid))
			assert.True(t, strings.Contains(err.Error(), tt.problem), err.Error())
		})
	}
}

func TestParseApproach(t *testing.T) {
	a, err := ParseApproach(" CMS ")
	require.NoError(t, err)
	assert.Equal(t, CMS, a)
	assert.Equal(t, "CMS Platform", a.Label())

	_, err = ParseApproach("wordpress")
	assert.Error(t, err)
	assert.False(t, Approach("wordpress").Valid())
}

func TestApproachInfo(t *testing.T) {
	info := NoCode.Info()
	assert.Equal(t, "No-Code Platform", info.Label)
	assert.Equal(t, "Webflow / Wix / Squarespace", info.Subtitle)
	assert.Len(t, info.Pros, 4)
	assert.NotEmpty(t, info.Samples)

	info.Pros[0] = "mutated"
	assert.Equal(t, "Fastest development time", NoCode.Info().Pros[0])

	assert.Equal(t, "React/Next.js + Headless CMS", Custom.Info().Subtitle)
}
