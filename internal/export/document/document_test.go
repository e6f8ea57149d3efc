package document

import (
	"bytes"
	"testing"
	"time"

	"proposal-workers/internal/proposal/catalog"
	"proposal-workers/internal/proposal/formatter"
	"proposal-workers/internal/proposal/selection"
	"proposal-workers/internal/proposal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name    string
		heights []float64
		usable  float64
		want    [][]int
	}{
		{"empty", nil, 100, nil},
		{"single page", []float64{30, 30, 40}, 100, [][]int{{0, 1, 2}}},
		{"split", []float64{30, 30, 50, 10}, 100, [][]int{{0, 1}, {2, 3}}},
		{"oversized block alone", []float64{10, 150, 10}, 100, [][]int{{0}, {1}, {2}}},
		{"exact fit", []float64{50, 50, 1}, 100, [][]int{{0, 1}, {2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.heights, tt.usable))
		})
	}
}

func TestPaginate_KeepsOrderAndEveryBlock(t *testing.T) {
	heights := []float64{28, 24, 12, 26, 26, 12, 9, 7, 7, 7, 9, 7, 12, 6, 6, 6, 6, 6, 6}
	pages := Paginate(heights, 60)

	var seen []int
	for _, p := range pages {
		used := 0.0
		for _, i := range p {
			used += heights[i]
			seen = append(seen, i)
		}
		assert.LessOrEqual(t, used, 60.0)
	}
	for i := range heights {
		assert.Equal(t, i, seen[i])
	}
}

func TestRender_Starter(t *testing.T) {
	state := selection.NewDefault(catalog.Default())
	s := snapshot.Take(state, snapshot.Client{Name: "Sanne", Restaurant: "De Gouden Lepel"}, formatter.Default(), fixedNow)

	data, pages, err := Render(s)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, 1, pages)
}

func TestRender_AllServicesSpansPages(t *testing.T) {
	cat := catalog.Default()
	state := selection.New(cat)
	for _, c := range cat.Categories() {
		state.SetCategory(c.ID, true)
	}
	s := snapshot.Take(state, snapshot.Client{}, formatter.Default(), fixedNow)

	_, pages, err := Render(s)
	require.NoError(t, err)
	assert.Len(t, Paginate(blockHeights(s), UsableHeight), pages)
	assert.Greater(t, pages, 1)
}

func TestRender_EmptySelection(t *testing.T) {
	state := selection.New(catalog.Default())
	s := snapshot.Take(state, snapshot.Client{}, formatter.Default(), fixedNow)

	data, pages, err := Render(s)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, 1, pages)
}

func TestFilename(t *testing.T) {
	s := snapshot.Snapshot{Client: snapshot.Client{Name: "Sanne", Restaurant: "Café: Noord"}}
	assert.Equal(t, "restaurant-proposal-Café- Noord.pdf", Filename(s))

	s.Client.Restaurant = ""
	assert.Equal(t, "restaurant-proposal-Sanne.pdf", Filename(s))

	s.Client.Name = ""
	assert.Equal(t, "restaurant-proposal-client.pdf", Filename(s))
}

func blockHeights(s snapshot.Snapshot) []float64 {
	var h []float64
	for _, b := range layout(s) {
		h = append(h, b.height)
	}
	return h
}
