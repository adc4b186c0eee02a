package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenreSelection_ToggleIsSelfInverse(t *testing.T) {
	tests := []struct {
		name string
		base GenreSelection
		id   int
	}{
		{name: "空集合", base: GenreSelection{}, id: 28},
		{name: "已包含", base: GenreSelection{28, 12}, id: 28},
		{name: "未包含", base: GenreSelection{28, 12}, id: 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := tt.base.Toggle(tt.id)
			assert.NotEqual(t, tt.base.Contains(tt.id), once.Contains(tt.id))

			twice := once.Toggle(tt.id)
			assert.ElementsMatch(t, []int(tt.base), []int(twice))
		})
	}
}

func TestGenreSelection_ToggleSequence(t *testing.T) {
	sel := GenreSelection{}
	sel = sel.Toggle(28)
	sel = sel.Toggle(12)
	sel = sel.Toggle(28)

	assert.Equal(t, GenreSelection{12}, sel)
	assert.Equal(t, "12", sel.CSV())
}

func TestGenreSelection_ToggleDoesNotAlias(t *testing.T) {
	base := make(GenreSelection, 2, 8)
	base[0], base[1] = 28, 12

	_ = base.Toggle(35)
	next := base.Toggle(99)

	assert.Equal(t, GenreSelection{28, 12}, base)
	assert.Equal(t, GenreSelection{28, 12, 99}, next)
}

func TestGenreSelection_CSVKeepsSelectionOrder(t *testing.T) {
	assert.Equal(t, "", GenreSelection{}.CSV())
	assert.Equal(t, "35,28,12", GenreSelection{35, 28, 12}.CSV())
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want SortKey
		ok   bool
	}{
		{in: "popularity", want: SortPopularity, ok: true},
		{in: "release", want: SortReleaseDate, ok: true},
		{in: " Rating ", want: SortRating, ok: true},
		{in: "vote_average.desc", want: SortRating, ok: true},
		{in: "title", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSortKey(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListParams_Normalize(t *testing.T) {
	p := ListParams{View: "bogus", TimeWindow: "month", SortBy: "title.asc", Page: -3}.Normalize()

	assert.Equal(t, DefaultListParams(), p)
}

func TestImageResolver(t *testing.T) {
	r := DefaultImageResolver()

	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", r.Poster("/abc.jpg"))
	assert.Equal(t, DefaultPosterPlaceholder, r.Poster(""))
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/bg.jpg", r.Backdrop("bg.jpg"))
	assert.Equal(t, "", r.Backdrop("  "))
}
