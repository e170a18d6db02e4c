package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"campushub/internal/models"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"TechFest Hackathon", "techfest-hackathon"},
		{"Annual Cultural Night 2026!", "annual-cultural-night-2026"},
		{"  C++ & Go :: Workshop  ", "c-go-workshop"},
		{"---", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Slugify(tt.title), "title %q", tt.title)
	}
}

func TestNormalizeFilter(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		f := models.EventFilter{}
		normalizeFilter(&f)
		require.Equal(t, 1, f.Page)
		require.Equal(t, 10, f.Limit)
		require.Equal(t, "date", f.SortBy)
	})

	t.Run("all sentinel clears filters", func(t *testing.T) {
		f := models.EventFilter{Category: "all", Status: "all", SortBy: "popularity"}
		normalizeFilter(&f)
		require.Empty(t, f.Category)
		require.Empty(t, f.Status)
		require.Equal(t, "popularity", f.SortBy)
	})

	t.Run("limit capped", func(t *testing.T) {
		f := models.EventFilter{Limit: 5000, SortBy: "bogus"}
		normalizeFilter(&f)
		require.Equal(t, 100, f.Limit)
		require.Equal(t, "date", f.SortBy)
	})
}
