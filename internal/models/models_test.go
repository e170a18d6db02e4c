package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int
		wantPages int
	}{
		{"partial last page", 1, 10, 23, 3},
		{"exact fit", 2, 10, 30, 3},
		{"empty result", 1, 10, 0, 0},
		{"single item", 1, 10, 1, 1},
		{"zero limit yields no pages", 1, 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			require.Equal(t, tt.wantPages, p.Pages)
			require.Equal(t, tt.total, p.Total)
			require.Equal(t, tt.page, p.Page)
		})
	}
}
