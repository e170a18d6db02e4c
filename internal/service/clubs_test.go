package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"campushub/internal/models"
)

func TestCanManage(t *testing.T) {
	coordinator := int64(7)

	tests := []struct {
		name      string
		club      *models.Club
		actorID   int64
		actorRole string
		want      bool
	}{
		{
			name:      "admin manages any club",
			club:      &models.Club{},
			actorID:   99,
			actorRole: models.RoleAdmin,
			want:      true,
		},
		{
			name:      "coordinator manages own club",
			club:      &models.Club{CoordinatorID: &coordinator},
			actorID:   7,
			actorRole: models.RoleStudent,
			want:      true,
		},
		{
			name:      "other user is rejected",
			club:      &models.Club{CoordinatorID: &coordinator},
			actorID:   8,
			actorRole: models.RoleOrganizer,
			want:      false,
		},
		{
			name:      "club without coordinator only admin",
			club:      &models.Club{},
			actorID:   7,
			actorRole: models.RoleStudent,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, canManage(tt.club, tt.actorID, tt.actorRole))
		})
	}
}
