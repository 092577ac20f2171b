package bands

import (
	"testing"

	"talent-marketplace/internal/domain/bands"

	"github.com/stretchr/testify/assert"
)

func TestBuildBandDTO(t *testing.T) {
	b := &bands.Band{
		ID:   3,
		Name: "Band A",
		Members: []bands.Membership{
			{TalentProfileID: 1, Role: bands.RoleAdmin},
			{TalentProfileID: 2, Role: bands.RoleMember},
		},
	}

	dto := BuildBandDTO(b)
	assert.Equal(t, "Band A", dto.Name)
	assert.Len(t, dto.Members, 2)
	assert.Equal(t, bands.RoleAdmin, dto.Members[0].Role)
	assert.NotNil(t, dto.Media)
}
