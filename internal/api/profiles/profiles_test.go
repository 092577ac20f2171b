package profiles

import (
	"testing"

	"talent-marketplace/internal/domain/profiles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTalentUpdate_AppliesOnlySetFields(t *testing.T) {
	p := &profiles.TalentProfile{DisplayName: "Lina", Bio: "old bio", Country: "Lebanon"}

	u := talentUpdate{
		Bio:         strPtr("  new bio  "),
		DateOfBirth: strPtr("1995-04-12"),
		Social:      &socialInput{Instagram: " https://instagram.com/lina "},
	}
	u.apply(p)

	assert.Equal(t, "Lina", p.DisplayName)
	assert.Equal(t, "new bio", p.Bio)
	assert.Equal(t, "Lebanon", p.Country)
	require.NotNil(t, p.DateOfBirth)
	assert.Equal(t, 1995, p.DateOfBirth.Year())
	assert.Equal(t, "https://instagram.com/lina", p.Social.Instagram)

	(&talentUpdate{DateOfBirth: strPtr("")}).apply(p)
	assert.Nil(t, p.DateOfBirth)
}

func TestBackgroundUpdate_ClearsWithEmptyString(t *testing.T) {
	p := &profiles.BackgroundProfile{CompanyName: "Stage Co", Phone: "123"}
	(&backgroundUpdate{Phone: strPtr("")}).apply(p)
	assert.Empty(t, p.Phone)
	assert.Equal(t, "Stage Co", p.CompanyName)
}

func TestSpecializationRow_ReusesExisting(t *testing.T) {
	existing := &profiles.ExpressiveWorker{ID: 9}
	p := &profiles.TalentProfile{ExpressiveWorker: existing}

	assert.Same(t, existing, specializationRow(profiles.SpecializationExpressive, p))
	assert.IsType(t, &profiles.VisualWorker{}, specializationRow(profiles.SpecializationVisual, p))
	assert.IsType(t, &profiles.HybridWorker{}, specializationRow(profiles.SpecializationHybrid, p))
}

func TestFillSpecialization(t *testing.T) {
	row := &profiles.VisualWorker{}
	require.NoError(t, fillSpecialization(row, 4, specializationInput{PrimaryCategory: " model ", HeightCM: 178, YearsExperience: 3}))
	assert.Equal(t, uint(4), row.TalentProfileID)
	assert.Equal(t, "model", row.PrimaryCategory)
	assert.Equal(t, 178, row.HeightCM)

	assert.Error(t, fillSpecialization(&profiles.TalentProfile{}, 4, specializationInput{}))
}

func TestBuildTalentDTO_HidesBirthDateOnPublicView(t *testing.T) {
	slug := "lina-4"
	p := &profiles.TalentProfile{ID: 4, Slug: &slug}
	dob := strPtr("1995-04-12")
	(&talentUpdate{DateOfBirth: dob}).apply(p)

	public := buildTalentDTO(p, "https://app.example.com", false)
	assert.Nil(t, public.DateOfBirth)
	assert.Equal(t, "https://app.example.com/talent/lina-4", public.PublicURL)
	assert.NotNil(t, public.Media)

	private := buildTalentDTO(p, "https://app.example.com", true)
	assert.NotNil(t, private.DateOfBirth)
}
