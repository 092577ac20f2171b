package profiles

import "time"

const (
	SpecializationVisual     = "visual"
	SpecializationExpressive = "expressive"
	SpecializationHybrid     = "hybrid"
)

// VisualWorker covers models, extras and other on-camera talent.
type VisualWorker struct {
	ID              uint   `gorm:"primaryKey" json:"-"`
	TalentProfileID uint   `gorm:"not null;uniqueIndex" json:"-"`
	PrimaryCategory string `json:"primary_category"`
	HeightCM        int    `json:"height_cm"`
	YearsExperience int    `json:"years_experience"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ExpressiveWorker covers actors, singers, dancers and musicians.
type ExpressiveWorker struct {
	ID              uint   `gorm:"primaryKey" json:"-"`
	TalentProfileID uint   `gorm:"not null;uniqueIndex" json:"-"`
	PerformerType   string `json:"performer_type"`
	Instruments     string `json:"instruments"`
	YearsExperience int    `json:"years_experience"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// HybridWorker covers talent who both appear on camera and perform.
type HybridWorker struct {
	ID              uint   `gorm:"primaryKey" json:"-"`
	TalentProfileID uint   `gorm:"not null;uniqueIndex" json:"-"`
	Skills          string `json:"skills"`
	YearsExperience int    `json:"years_experience"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func IsValidSpecialization(kind string) bool {
	switch kind {
	case SpecializationVisual, SpecializationExpressive, SpecializationHybrid:
		return true
	}
	return false
}
