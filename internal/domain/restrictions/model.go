package restrictions

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Detection sources, in resolution order.
const (
	SourceProfile        = "profile"
	SourceCDNHeader      = "cdn_header"
	SourceGeoIP          = "geoip"
	SourceAcceptLanguage = "accept_language"
	SourceDefault        = "default"
)

// RestrictedCountryUser tracks a user whose checkout was refused because of
// their country. An admin approves (granting a plan manually) or rejects.
type RestrictedCountryUser struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	Country         string `gorm:"not null" json:"country"`
	DetectionSource string `gorm:"type:varchar(30);not null" json:"detection_source"`
	Status          string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	Attempts      int       `gorm:"not null;default:1" json:"attempts"`
	LastAttemptAt time.Time `json:"last_attempt_at"`

	RequestedPlanID *uint `json:"requested_plan_id,omitempty"`

	ReviewedByID  *uint      `json:"reviewed_by_id,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote    string     `json:"review_note,omitempty"`
	GrantedTier   string     `gorm:"type:varchar(20)" json:"granted_tier,omitempty"`
	GrantedFamily string     `gorm:"type:varchar(20)" json:"granted_family,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRestrictedCountryUser opens a pending request from a first refused checkout.
func NewRestrictedCountryUser(a Attempt) RestrictedCountryUser {
	return RestrictedCountryUser{
		UserID:          a.UserID,
		Country:         a.Country,
		DetectionSource: a.Source,
		Status:          StatusPending,
		Attempts:        1,
		LastAttemptAt:   a.At,
		RequestedPlanID: a.PlanID,
	}
}

// RecordAttempt counts another refused checkout. A reviewed request goes back
// to the pending queue with its previous review cleared.
func (r *RestrictedCountryUser) RecordAttempt(a Attempt) {
	r.Attempts++
	r.Country = a.Country
	r.DetectionSource = a.Source
	r.LastAttemptAt = a.At
	r.RequestedPlanID = a.PlanID
	if r.Status != StatusPending {
		r.Status = StatusPending
		r.ReviewedByID = nil
		r.ReviewedAt = nil
		r.ReviewNote = ""
		r.GrantedFamily = ""
		r.GrantedTier = ""
	}
}
