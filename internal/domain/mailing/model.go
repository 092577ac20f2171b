package mailing

import "time"

const (
	RecipientPending = "pending"
	RecipientSent    = "sent"
	RecipientFailed  = "failed"

	BulkQueued    = "queued"
	BulkCompleted = "completed"
)

// Audience narrows the users a bulk email goes to. Empty fields match all.
type Audience struct {
	UserType     string `json:"user_type,omitempty"`
	Country      string `json:"country,omitempty"`
	VerifiedOnly bool   `json:"verified_only,omitempty"`
}

type BulkEmail struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Subject     string `gorm:"not null" json:"subject"`
	Body        string `gorm:"type:text;not null" json:"body"`
	CreatedByID uint   `gorm:"not null" json:"created_by_id"`
	Status      string `gorm:"type:varchar(20);not null;default:'queued'" json:"status"`

	Audience Audience `gorm:"embedded;embeddedPrefix:audience_" json:"audience"`

	Recipients []Recipient `gorm:"foreignKey:BulkEmailID;constraint:OnDelete:CASCADE" json:"recipients,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Recipient struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BulkEmailID uint       `gorm:"not null;index" json:"bulk_email_id"`
	UserID      uint       `gorm:"not null" json:"user_id"`
	Email       string     `gorm:"not null" json:"email"`
	Status      string     `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	Error       string     `json:"error,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
}

func (Recipient) TableName() string { return "bulk_email_recipients" }

// Summary counts recipients per status.
type Summary struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}

func Summarize(rs []Recipient) Summary {
	s := Summary{Total: len(rs)}
	for _, r := range rs {
		switch r.Status {
		case RecipientSent:
			s.Sent++
		case RecipientFailed:
			s.Failed++
		default:
			s.Pending++
		}
	}
	return s
}
