package mailing

import (
	"context"
	"strings"
	"time"

	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/logger"

	"go.uber.org/zap"
)

// Contact is an audience member.
type Contact struct {
	UserID uint
	Email  string
}

type Store interface {
	// Audience lists the users matching a filter.
	Audience(ctx context.Context, a Audience) ([]Contact, error)
	// CreateBulk persists the email with its recipients (all pending).
	CreateBulk(ctx context.Context, b *BulkEmail) error
	MarkRecipient(ctx context.Context, recipientID uint, status, errMsg string, at time.Time) error
	GetBulk(ctx context.Context, id uint) (*BulkEmail, error)
}

type Service struct {
	store      Store
	dispatcher *Dispatcher
	now        func() time.Time
}

func NewService(store Store, dispatcher *Dispatcher) *Service {
	return &Service{store: store, dispatcher: dispatcher, now: time.Now}
}

type BulkInput struct {
	Subject  string
	Body     string
	Audience Audience
}

// SendBulk stores one recipient row per audience member and hands each
// message to the dispatcher. Delivery results update rows as they arrive;
// there is no rollback, so partial failure leaves failed and pending rows.
func (s *Service) SendBulk(ctx context.Context, createdBy uint, in BulkInput) (*BulkEmail, error) {
	subject := strings.TrimSpace(in.Subject)
	if subject == "" || strings.TrimSpace(in.Body) == "" {
		return nil, apperrors.Validation("Subject and body are required.")
	}

	contacts, err := s.store.Audience(ctx, in.Audience)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, apperrors.Validation("No users match the selected audience.")
	}

	bulk := &BulkEmail{
		Subject:     subject,
		Body:        in.Body,
		CreatedByID: createdBy,
		Status:      BulkQueued,
		Audience:    in.Audience,
		Recipients:  make([]Recipient, 0, len(contacts)),
	}
	for _, c := range contacts {
		bulk.Recipients = append(bulk.Recipients, Recipient{
			UserID: c.UserID,
			Email:  c.Email,
			Status: RecipientPending,
		})
	}
	if err := s.store.CreateBulk(ctx, bulk); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("bulk email queued", zap.Uint("bulk_email_id", bulk.ID), zap.Int("recipients", len(contacts)))

	for i := range bulk.Recipients {
		r := bulk.Recipients[i]
		s.dispatcher.Submit(Job{
			Message: Message{To: r.Email, Subject: subject, HTML: in.Body},
			Done:    s.recordResult(r.ID),
		})
	}
	return bulk, nil
}

func (s *Service) recordResult(recipientID uint) func(error) {
	return func(sendErr error) {
		status, msg := RecipientSent, ""
		if sendErr != nil {
			status, msg = RecipientFailed, sendErr.Error()
		}
		if err := s.store.MarkRecipient(context.Background(), recipientID, status, msg, s.now()); err != nil {
			logger.Get().Error("failed to record email result",
				zap.Uint("recipient_id", recipientID),
				zap.Error(err))
		}
	}
}

func (s *Service) Get(ctx context.Context, id uint) (*BulkEmail, Summary, error) {
	b, err := s.store.GetBulk(ctx, id)
	if err != nil {
		return nil, Summary{}, err
	}
	if b == nil {
		return nil, Summary{}, apperrors.NotFound("Bulk email")
	}
	sum := Summarize(b.Recipients)
	if sum.Pending == 0 {
		b.Status = BulkCompleted
	}
	return b, sum, nil
}

// Send delivers a single transactional email through the dispatcher.
func (s *Service) Send(msg Message) {
	s.dispatcher.Submit(Job{Message: msg})
}
