package mailing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"talent-marketplace/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu    sync.Mutex
	sent  []Message
	fails map[string]bool
	block chan struct{}
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails[msg.To] {
		return errors.New("mailbox unavailable")
	}
	s.sent = append(s.sent, msg)
	return nil
}

type memoryStore struct {
	mu       sync.Mutex
	contacts []Contact
	bulks    map[uint]*BulkEmail
}

func (m *memoryStore) Audience(_ context.Context, _ Audience) ([]Contact, error) {
	return m.contacts, nil
}

func (m *memoryStore) CreateBulk(_ context.Context, b *BulkEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bulks == nil {
		m.bulks = map[uint]*BulkEmail{}
	}
	b.ID = uint(len(m.bulks) + 1)
	for i := range b.Recipients {
		b.Recipients[i].ID = uint(i + 1)
		b.Recipients[i].BulkEmailID = b.ID
	}
	cp := *b
	cp.Recipients = append([]Recipient(nil), b.Recipients...)
	m.bulks[b.ID] = &cp
	return nil
}

func (m *memoryStore) MarkRecipient(_ context.Context, id uint, status, errMsg string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bulks {
		for i := range b.Recipients {
			if b.Recipients[i].ID == id {
				b.Recipients[i].Status = status
				b.Recipients[i].Error = errMsg
				b.Recipients[i].SentAt = &at
			}
		}
	}
	return nil
}

func (m *memoryStore) GetBulk(_ context.Context, id uint) (*BulkEmail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bulks[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	cp.Recipients = append([]Recipient(nil), b.Recipients...)
	return &cp, nil
}

func TestDispatcher_SendsInlineWhenNotStarted(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 1, 0)

	var got error = errors.New("unset")
	queued := d.Submit(Job{Message: Message{To: "a@example.com"}, Done: func(err error) { got = err }})

	assert.False(t, queued)
	assert.NoError(t, got)
	assert.Len(t, sender.sent, 1)
}

func TestDispatcher_FallsBackWhenStopped(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 2, 10)
	d.Start()
	d.Stop()
	d.Stop()

	assert.False(t, d.Submit(Job{Message: Message{To: "late@example.com"}}))
	assert.Len(t, sender.sent, 1)
}

func TestDispatcher_QueuedJobsDrainOnStop(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 2, 10)
	d.Start()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		d.Submit(Job{Message: Message{To: "x@example.com"}, Done: func(error) { wg.Done() }})
	}
	d.Stop()
	wg.Wait()

	assert.Len(t, sender.sent, 5)
}

func TestDispatcher_UnbufferedQueueNeverLosesJob(t *testing.T) {
	sender := &recordingSender{block: make(chan struct{})}
	d := NewDispatcher(sender, 1, 0)
	d.Start()
	defer d.Stop()

	done := make(chan bool, 1)
	go func() { done <- d.Submit(Job{Message: Message{To: "first@example.com"}}) }()

	close(sender.block)
	<-done
	assert.Eventually(t, func() bool {
		sender.mu.Lock()
		defer sender.mu.Unlock()
		return len(sender.sent) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSendBulk_PartialFailureKeepsRows(t *testing.T) {
	store := &memoryStore{contacts: []Contact{
		{UserID: 1, Email: "ok@example.com"},
		{UserID: 2, Email: "broken@example.com"},
		{UserID: 3, Email: "ok2@example.com"},
	}}
	sender := &recordingSender{fails: map[string]bool{"broken@example.com": true}}
	svc := NewService(store, NewDispatcher(sender, 1, 0))

	bulk, err := svc.SendBulk(context.Background(), 99, BulkInput{Subject: "News", Body: "<p>Hi</p>"})
	require.NoError(t, err)
	require.Len(t, bulk.Recipients, 3)

	got, sum, err := svc.Get(context.Background(), bulk.ID)
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 3, Sent: 2, Failed: 1}, sum)
	assert.Equal(t, BulkCompleted, got.Status)
	for _, r := range got.Recipients {
		if r.Email == "broken@example.com" {
			assert.Equal(t, RecipientFailed, r.Status)
			assert.Equal(t, "mailbox unavailable", r.Error)
		} else {
			assert.Equal(t, RecipientSent, r.Status)
		}
	}
}

func TestSendBulk_Validation(t *testing.T) {
	svc := NewService(&memoryStore{}, NewDispatcher(&recordingSender{}, 1, 0))

	_, err := svc.SendBulk(context.Background(), 1, BulkInput{Subject: " ", Body: "x"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	_, err = svc.SendBulk(context.Background(), 1, BulkInput{Subject: "s", Body: "x"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed), "empty audience")

	_, _, err = svc.Get(context.Background(), 5)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestSummarize(t *testing.T) {
	sum := Summarize([]Recipient{{Status: RecipientPending}, {Status: RecipientSent}, {Status: ""}})
	assert.Equal(t, Summary{Total: 3, Pending: 2, Sent: 1}, sum)
}
