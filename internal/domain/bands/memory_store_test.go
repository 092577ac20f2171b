package bands

import (
	"context"
	"sync"
)

// memoryStore is an in-memory Store for service tests.
type memoryStore struct {
	mu          sync.Mutex
	bands       map[uint]*Band
	members     map[uint]*Membership
	invitations map[string]*Invitation
	nextID      uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		bands:       map[uint]*Band{},
		members:     map[uint]*Membership{},
		invitations: map[string]*Invitation{},
	}
}

func (s *memoryStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) GetBand(_ context.Context, id uint) (*Band, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bands[id], nil
}

func (s *memoryStore) MembershipOf(_ context.Context, profileID uint) (*Membership, *Band, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.TalentProfileID == profileID {
			return m, s.bands[m.BandID], nil
		}
	}
	return nil, nil, nil
}

func (s *memoryStore) GetMembership(_ context.Context, bandID, profileID uint) (*Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.BandID == bandID && m.TalentProfileID == profileID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) CountMembers(_ context.Context, bandID uint) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, admins := 0, 0
	for _, m := range s.members {
		if m.BandID != bandID {
			continue
		}
		members++
		if m.IsAdmin() {
			admins++
		}
	}
	return members, admins, nil
}

func (s *memoryStore) CreateBand(_ context.Context, band *Band, creator *Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	band.ID = s.id()
	s.bands[band.ID] = band
	creator.ID = s.id()
	creator.BandID = band.ID
	s.members[creator.ID] = creator
	return nil
}

func (s *memoryStore) UpdateRole(_ context.Context, membershipID uint, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[membershipID].Role = role
	return nil
}

func (s *memoryStore) RemoveMember(_ context.Context, membershipID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, membershipID)
	return nil
}

func (s *memoryStore) CreateInvitation(_ context.Context, inv *Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = s.id()
	s.invitations[inv.Code] = inv
	return nil
}

func (s *memoryStore) FindInvitation(_ context.Context, code string) (*Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[code]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (s *memoryStore) RedeemInvitation(_ context.Context, inv *Invitation, m *Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.invitations[inv.Code]
	if stored.UsedAt != nil {
		return ErrInvitationUsed
	}
	at := m.JoinedAt
	stored.UsedAt = &at
	stored.UsedByProfileID = &m.TalentProfileID
	m.ID = s.id()
	s.members[m.ID] = m
	return nil
}

// addMember seeds a membership directly.
func (s *memoryStore) addMember(bandID, profileID uint, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := &Membership{ID: s.id(), BandID: bandID, TalentProfileID: profileID, Role: role}
	s.members[m.ID] = m
}

type fakeSubs map[uint]bool

func (f fakeSubs) HasLiveSubscription(_ context.Context, userID uint, _ string) (bool, error) {
	return f[userID], nil
}

type invalidations struct {
	keys []uint
}

func (i *invalidations) Invalidate(_ context.Context, _ string, id uint) {
	i.keys = append(i.keys, id)
}
