package store

import (
	"context"
	"sort"

	"synthara-api/models"

	"github.com/puzpuzpuz/xsync"
)

// MemoryStore keeps state in process. It is the default backend for the demo.
type MemoryStore struct {
	tickets   *xsync.MapOf[string, []models.RewardTicket]
	economies *xsync.MapOf[string, *models.EconomySnapshot]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tickets:   xsync.NewMapOf[[]models.RewardTicket](),
		economies: xsync.NewMapOf[*models.EconomySnapshot](),
	}
}

func (m *MemoryStore) GetTickets(_ context.Context, userID string) ([]models.RewardTicket, error) {
	tickets, ok := m.tickets.Load(userID)
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTickets(tickets), nil
}

func (m *MemoryStore) PutTickets(_ context.Context, userID string, tickets []models.RewardTicket) error {
	m.tickets.Store(userID, cloneTickets(tickets))
	return nil
}

func (m *MemoryStore) TicketUsers(_ context.Context) ([]string, error) {
	var users []string
	m.tickets.Range(func(userID string, _ []models.RewardTicket) bool {
		users = append(users, userID)
		return true
	})
	sort.Strings(users)
	return users, nil
}

func (m *MemoryStore) GetSnapshot(_ context.Context, userID string) (*models.EconomySnapshot, error) {
	snapshot, ok := m.economies.Load(userID)
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot.Clone(), nil
}

func (m *MemoryStore) PutSnapshot(_ context.Context, userID string, snapshot *models.EconomySnapshot) error {
	m.economies.Store(userID, snapshot.Clone())
	return nil
}
