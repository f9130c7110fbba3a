package store

import (
	"context"
	"sort"
	"sync"
	"testing"

	"synthara-api/models"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeRedisClient struct {
	mu   sync.Mutex
	kv   map[string]string
	sets map[string]map[string]struct{}
}

func newFakeRedisClient() *fakeRedisClient {
	return &fakeRedisClient{kv: map[string]string{}, sets: map[string]map[string]struct{}{}}
}

func (f *fakeRedisClient) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.kv[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *fakeRedisClient) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kv[key] = value
	return nil
}

func (f *fakeRedisClient) SAdd(_ context.Context, key string, members ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[key] == nil {
		f.sets[key] = map[string]struct{}{}
	}
	for _, m := range members {
		f.sets[key][m] = struct{}{}
	}
	return nil
}

func (f *fakeRedisClient) SMembers(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for m := range f.sets[key] {
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

type StateStoreTestSuite struct {
	suite.Suite
	newStore func(t *testing.T) StateStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StateStoreTestSuite{newStore: func(*testing.T) StateStore {
		return NewMemoryStore()
	}})
}

func TestSQLStoreSuite(t *testing.T) {
	suite.Run(t, &StateStoreTestSuite{newStore: func(t *testing.T) StateStore {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.SetMaxOpenConns(1)
		s := NewSQLStore(db)
		require.NoError(t, s.Migrate())
		return s
	}})
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, &StateStoreTestSuite{newStore: func(*testing.T) StateStore {
		return NewRedisStore(newFakeRedisClient())
	}})
}

func sampleTickets() []models.RewardTicket {
	return []models.RewardTicket{
		{
			ID:        "ticket-b",
			CreatedAt: "2026-10-18T10:00:00.000000",
			Source:    models.TicketSourceEvent,
			Status:    models.TicketStatusPending,
			ExpiresAt: "2026-10-25T10:00:00.000000",
			Reward:    models.PerkItem{PerkID: models.PerkEarnBoost10},
		},
		{
			ID:        "ticket-a",
			CreatedAt: "2026-10-17T10:00:00.000000",
			Source:    models.TicketSourceAdmin,
			Status:    models.TicketStatusClaimed,
			Reward:    models.NFTPlaceholder{Name: "Mystery Drop", Tier: models.NftTierGold},
		},
	}
}

func (s *StateStoreTestSuite) TestTicketsRoundTrip() {
	t := s.T()
	ctx := context.Background()
	st := s.newStore(t)

	_, err := st.GetTickets(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.PutTickets(ctx, "u1", sampleTickets()))

	got, err := st.GetTickets(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, sampleTickets(), got)

	users, err := st.TicketUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, users)
}

func (s *StateStoreTestSuite) TestEmptyTicketListCountsAsSeeded() {
	t := s.T()
	ctx := context.Background()
	st := s.newStore(t)

	require.NoError(t, st.PutTickets(ctx, "u1", nil))
	got, err := st.GetTickets(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, got)
}

func (s *StateStoreTestSuite) TestSnapshotIndependentOfTickets() {
	t := s.T()
	ctx := context.Background()
	st := s.newStore(t)

	snapshot := models.NewEconomySnapshot()
	snapshot.Balance = 120
	snapshot.OwnedPerks[models.PerkPriorityMatchmaking] = true
	require.NoError(t, st.PutSnapshot(ctx, "u1", snapshot))

	_, err := st.GetTickets(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.PutTickets(ctx, "u1", sampleTickets()))

	got, err := st.GetSnapshot(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 120, got.Balance)
	require.True(t, got.OwnedPerks[models.PerkPriorityMatchmaking])
	require.True(t, got.GoldPass.Active)

	_, err = st.GetSnapshot(ctx, "u2")
	require.ErrorIs(t, err, ErrNotFound)
}

func (s *StateStoreTestSuite) TestReturnedValuesAreCopies() {
	t := s.T()
	ctx := context.Background()
	st := s.newStore(t)

	require.NoError(t, st.PutTickets(ctx, "u1", sampleTickets()))
	got, err := st.GetTickets(ctx, "u1")
	require.NoError(t, err)
	got[0].Status = models.TicketStatusExpired

	again, err := st.GetTickets(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, models.TicketStatusPending, again[0].Status)
}
