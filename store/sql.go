package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"synthara-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore persists state in the user_states table, one JSON document per concern.
type SQLStore struct {
	DB *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Migrate() error {
	return s.DB.AutoMigrate(&models.UserState{})
}

func (s *SQLStore) load(ctx context.Context, userID string) (*models.UserState, error) {
	var state models.UserState
	if err := s.DB.WithContext(ctx).First(&state, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user state %s: %w", userID, err)
	}
	return &state, nil
}

func (s *SQLStore) upsert(ctx context.Context, state *models.UserState, columns ...string) error {
	state.UpdatedAt = time.Now()
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(append(columns, "updated_at")),
	}).Create(state).Error
}

func (s *SQLStore) GetTickets(ctx context.Context, userID string) ([]models.RewardTicket, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !state.Seeded {
		return nil, ErrNotFound
	}
	return cloneTickets(state.Tickets), nil
}

func (s *SQLStore) PutTickets(ctx context.Context, userID string, tickets []models.RewardTicket) error {
	state := &models.UserState{UserID: userID, Tickets: cloneTickets(tickets), Seeded: true}
	if err := s.upsert(ctx, state, "tickets", "seeded"); err != nil {
		return fmt.Errorf("save tickets for %s: %w", userID, err)
	}
	return nil
}

func (s *SQLStore) TicketUsers(ctx context.Context) ([]string, error) {
	var users []string
	err := s.DB.WithContext(ctx).
		Model(&models.UserState{}).
		Where("seeded = ?", true).
		Order("user_id ASC").
		Pluck("user_id", &users).Error
	return users, err
}

func (s *SQLStore) GetSnapshot(ctx context.Context, userID string) (*models.EconomySnapshot, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Economy == nil {
		return nil, ErrNotFound
	}
	state.Economy.Normalize()
	return state.Economy, nil
}

func (s *SQLStore) PutSnapshot(ctx context.Context, userID string, snapshot *models.EconomySnapshot) error {
	state := &models.UserState{UserID: userID, Tickets: []models.RewardTicket{}, Economy: snapshot}
	if err := s.upsert(ctx, state, "economy"); err != nil {
		return fmt.Errorf("save economy for %s: %w", userID, err)
	}
	return nil
}
