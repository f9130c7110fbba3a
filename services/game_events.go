package services

import (
	"context"

	"synthara-api/models"

	"gorm.io/gorm"
)

type GameEventService struct {
	DB *gorm.DB
}

func NewGameEventService(db *gorm.DB) *GameEventService {
	return &GameEventService{DB: db}
}

// ListOrSeed returns all game rooms, creating the default arena when there are none.
func (s *GameEventService) ListOrSeed(ctx context.Context) ([]models.GameEvent, error) {
	var events []models.GameEvent
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	if len(events) > 0 {
		return events, nil
	}
	fallback := models.GameEvent{Name: "Durak Arena", RequiredGold: 1}
	if err := s.DB.WithContext(ctx).Create(&fallback).Error; err != nil {
		return nil, err
	}
	return []models.GameEvent{fallback}, nil
}
