// Package store holds the per-user reward and economy state behind a small
// get/put interface so the services never care where the state lives.
package store

import (
	"context"
	"errors"

	"synthara-api/models"
)

// ErrNotFound is returned when a user has no state of the requested kind yet.
var ErrNotFound = errors.New("store: not found")

type TicketRepository interface {
	// GetTickets returns ErrNotFound until tickets were put for the user once.
	GetTickets(ctx context.Context, userID string) ([]models.RewardTicket, error)
	PutTickets(ctx context.Context, userID string, tickets []models.RewardTicket) error
	// TicketUsers lists every user that has a ticket list.
	TicketUsers(ctx context.Context) ([]string, error)
}

type EconomyRepository interface {
	GetSnapshot(ctx context.Context, userID string) (*models.EconomySnapshot, error)
	PutSnapshot(ctx context.Context, userID string, snapshot *models.EconomySnapshot) error
}

type StateStore interface {
	TicketRepository
	EconomyRepository
}

func cloneTickets(tickets []models.RewardTicket) []models.RewardTicket {
	return append(make([]models.RewardTicket, 0, len(tickets)), tickets...)
}
