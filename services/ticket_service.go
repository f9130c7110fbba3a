package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"synthara-api/models"
	"synthara-api/store"

	"github.com/google/uuid"
)

var (
	ErrTicketNotFound         = errors.New("ticket not found")
	ErrTicketAlreadyProcessed = errors.New("ticket already processed")
	ErrTicketExpired          = errors.New("ticket expired")
)

// Fallbacks used when a claimed reward is missing its optional fields.
const (
	FallbackNFTName = "Placeholder NFT"
	FallbackNFTTier = models.NftTierGold
)

// RewardDelta is what a claim grants. Applying it to the economy is up to the caller.
type RewardDelta struct {
	GoldDelta *int
	Inventory models.InventoryDelta
}

// ClaimResult carries the ticket for every outcome except ErrTicketNotFound,
// and the delta only for a successful claim.
type ClaimResult struct {
	Ticket *models.RewardTicket
	Delta  *RewardDelta
}

type TicketService struct {
	Store store.TicketRepository
	Now   func() time.Time
	NewID func() string
	locks *userLocks
}

func NewTicketService(repo store.TicketRepository) *TicketService {
	return &TicketService{
		Store: repo,
		Now:   time.Now,
		NewID: uuid.NewString,
		locks: newUserLocks(),
	}
}

// SeedTickets returns the three demo tickets every user starts with.
func SeedTickets(now time.Time) []models.RewardTicket {
	return []models.RewardTicket{
		{
			ID:        "ticket-gold-1",
			CreatedAt: models.NewTimestamp(now.AddDate(0, 0, -1)),
			Source:    models.TicketSourceGameMatch,
			Status:    models.TicketStatusPending,
			ExpiresAt: models.NewTimestamp(now.AddDate(0, 0, 7)),
			Reward:    models.GoldPoints{Amount: 150},
		},
		{
			ID:        "ticket-perk-1",
			CreatedAt: models.NewTimestamp(now.AddDate(0, 0, -2)),
			Source:    models.TicketSourceEvent,
			Status:    models.TicketStatusPending,
			ExpiresAt: models.NewTimestamp(now.AddDate(0, 0, 5)),
			Reward:    models.PerkItem{PerkID: models.PerkEarnBoost10},
		},
		{
			ID:        "ticket-nft-1",
			CreatedAt: models.NewTimestamp(now.AddDate(0, 0, -3)),
			Source:    models.TicketSourceAdmin,
			Status:    models.TicketStatusClaimed,
			Reward:    models.NFTPlaceholder{Name: "Mystery Drop", Tier: models.NftTierGold},
		},
	}
}

// load must be called with the user's lock held.
func (s *TicketService) load(ctx context.Context, userID string) ([]models.RewardTicket, error) {
	tickets, err := s.Store.GetTickets(ctx, userID)
	if err == nil {
		return tickets, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	tickets = SeedTickets(s.Now())
	if err := s.Store.PutTickets(ctx, userID, tickets); err != nil {
		return nil, fmt.Errorf("seed tickets: %w", err)
	}
	log.Printf("🎟️ [TICKETS] Seeded %d demo tickets for user %s", len(tickets), userID)
	return tickets, nil
}

// ListTickets returns the user's tickets, most recent first.
func (s *TicketService) ListTickets(ctx context.Context, userID string) ([]models.RewardTicket, error) {
	unlock := s.locks.lock(userID)
	defer unlock()
	return s.load(ctx, userID)
}

// AddTicket puts ticket at the front of the list. When a ticket with the same
// id already exists nothing changes and the stored ticket is returned with added=false.
func (s *TicketService) AddTicket(ctx context.Context, userID string, ticket models.RewardTicket) (models.RewardTicket, bool, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	tickets, err := s.load(ctx, userID)
	if err != nil {
		return models.RewardTicket{}, false, err
	}
	for _, existing := range tickets {
		if existing.ID == ticket.ID {
			return existing, false, nil
		}
	}
	tickets = append([]models.RewardTicket{ticket}, tickets...)
	if err := s.Store.PutTickets(ctx, userID, tickets); err != nil {
		return models.RewardTicket{}, false, err
	}
	return ticket, true, nil
}

// IssueTicket builds a fresh PENDING ticket and adds it.
func (s *TicketService) IssueTicket(ctx context.Context, userID string, source models.TicketSource, reward models.Reward, ttl time.Duration) (models.RewardTicket, error) {
	now := s.Now()
	ticket := models.RewardTicket{
		ID:        "ticket-" + s.NewID(),
		CreatedAt: models.NewTimestamp(now),
		Source:    source,
		Status:    models.TicketStatusPending,
		Reward:    reward,
	}
	if ttl > 0 {
		ticket.ExpiresAt = models.NewTimestamp(now.Add(ttl))
	}
	added, _, err := s.AddTicket(ctx, userID, ticket)
	return added, err
}

// ClaimTicket moves a PENDING ticket to CLAIMED and returns the reward delta.
// A PENDING ticket past its expiry is stored as EXPIRED and ErrTicketExpired returned.
func (s *TicketService) ClaimTicket(ctx context.Context, userID, ticketID string) (ClaimResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	tickets, err := s.load(ctx, userID)
	if err != nil {
		return ClaimResult{}, err
	}
	idx := -1
	for i := range tickets {
		if tickets[i].ID == ticketID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ClaimResult{}, ErrTicketNotFound
	}

	ticket := tickets[idx]
	if ticket.Status != models.TicketStatusPending {
		return ClaimResult{Ticket: &ticket}, ErrTicketAlreadyProcessed
	}

	now := s.Now()
	if ticket.ExpiresAt.ExpiredAt(now) {
		ticket.Status = models.TicketStatusExpired
		tickets[idx] = ticket
		if err := s.Store.PutTickets(ctx, userID, tickets); err != nil {
			return ClaimResult{}, err
		}
		return ClaimResult{Ticket: &ticket}, ErrTicketExpired
	}

	delta := s.rewardDelta(ticket.Reward, now)
	ticket.Status = models.TicketStatusClaimed
	tickets[idx] = ticket
	if err := s.Store.PutTickets(ctx, userID, tickets); err != nil {
		return ClaimResult{}, err
	}
	log.Printf("✅ [TICKETS] %s claimed %s (%s)", userID, ticket.ID, ticket.Reward.Kind())
	return ClaimResult{Ticket: &ticket, Delta: &delta}, nil
}

func (s *TicketService) rewardDelta(reward models.Reward, now time.Time) RewardDelta {
	delta := RewardDelta{Inventory: models.InventoryDelta{
		Perks: []models.PerkInventoryItem{},
		Nfts:  []models.NftInventoryItem{},
	}}
	switch r := reward.(type) {
	case models.GoldPoints:
		amount := r.Amount
		delta.GoldDelta = &amount
	case models.PerkItem:
		perkID := r.PerkID
		if perkID == "" {
			perkID = models.PerkUnknown
		}
		delta.Inventory.Perks = append(delta.Inventory.Perks, models.PerkInventoryItem{
			ID:         "perk-" + s.NewID(),
			PerkID:     perkID,
			AcquiredAt: models.NewTimestamp(now),
			Source:     models.PerkSourceRewardTicket,
		})
	case models.NFTPlaceholder:
		name, tier := r.Name, r.Tier
		if name == "" {
			name = FallbackNFTName
		}
		if tier == "" {
			tier = FallbackNFTTier
		}
		delta.Inventory.Nfts = append(delta.Inventory.Nfts, models.NftInventoryItem{
			ID:            "nft-" + s.NewID(),
			Name:          name,
			Tier:          tier,
			CreatedAt:     models.NewTimestamp(now),
			IsPlaceholder: true,
		})
	}
	return delta
}

// SweepExpired marks every PENDING ticket past its expiry as EXPIRED, for all users.
func (s *TicketService) SweepExpired(ctx context.Context) (int, error) {
	users, err := s.Store.TicketUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list ticket users: %w", err)
	}
	total := 0
	for _, userID := range users {
		n, err := s.sweepUser(ctx, userID)
		if err != nil {
			return total, fmt.Errorf("sweep %s: %w", userID, err)
		}
		total += n
	}
	return total, nil
}

func (s *TicketService) sweepUser(ctx context.Context, userID string) (int, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	tickets, err := s.Store.GetTickets(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	now := s.Now()
	expired := 0
	for i := range tickets {
		if tickets[i].Status == models.TicketStatusPending && tickets[i].ExpiresAt.ExpiredAt(now) {
			tickets[i].Status = models.TicketStatusExpired
			expired++
		}
	}
	if expired == 0 {
		return 0, nil
	}
	return expired, s.Store.PutTickets(ctx, userID, tickets)
}
