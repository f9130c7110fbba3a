package services

import (
	"context"
	"time"

	"synthara-api/models"
)

// IsActivePerkItem reports whether an inventory perk still counts: not past its
// expiry and not out of uses. Unparseable expiries count as active.
func IsActivePerkItem(item models.PerkInventoryItem, now time.Time) bool {
	if item.ExpiresAt.ExpiredAt(now) {
		return false
	}
	if item.RemainingUses != nil && *item.RemainingUses <= 0 {
		return false
	}
	return true
}

// ActivePerkIDs merges active inventory perks with perks owned through the shop.
func ActivePerkIDs(snapshot *models.EconomySnapshot, now time.Time) map[string]bool {
	active := map[string]bool{}
	for _, item := range snapshot.PerkInventory {
		if item.PerkID != "" && IsActivePerkItem(item, now) {
			active[item.PerkID] = true
		}
	}
	for perkID, owned := range snapshot.OwnedPerks {
		if owned {
			active[perkID] = true
		}
	}
	return active
}

// EvaluateEntitlements derives the feature flags of one user. It never mutates
// its inputs and always returns the six entitlements in the same order.
func EvaluateEntitlements(snapshot *models.EconomySnapshot, tickets []models.RewardTicket, now time.Time) []models.Entitlement {
	if snapshot == nil {
		snapshot = &models.EconomySnapshot{}
	}
	activePerks := ActivePerkIDs(snapshot, now)

	goldPassActive := snapshot.GoldPass.Active
	var goldPassExpiresAt *models.Timestamp
	if snapshot.GoldPass.ExpiresAt != nil && !snapshot.GoldPass.ExpiresAt.IsZero() {
		expiresAt := *snapshot.GoldPass.ExpiresAt
		goldPassExpiresAt = &expiresAt
		if expiresAt.ExpiredAt(now) {
			goldPassActive = false
		}
	}
	// An owned gold-pass perk wins over the pass's own expiry.
	if activePerks[models.PerkGoldPass] {
		goldPassActive = true
	}

	pendingTickets := false
	for _, t := range tickets {
		if t.Status == models.TicketStatusPending {
			pendingTickets = true
			break
		}
	}

	return []models.Entitlement{
		{Key: models.EntitlementCanClaimDailyGold, Value: true, Source: models.EntitlementSourceSystem},
		{Key: models.EntitlementCanUseEarningActions, Value: true, Source: models.EntitlementSourceSystem},
		{
			Key:       models.EntitlementHasActiveGoldPass,
			Value:     goldPassActive,
			Source:    models.EntitlementSourceSystem,
			ExpiresAt: goldPassExpiresAt,
		},
		{Key: models.EntitlementCanClaimRewardTicket, Value: pendingTickets, Source: models.EntitlementSourceSystem},
		perkGate(models.EntitlementCanAccessGameRoom, goldPassActive, activePerks[models.PerkPriorityMatchmaking]),
		perkGate(models.EntitlementCanViewLoraPassport, goldPassActive, activePerks[models.PerkCreatorDropAccess]),
	}
}

func perkGate(key models.EntitlementKey, goldPassActive, hasPerk bool) models.Entitlement {
	source := models.EntitlementSourceSystem
	if hasPerk {
		source = models.EntitlementSourcePerk
	}
	return models.Entitlement{Key: key, Value: goldPassActive || hasPerk, Source: source}
}

type EntitlementService struct {
	Tickets *TicketService
	Economy *EconomyService
	Now     func() time.Time
}

func NewEntitlementService(tickets *TicketService, economy *EconomyService) *EntitlementService {
	return &EntitlementService{Tickets: tickets, Economy: economy, Now: time.Now}
}

func (s *EntitlementService) ForUser(ctx context.Context, userID string) (*models.UserEntitlements, error) {
	snapshot, err := s.Economy.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.Tickets.ListTickets(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	return &models.UserEntitlements{
		UpdatedAt:    models.NewTimestamp(now),
		Entitlements: EvaluateEntitlements(snapshot, tickets, now),
	}, nil
}
