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

var ErrPerkNotFound = errors.New("perk not found")

// Purchase refusals. These are regular outcomes, reported with ok=false.
const (
	PurchaseErrAlreadyOwned        = "Already owned"
	PurchaseErrInsufficientBalance = "Insufficient balance"
	PurchaseErrRoleRequired        = "Perk requires the %s role"
)

type PurchaseResult struct {
	OK         bool            `json:"ok"`
	Balance    int             `json:"balance"`
	OwnedPerks map[string]bool `json:"ownedPerks"`
	Error      string          `json:"error,omitempty"`
}

type MintRequest struct {
	Tier         models.NftTier `json:"tier"`
	SourcePerkID string         `json:"sourcePerkId"`
	Chain        string         `json:"chain"`
}

type MintResult struct {
	NFT     models.NftInventoryItem `json:"nft"`
	Balance int                     `json:"balance"`
}

type EconomyService struct {
	Store  store.EconomyRepository
	Events *EventLog
	Now    func() time.Time
	NewID  func() string
	locks  *userLocks
}

func NewEconomyService(repo store.EconomyRepository, events *EventLog) *EconomyService {
	return &EconomyService{
		Store:  repo,
		Events: events,
		Now:    time.Now,
		NewID:  uuid.NewString,
		locks:  newUserLocks(),
	}
}

// load must be called with the user's lock held.
func (s *EconomyService) load(ctx context.Context, userID string) (*models.EconomySnapshot, error) {
	snapshot, err := s.Store.GetSnapshot(ctx, userID)
	if err == nil {
		snapshot.Normalize()
		return snapshot, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	snapshot = models.NewEconomySnapshot()
	if err := s.Store.PutSnapshot(ctx, userID, snapshot); err != nil {
		return nil, fmt.Errorf("init economy: %w", err)
	}
	return snapshot, nil
}

// Snapshot returns the user's economy, creating the starting state on first access.
func (s *EconomyService) Snapshot(ctx context.Context, userID string) (*models.EconomySnapshot, error) {
	unlock := s.locks.lock(userID)
	defer unlock()
	return s.load(ctx, userID)
}

// PurchasePerk buys a catalog perk. role is the caller's role; an empty role
// (anonymous dev write) skips the role gate.
func (s *EconomyService) PurchasePerk(ctx context.Context, userID, perkID, role string) (*PurchaseResult, error) {
	perk, ok := models.FindPerk(perkID)
	if !ok {
		return nil, ErrPerkNotFound
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	snapshot, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := &PurchaseResult{Balance: snapshot.Balance, OwnedPerks: snapshot.OwnedPerks}

	switch {
	case snapshot.OwnedPerks[perkID]:
		result.Error = PurchaseErrAlreadyOwned
		return result, nil
	case perk.RoleGate != "" && role != "" && role != perk.RoleGate:
		result.Error = fmt.Sprintf(PurchaseErrRoleRequired, perk.RoleGate)
		return result, nil
	case snapshot.Balance < perk.PriceGold:
		result.Error = PurchaseErrInsufficientBalance
		return result, nil
	}

	snapshot.OwnedPerks[perkID] = true
	snapshot.Balance -= perk.PriceGold
	if err := s.Store.PutSnapshot(ctx, userID, snapshot); err != nil {
		return nil, err
	}

	s.Events.Append(models.EventPerkPurchased, map[string]any{"perkId": perkID, "priceGold": perk.PriceGold})
	s.Events.Append(models.EventGoldSpent, map[string]any{"amount": perk.PriceGold, "perkId": perkID})

	return &PurchaseResult{OK: true, Balance: snapshot.Balance, OwnedPerks: snapshot.OwnedPerks}, nil
}

// MintNFT prepends a demo NFT to the user's inventory. Minting is free.
func (s *EconomyService) MintNFT(ctx context.Context, userID string, req MintRequest) (*MintResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	snapshot, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	tier := req.Tier
	if tier == "" {
		tier = models.NftTierGold
	}
	nft := models.NftInventoryItem{
		ID:           "nft-" + s.NewID(),
		Name:         fmt.Sprintf("Demo NFT #%d", len(snapshot.Inventory)+1),
		Tier:         tier,
		CreatedAt:    models.NewTimestamp(s.Now()),
		SourcePerkID: req.SourcePerkID,
		Chain:        req.Chain,
	}
	snapshot.Inventory = append([]models.NftInventoryItem{nft}, snapshot.Inventory...)
	if err := s.Store.PutSnapshot(ctx, userID, snapshot); err != nil {
		return nil, err
	}
	return &MintResult{NFT: nft, Balance: snapshot.Balance}, nil
}

func (s *EconomyService) Inventory(ctx context.Context, userID string) ([]models.NftInventoryItem, error) {
	snapshot, err := s.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return snapshot.Inventory, nil
}

// ApplyRewardDelta credits a claimed ticket's reward to the user's economy.
func (s *EconomyService) ApplyRewardDelta(ctx context.Context, userID string, delta RewardDelta) (*models.EconomySnapshot, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	snapshot, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if delta.GoldDelta != nil {
		snapshot.Balance += *delta.GoldDelta
	}
	snapshot.PerkInventory = append(snapshot.PerkInventory, delta.Inventory.Perks...)
	snapshot.Inventory = append(append([]models.NftInventoryItem{}, delta.Inventory.Nfts...), snapshot.Inventory...)
	if err := s.Store.PutSnapshot(ctx, userID, snapshot); err != nil {
		return nil, err
	}
	if delta.GoldDelta != nil && *delta.GoldDelta > 0 {
		s.Events.Append(models.EventGoldEarned, map[string]any{"amount": *delta.GoldDelta, "source": "REWARD_TICKET"})
	}
	log.Printf("💰 [ECONOMY] Applied reward to %s: balance=%d perks=%d nfts=%d",
		userID, snapshot.Balance, len(snapshot.PerkInventory), len(snapshot.Inventory))
	return snapshot, nil
}
