package models

import (
	"encoding/json"
	"fmt"
)

type TicketSource string

const (
	TicketSourceGameMatch TicketSource = "GAME_MATCH"
	TicketSourceEvent     TicketSource = "EVENT"
	TicketSourceAdmin     TicketSource = "ADMIN"
)

func (s TicketSource) Valid() bool {
	switch s {
	case TicketSourceGameMatch, TicketSourceEvent, TicketSourceAdmin:
		return true
	}
	return false
}

// TicketStatus only ever moves PENDING → CLAIMED or PENDING → EXPIRED.
type TicketStatus string

const (
	TicketStatusPending TicketStatus = "PENDING"
	TicketStatusClaimed TicketStatus = "CLAIMED"
	TicketStatusExpired TicketStatus = "EXPIRED"
)

type RewardKind string

const (
	RewardKindGoldPoints     RewardKind = "GOLD_POINTS"
	RewardKindPerkItem       RewardKind = "PERK_ITEM"
	RewardKindNFTPlaceholder RewardKind = "NFT_PLACEHOLDER"
)

// Reward is the payload of a ticket. The set of implementations is closed:
// GoldPoints, PerkItem and NFTPlaceholder.
type Reward interface {
	Kind() RewardKind
	isReward()
}

type GoldPoints struct {
	Amount int
}

type PerkItem struct {
	PerkID string
}

type NFTPlaceholder struct {
	Name string
	Tier NftTier
}

func (GoldPoints) Kind() RewardKind     { return RewardKindGoldPoints }
func (PerkItem) Kind() RewardKind       { return RewardKindPerkItem }
func (NFTPlaceholder) Kind() RewardKind { return RewardKindNFTPlaceholder }

func (GoldPoints) isReward()     {}
func (PerkItem) isReward()       {}
func (NFTPlaceholder) isReward() {}

// rewardWire is the flat JSON shape shared with the mobile client.
type rewardWire struct {
	Kind   RewardKind `json:"kind"`
	Amount *int       `json:"amount,omitempty"`
	PerkID *string    `json:"perkId,omitempty"`
	Name   *string    `json:"name,omitempty"`
	Tier   *NftTier   `json:"tier,omitempty"`
}

func encodeReward(r Reward) (rewardWire, error) {
	switch v := r.(type) {
	case GoldPoints:
		amount := v.Amount
		return rewardWire{Kind: RewardKindGoldPoints, Amount: &amount}, nil
	case PerkItem:
		perkID := v.PerkID
		return rewardWire{Kind: RewardKindPerkItem, PerkID: &perkID}, nil
	case NFTPlaceholder:
		name, tier := v.Name, v.Tier
		return rewardWire{Kind: RewardKindNFTPlaceholder, Name: &name, Tier: &tier}, nil
	case nil:
		return rewardWire{}, fmt.Errorf("reward payload is missing")
	}
	return rewardWire{}, fmt.Errorf("unsupported reward type %T", r)
}

// decodeReward fills absent fields with zero values; the claim step applies
// the user-facing fallbacks. Present fields must be in range.
func decodeReward(w rewardWire) (Reward, error) {
	switch w.Kind {
	case RewardKindGoldPoints:
		r := GoldPoints{}
		if w.Amount != nil {
			if *w.Amount < 0 {
				return nil, fmt.Errorf("gold amount must not be negative, got %d", *w.Amount)
			}
			r.Amount = *w.Amount
		}
		return r, nil
	case RewardKindPerkItem:
		r := PerkItem{}
		if w.PerkID != nil {
			r.PerkID = *w.PerkID
		}
		return r, nil
	case RewardKindNFTPlaceholder:
		r := NFTPlaceholder{}
		if w.Name != nil {
			r.Name = *w.Name
		}
		if w.Tier != nil {
			if *w.Tier != "" && !w.Tier.Valid() {
				return nil, fmt.Errorf("unknown nft tier %q", *w.Tier)
			}
			r.Tier = *w.Tier
		}
		return r, nil
	}
	return nil, fmt.Errorf("unknown reward kind %q", w.Kind)
}

// RewardTicket is a claimable reward owned by a single user.
type RewardTicket struct {
	ID        string
	CreatedAt Timestamp
	Source    TicketSource
	Status    TicketStatus
	ExpiresAt Timestamp
	Reward    Reward
}

type rewardTicketWire struct {
	ID        string       `json:"id"`
	CreatedAt Timestamp    `json:"createdAt"`
	Source    TicketSource `json:"source"`
	Status    TicketStatus `json:"status"`
	ExpiresAt *Timestamp   `json:"expiresAt"`
	Reward    rewardWire   `json:"reward"`
}

func (t RewardTicket) MarshalJSON() ([]byte, error) {
	reward, err := encodeReward(t.Reward)
	if err != nil {
		return nil, fmt.Errorf("ticket %s: %w", t.ID, err)
	}
	w := rewardTicketWire{
		ID:        t.ID,
		CreatedAt: t.CreatedAt,
		Source:    t.Source,
		Status:    t.Status,
		Reward:    reward,
	}
	if !t.ExpiresAt.IsZero() {
		expiresAt := t.ExpiresAt
		w.ExpiresAt = &expiresAt
	}
	return json.Marshal(w)
}

func (t *RewardTicket) UnmarshalJSON(data []byte) error {
	var w rewardTicketWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	reward, err := decodeReward(w.Reward)
	if err != nil {
		return err
	}
	*t = RewardTicket{
		ID:        w.ID,
		CreatedAt: w.CreatedAt,
		Source:    w.Source,
		Status:    w.Status,
		Reward:    reward,
	}
	if w.ExpiresAt != nil {
		t.ExpiresAt = *w.ExpiresAt
	}
	return nil
}

// ParseReward decodes a reward in its wire shape, e.g. {"kind":"GOLD_POINTS","amount":10}.
func ParseReward(data []byte) (Reward, error) {
	var w rewardWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return decodeReward(w)
}
