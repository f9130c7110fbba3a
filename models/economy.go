package models

type NftTier string

const (
	NftTierSilver  NftTier = "silver"
	NftTierGold    NftTier = "gold"
	NftTierDiamond NftTier = "diamond"
)

func (t NftTier) Valid() bool {
	switch t {
	case NftTierSilver, NftTierGold, NftTierDiamond:
		return true
	}
	return false
}

type PerkSource string

const (
	PerkSourceShopPurchase PerkSource = "SHOP_PURCHASE"
	PerkSourceRewardTicket PerkSource = "REWARD_TICKET"
	PerkSourceAdminGrant   PerkSource = "ADMIN_GRANT"
)

// PerkInventoryItem is one owned perk instance. It stops counting as active once
// ExpiresAt has passed or RemainingUses drops to zero.
type PerkInventoryItem struct {
	ID            string     `json:"id"`
	PerkID        string     `json:"perkId"`
	AcquiredAt    Timestamp  `json:"acquiredAt"`
	Source        PerkSource `json:"source"`
	ExpiresAt     Timestamp  `json:"expiresAt,omitempty"`
	RemainingUses *int       `json:"remainingUses,omitempty"`
}

type NftInventoryItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Tier          NftTier   `json:"tier"`
	CreatedAt     Timestamp `json:"createdAt"`
	SourcePerkID  string    `json:"sourcePerkId,omitempty"`
	Chain         string    `json:"chain,omitempty"`
	IsPlaceholder bool      `json:"isPlaceholder,omitempty"`
}

type GoldPass struct {
	Active    bool       `json:"active"`
	ExpiresAt *Timestamp `json:"expiresAt"`
}

// EconomySnapshot is the whole virtual-gold state of one user.
type EconomySnapshot struct {
	Balance       int                 `json:"balance"`
	OwnedPerks    map[string]bool     `json:"ownedPerks"`
	Inventory     []NftInventoryItem  `json:"inventory"`
	PerkInventory []PerkInventoryItem `json:"perkInventory"`
	GoldPass      GoldPass            `json:"goldPass"`
}

const StartingBalance = 500

func NewEconomySnapshot() *EconomySnapshot {
	return &EconomySnapshot{
		Balance:       StartingBalance,
		OwnedPerks:    map[string]bool{},
		Inventory:     []NftInventoryItem{},
		PerkInventory: []PerkInventoryItem{},
		GoldPass:      GoldPass{Active: true},
	}
}

// Normalize replaces nil collections so the snapshot serialises as empty lists.
func (s *EconomySnapshot) Normalize() {
	if s.OwnedPerks == nil {
		s.OwnedPerks = map[string]bool{}
	}
	if s.Inventory == nil {
		s.Inventory = []NftInventoryItem{}
	}
	if s.PerkInventory == nil {
		s.PerkInventory = []PerkInventoryItem{}
	}
}

// InventoryDelta lists inventory entries produced by a claim.
type InventoryDelta struct {
	Perks []PerkInventoryItem `json:"perks"`
	Nfts  []NftInventoryItem  `json:"nfts"`
}

type GoldShopPerk struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceGold   int    `json:"priceGold"`
	RoleGate    string `json:"roleGate,omitempty"`
}

// Perk ids with entitlement meaning.
const (
	PerkGoldPass            = "perk_gold_pass"
	PerkPriorityMatchmaking = "perk_priority_matchmaking"
	PerkCreatorDropAccess   = "perk_creator_drop_access"
	PerkEarnBoost10         = "perk_earn_boost_10"
	PerkUnknown             = "perk_unknown"
)

var PerkCatalog = []GoldShopPerk{
	{
		ID:          "perk_boost_daily",
		Title:       "Daily Booster",
		Description: "Earn +20 extra Gold on every daily claim.",
		PriceGold:   25,
	},
	{
		ID:          "perk_profile_badge",
		Title:       "Profile Badge",
		Description: "Unlock an exclusive golden badge on your profile.",
		PriceGold:   50,
	},
	{
		ID:          PerkCreatorDropAccess,
		Title:       "Creator Drop Access",
		Description: "Early access to featured creator drops and raffles.",
		PriceGold:   120,
	},
	{
		ID:          PerkPriorityMatchmaking,
		Title:       "Priority Matchmaking",
		Description: "Skip queues and get matched faster in events.",
		PriceGold:   250,
		RoleGate:    "creator",
	},
}

func FindPerk(id string) (GoldShopPerk, bool) {
	for _, p := range PerkCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return GoldShopPerk{}, false
}

// Clone returns a copy that shares no collections with s.
func (s *EconomySnapshot) Clone() *EconomySnapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.OwnedPerks = make(map[string]bool, len(s.OwnedPerks))
	for k, v := range s.OwnedPerks {
		out.OwnedPerks[k] = v
	}
	out.Inventory = append([]NftInventoryItem{}, s.Inventory...)
	out.PerkInventory = append([]PerkInventoryItem{}, s.PerkInventory...)
	if s.GoldPass.ExpiresAt != nil {
		expiresAt := *s.GoldPass.ExpiresAt
		out.GoldPass.ExpiresAt = &expiresAt
	}
	return &out
}
