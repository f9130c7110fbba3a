package models

type EntitlementKey string

const (
	EntitlementCanClaimDailyGold    EntitlementKey = "CAN_CLAIM_DAILY_GOLD"
	EntitlementCanUseEarningActions EntitlementKey = "CAN_USE_EARNING_ACTIONS"
	EntitlementHasActiveGoldPass    EntitlementKey = "HAS_ACTIVE_GOLD_PASS"
	EntitlementCanAccessGameRoom    EntitlementKey = "CAN_ACCESS_GAME_ROOM"
	EntitlementCanClaimRewardTicket EntitlementKey = "CAN_CLAIM_REWARD_TICKET"
	EntitlementCanViewLoraPassport  EntitlementKey = "CAN_VIEW_LORA_PASSPORT"
)

type EntitlementSource string

const (
	EntitlementSourcePerk   EntitlementSource = "PERK"
	EntitlementSourceNFT    EntitlementSource = "NFT"
	EntitlementSourceSystem EntitlementSource = "SYSTEM"
)

// Entitlement is derived on every request and never stored.
type Entitlement struct {
	Key       EntitlementKey    `json:"key"`
	Value     bool              `json:"value"`
	Source    EntitlementSource `json:"source,omitempty"`
	ExpiresAt *Timestamp        `json:"expiresAt"`
}

type UserEntitlements struct {
	UpdatedAt    Timestamp     `json:"updatedAt"`
	Entitlements []Entitlement `json:"entitlements"`
}
