package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewardTicketJSON(t *testing.T) {
	ticket := RewardTicket{
		ID:        "ticket-gold-1",
		CreatedAt: "2025-01-01T00:00:00.000000",
		Source:    TicketSourceGameMatch,
		Status:    TicketStatusPending,
		Reward:    GoldPoints{Amount: 150},
	}
	data, err := json.Marshal(ticket)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": "ticket-gold-1",
		"createdAt": "2025-01-01T00:00:00.000000",
		"source": "GAME_MATCH",
		"status": "PENDING",
		"expiresAt": null,
		"reward": {"kind": "GOLD_POINTS", "amount": 150}
	}`, string(data))
}

func TestRewardTicketDecodeKinds(t *testing.T) {
	var perk RewardTicket
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","status":"PENDING","source":"EVENT",
		"expiresAt":"2025-01-01T00:00:00Z","reward":{"kind":"PERK_ITEM","perkId":"perk_x"}}`), &perk))
	require.Equal(t, PerkItem{PerkID: "perk_x"}, perk.Reward)
	require.Equal(t, Timestamp("2025-01-01T00:00:00Z"), perk.ExpiresAt)

	var nft RewardTicket
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","reward":{"kind":"NFT_PLACEHOLDER"}}`), &nft))
	require.Equal(t, NFTPlaceholder{}, nft.Reward)
	require.True(t, nft.ExpiresAt.IsZero())

	var bad RewardTicket
	require.Error(t, json.Unmarshal([]byte(`{"id":"c","reward":{"kind":"LOOT_BOX"}}`), &bad))
}

func TestParseRewardRejectsOutOfRangeValues(t *testing.T) {
	_, err := ParseReward([]byte(`{"kind":"NFT_PLACEHOLDER","tier":"platinum"}`))
	require.Error(t, err)

	_, err = ParseReward([]byte(`{"kind":"GOLD_POINTS","amount":-500}`))
	require.Error(t, err)

	r, err := ParseReward([]byte(`{"kind":"NFT_PLACEHOLDER","name":"Comet","tier":"diamond"}`))
	require.NoError(t, err)
	require.Equal(t, NFTPlaceholder{Name: "Comet", Tier: NftTierDiamond}, r)

	r, err = ParseReward([]byte(`{"kind":"GOLD_POINTS","amount":0}`))
	require.NoError(t, err)
	require.Equal(t, GoldPoints{}, r)
}

func TestRewardTicketRequiresReward(t *testing.T) {
	_, err := json.Marshal(RewardTicket{ID: "x"})
	require.Error(t, err)
}
