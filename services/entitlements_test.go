package services

import (
	"context"
	"testing"

	"synthara-api/models"

	"github.com/stretchr/testify/require"
)

func entitlementMap(list []models.Entitlement) map[models.EntitlementKey]models.Entitlement {
	out := make(map[models.EntitlementKey]models.Entitlement, len(list))
	for _, e := range list {
		out[e.Key] = e
	}
	return out
}

func Test_EvaluateEntitlements_FixedOrder(t *testing.T) {
	got := EvaluateEntitlements(models.NewEconomySnapshot(), nil, testNow)
	keys := make([]models.EntitlementKey, len(got))
	for i, e := range got {
		keys[i] = e.Key
	}
	require.Equal(t, []models.EntitlementKey{
		models.EntitlementCanClaimDailyGold,
		models.EntitlementCanUseEarningActions,
		models.EntitlementHasActiveGoldPass,
		models.EntitlementCanClaimRewardTicket,
		models.EntitlementCanAccessGameRoom,
		models.EntitlementCanViewLoraPassport,
	}, keys)
}

func Test_EvaluateEntitlements_StartingState(t *testing.T) {
	got := entitlementMap(EvaluateEntitlements(models.NewEconomySnapshot(), SeedTickets(testNow), testNow))

	require.True(t, got[models.EntitlementCanClaimDailyGold].Value)
	require.True(t, got[models.EntitlementHasActiveGoldPass].Value)
	require.Nil(t, got[models.EntitlementHasActiveGoldPass].ExpiresAt)
	require.True(t, got[models.EntitlementCanClaimRewardTicket].Value)
	require.True(t, got[models.EntitlementCanAccessGameRoom].Value)
	require.Equal(t, models.EntitlementSourceSystem, got[models.EntitlementCanAccessGameRoom].Source)
}

func Test_EvaluateEntitlements_NoPendingTickets(t *testing.T) {
	tickets := []models.RewardTicket{{ID: "a", Status: models.TicketStatusClaimed, Reward: models.GoldPoints{}}}
	got := entitlementMap(EvaluateEntitlements(models.NewEconomySnapshot(), tickets, testNow))
	require.False(t, got[models.EntitlementCanClaimRewardTicket].Value)
}

func Test_EvaluateEntitlements_ExpiredGoldPass(t *testing.T) {
	snapshot := models.NewEconomySnapshot()
	snapshot.GoldPass.ExpiresAt = models.TimestampPtr(testNow.Add(-1))

	got := entitlementMap(EvaluateEntitlements(snapshot, nil, testNow))
	pass := got[models.EntitlementHasActiveGoldPass]
	require.False(t, pass.Value)
	require.NotNil(t, pass.ExpiresAt)
	require.Equal(t, *snapshot.GoldPass.ExpiresAt, *pass.ExpiresAt)
	require.False(t, got[models.EntitlementCanAccessGameRoom].Value)
	require.False(t, got[models.EntitlementCanViewLoraPassport].Value)
}

func Test_EvaluateEntitlements_GoldPassPerkOverridesExpiry(t *testing.T) {
	snapshot := models.NewEconomySnapshot()
	snapshot.GoldPass.ExpiresAt = models.TimestampPtr(testNow.AddDate(0, 0, -1))
	snapshot.OwnedPerks[models.PerkGoldPass] = true

	got := entitlementMap(EvaluateEntitlements(snapshot, nil, testNow))
	require.True(t, got[models.EntitlementHasActiveGoldPass].Value)
}

func Test_EvaluateEntitlements_InactivePassWithPerks(t *testing.T) {
	snapshot := models.NewEconomySnapshot()
	snapshot.GoldPass.Active = false
	snapshot.PerkInventory = []models.PerkInventoryItem{
		{ID: "p1", PerkID: models.PerkPriorityMatchmaking, Source: models.PerkSourceRewardTicket},
	}
	snapshot.OwnedPerks[models.PerkCreatorDropAccess] = true

	got := entitlementMap(EvaluateEntitlements(snapshot, nil, testNow))
	require.False(t, got[models.EntitlementHasActiveGoldPass].Value)

	room := got[models.EntitlementCanAccessGameRoom]
	require.True(t, room.Value)
	require.Equal(t, models.EntitlementSourcePerk, room.Source)

	lora := got[models.EntitlementCanViewLoraPassport]
	require.True(t, lora.Value)
	require.Equal(t, models.EntitlementSourcePerk, lora.Source)
}

func Test_EvaluateEntitlements_InactivePerkItems(t *testing.T) {
	zero := 0
	snapshot := models.NewEconomySnapshot()
	snapshot.GoldPass.Active = false
	snapshot.PerkInventory = []models.PerkInventoryItem{
		{ID: "p1", PerkID: models.PerkPriorityMatchmaking, ExpiresAt: models.NewTimestamp(testNow.AddDate(0, 0, -1))},
		{ID: "p2", PerkID: models.PerkCreatorDropAccess, RemainingUses: &zero},
	}

	got := entitlementMap(EvaluateEntitlements(snapshot, nil, testNow))
	require.False(t, got[models.EntitlementCanAccessGameRoom].Value)
	require.Equal(t, models.EntitlementSourceSystem, got[models.EntitlementCanAccessGameRoom].Source)
	require.False(t, got[models.EntitlementCanViewLoraPassport].Value)
}

func Test_EvaluateEntitlements_MalformedTimestampsFailOpen(t *testing.T) {
	bad := models.Timestamp("garbage")
	snapshot := models.NewEconomySnapshot()
	snapshot.GoldPass.ExpiresAt = &bad
	snapshot.PerkInventory = []models.PerkInventoryItem{
		{ID: "p1", PerkID: models.PerkPriorityMatchmaking, ExpiresAt: bad},
	}

	got := entitlementMap(EvaluateEntitlements(snapshot, nil, testNow))
	require.True(t, got[models.EntitlementHasActiveGoldPass].Value)
	require.Equal(t, models.EntitlementSourcePerk, got[models.EntitlementCanAccessGameRoom].Source)
}

func Test_EvaluateEntitlements_DoesNotMutateInput(t *testing.T) {
	snapshot := models.NewEconomySnapshot()
	snapshot.GoldPass.ExpiresAt = models.TimestampPtr(testNow.Add(-1))
	before := snapshot.Clone()

	EvaluateEntitlements(snapshot, nil, testNow)
	require.Equal(t, before, snapshot)
}

func Test_EntitlementService_ForUser(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	got, err := s.entitled.ForUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, models.NewTimestamp(testNow), got.UpdatedAt)
	require.Len(t, got.Entitlements, 6)
	require.True(t, entitlementMap(got.Entitlements)[models.EntitlementCanClaimRewardTicket].Value)
}
