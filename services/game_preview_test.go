package services

import (
	"context"
	"testing"

	"synthara-api/models"

	"github.com/stretchr/testify/require"
)

func Test_DeterministicPick(t *testing.T) {
	require.Equal(t, uint64(0x5e5b43a2), DeterministicPick("match-1"))
	require.Equal(t, uint64(0x849de3a1), DeterministicPick("match-4"))
}

func Test_MatchReward(t *testing.T) {
	require.Equal(t, models.GoldPoints{Amount: WinGoldReward}, MatchReward("match-1", models.MatchOutcomeWin))
	require.Equal(t, models.PerkItem{PerkID: models.PerkEarnBoost10}, MatchReward("match-4", models.MatchOutcomeWin))
	require.Equal(t, models.GoldPoints{Amount: DrawGoldReward}, MatchReward("match-4", models.MatchOutcomeDraw))
	require.Equal(t, models.GoldPoints{Amount: LossGoldReward}, MatchReward("match-4", models.MatchOutcomeLoss))
}

func Test_StartAndFinishMatch(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	match := s.game.StartMatch("u1")
	require.Equal(t, "match-id-1", match.ID)
	require.Equal(t, models.MatchStatusStarted, match.Status)

	res, err := s.game.FinishMatch(ctx, "u1", match.ID, models.MatchOutcomeDraw, "aurora")
	require.NoError(t, err)
	require.Equal(t, "ticket-match-id-1", res.RewardTicket.ID)
	require.Equal(t, models.TicketSourceGameMatch, res.RewardTicket.Source)
	require.Equal(t, models.TicketStatusPending, res.RewardTicket.Status)
	require.Equal(t, models.GoldPoints{Amount: DrawGoldReward}, res.RewardTicket.Reward)
	require.Equal(t, "aurora", res.ModelID)

	stored, ok := s.game.Match(match.ID)
	require.True(t, ok)
	require.Equal(t, models.MatchStatusFinished, stored.Status)
	require.Equal(t, models.MatchOutcomeDraw, stored.Outcome)

	tickets, err := s.tickets.ListTickets(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "ticket-match-id-1", tickets[0].ID)

	types := []models.EventType{}
	for _, e := range s.events.Entries() {
		types = append(types, e.EventType)
	}
	require.Equal(t, []models.EventType{
		models.EventGameMatchStarted,
		models.EventGameMatchFinished,
		models.EventRewardTicketCreated,
	}, types)
}

func Test_FinishMatch_Twice(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()
	match := s.game.StartMatch("u1")

	first, err := s.game.FinishMatch(ctx, "u1", match.ID, models.MatchOutcomeLoss, "")
	require.NoError(t, err)
	second, err := s.game.FinishMatch(ctx, "u1", match.ID, models.MatchOutcomeWin, "")
	require.NoError(t, err)
	require.Equal(t, first.RewardTicket.Reward, second.RewardTicket.Reward)

	tickets, err := s.tickets.ListTickets(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tickets, 4)
}

func Test_FinishMatch_Errors(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	_, err := s.game.FinishMatch(ctx, "u1", "match-unknown", models.MatchOutcomeWin, "")
	require.ErrorIs(t, err, ErrMatchNotFound)

	match := s.game.StartMatch("u1")
	_, err = s.game.FinishMatch(ctx, "u1", match.ID, models.MatchOutcome("TIE"), "")
	require.ErrorIs(t, err, ErrInvalidOutcome)
}
