package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"synthara-api/models"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrInvalidOutcome = errors.New("invalid match outcome")
)

// Fixed match rewards.
const (
	WinGoldReward  = 50
	DrawGoldReward = 20
	LossGoldReward = 10
)

type MatchResult struct {
	MatchID      string               `json:"matchId"`
	ModelID      string               `json:"modelId"`
	Outcome      models.MatchOutcome  `json:"outcome"`
	RewardTicket *models.RewardTicket `json:"rewardTicket"`
}

// GamePreviewService simulates matches against AI models and pays out a reward
// ticket per finished match.
type GamePreviewService struct {
	Tickets *TicketService
	Events  *EventLog
	Now     func() time.Time
	NewID   func() string
	matches *xsync.MapOf[string, models.PreviewMatch]
}

func NewGamePreviewService(tickets *TicketService, events *EventLog) *GamePreviewService {
	return &GamePreviewService{
		Tickets: tickets,
		Events:  events,
		Now:     time.Now,
		NewID:   uuid.NewString,
		matches: xsync.NewMapOf[models.PreviewMatch](),
	}
}

// DeterministicPick reads the first 32 bits of sha256(matchID) as an integer.
func DeterministicPick(matchID string) uint64 {
	sum := sha256.Sum256([]byte(matchID))
	n, _ := strconv.ParseUint(hex.EncodeToString(sum[:])[:8], 16, 64)
	return n
}

// MatchReward maps an outcome to its reward. A WIN pays gold or a perk
// depending on the match id, so the same match always pays the same.
func MatchReward(matchID string, outcome models.MatchOutcome) models.Reward {
	switch outcome {
	case models.MatchOutcomeWin:
		if DeterministicPick(matchID)%2 == 0 {
			return models.GoldPoints{Amount: WinGoldReward}
		}
		return models.PerkItem{PerkID: models.PerkEarnBoost10}
	case models.MatchOutcomeDraw:
		return models.GoldPoints{Amount: DrawGoldReward}
	default:
		return models.GoldPoints{Amount: LossGoldReward}
	}
}

func (s *GamePreviewService) StartMatch(userID string) models.PreviewMatch {
	match := models.PreviewMatch{
		ID:        "match-" + s.NewID(),
		UserID:    userID,
		Status:    models.MatchStatusStarted,
		StartedAt: s.Now(),
	}
	s.matches.Store(match.ID, match)
	s.Events.Append(models.EventGameMatchStarted, map[string]any{"matchId": match.ID})
	return match
}

// FinishMatch records the outcome and issues the match's reward ticket.
// Finishing the same match again returns the ticket issued the first time.
func (s *GamePreviewService) FinishMatch(ctx context.Context, userID, matchID string, outcome models.MatchOutcome, modelID string) (*MatchResult, error) {
	if !outcome.Valid() {
		return nil, ErrInvalidOutcome
	}
	match, ok := s.matches.Load(matchID)
	if !ok {
		return nil, ErrMatchNotFound
	}
	match.Status = models.MatchStatusFinished
	match.Outcome = outcome
	match.ModelID = modelID
	s.matches.Store(matchID, match)

	ticket, created, err := s.Tickets.AddTicket(ctx, userID, models.RewardTicket{
		ID:        "ticket-" + matchID,
		CreatedAt: models.NewTimestamp(s.Now()),
		Source:    models.TicketSourceGameMatch,
		Status:    models.TicketStatusPending,
		Reward:    MatchReward(matchID, outcome),
	})
	if err != nil {
		return nil, err
	}

	s.Events.Append(models.EventGameMatchFinished, map[string]any{
		"matchId": matchID, "outcome": string(outcome), "modelId": modelID,
	})
	if created {
		s.Events.Append(models.EventRewardTicketCreated, map[string]any{
			"matchId": matchID, "ticketId": ticket.ID, "rewardKind": string(ticket.Reward.Kind()),
		})
	}

	return &MatchResult{MatchID: matchID, ModelID: modelID, Outcome: outcome, RewardTicket: &ticket}, nil
}

func (s *GamePreviewService) Match(matchID string) (models.PreviewMatch, bool) {
	return s.matches.Load(matchID)
}
