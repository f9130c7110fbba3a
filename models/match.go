package models

import "time"

type MatchOutcome string

const (
	MatchOutcomeWin  MatchOutcome = "WIN"
	MatchOutcomeLoss MatchOutcome = "LOSS"
	MatchOutcomeDraw MatchOutcome = "DRAW"
)

func (o MatchOutcome) Valid() bool {
	switch o {
	case MatchOutcomeWin, MatchOutcomeLoss, MatchOutcomeDraw:
		return true
	}
	return false
}

type MatchStatus string

const (
	MatchStatusStarted  MatchStatus = "STARTED"
	MatchStatusFinished MatchStatus = "FINISHED"
)

// PreviewMatch records a simulated game session (user vs AI model).
type PreviewMatch struct {
	ID        string       `json:"matchId"`
	UserID    string       `json:"-"`
	Status    MatchStatus  `json:"status"`
	Outcome   MatchOutcome `json:"outcome,omitempty"`
	ModelID   string       `json:"modelId,omitempty"`
	StartedAt time.Time    `json:"-"`
}
