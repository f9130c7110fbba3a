package models

type EventType string

const (
	EventGoldEarned          EventType = "GOLD_EARNED"
	EventGoldSpent           EventType = "GOLD_SPENT"
	EventPerkPurchased       EventType = "PERK_PURCHASED"
	EventRewardClaimed       EventType = "REWARD_CLAIMED"
	EventGameMatchStarted    EventType = "GAME_MATCH_STARTED"
	EventGameMatchFinished   EventType = "GAME_MATCH_FINISHED"
	EventRewardTicketCreated EventType = "REWARD_TICKET_CREATED"
)

func (e EventType) Valid() bool {
	switch e {
	case EventGoldEarned, EventGoldSpent, EventPerkPurchased, EventRewardClaimed,
		EventGameMatchStarted, EventGameMatchFinished, EventRewardTicketCreated:
		return true
	}
	return false
}

type EventLogEntry struct {
	EventType EventType      `json:"eventType"`
	Metadata  map[string]any `json:"metadata"`
	Ts        Timestamp      `json:"ts"`
}
