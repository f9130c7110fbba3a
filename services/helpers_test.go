package services

import (
	"fmt"
	"sync/atomic"
	"time"

	"synthara-api/store"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequentialIDs() func() string {
	var n int64
	return func() string {
		return fmt.Sprintf("id-%d", atomic.AddInt64(&n, 1))
	}
}

type testServices struct {
	store    *store.MemoryStore
	events   *EventLog
	tickets  *TicketService
	economy  *EconomyService
	game     *GamePreviewService
	entitled *EntitlementService
}

func newTestServices() *testServices {
	st := store.NewMemoryStore()
	events := NewEventLog()
	events.Now = fixedClock(testNow)

	tickets := NewTicketService(st)
	tickets.Now = fixedClock(testNow)
	tickets.NewID = sequentialIDs()

	economy := NewEconomyService(st, events)
	economy.Now = fixedClock(testNow)
	economy.NewID = sequentialIDs()

	game := NewGamePreviewService(tickets, events)
	game.Now = fixedClock(testNow)
	game.NewID = sequentialIDs()

	entitled := NewEntitlementService(tickets, economy)
	entitled.Now = fixedClock(testNow)

	return &testServices{
		store:    st,
		events:   events,
		tickets:  tickets,
		economy:  economy,
		game:     game,
		entitled: entitled,
	}
}
