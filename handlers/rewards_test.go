package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"synthara-api/models"
	"synthara-api/store"

	"github.com/stretchr/testify/require"
)

func Test_TicketStream(t *testing.T) {
	previous := StreamPollInterval
	StreamPollInterval = 20 * time.Millisecond
	t.Cleanup(func() { StreamPollInterval = previous })

	env := newTestEnv(t, devConfig(), nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() { _ = env.app.ShutdownWithTimeout(time.Second) })

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/rewards/tickets/stream?token=dev-token")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	grant := map[string]any{"source": "EVENT", "reward": map[string]any{"kind": "GOLD_POINTS", "amount": 75}}
	status, body := env.do(t, http.MethodPost, "/rewards/tickets/grant", grant, map[string]string{"X-Admin-Key": "secret"})
	require.Equal(t, http.StatusCreated, status)
	granted := decode[models.RewardTicket](t, body)

	reader := bufio.NewReader(resp.Body)
	var event string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if strings.HasPrefix(line, "event: ") {
			event = strings.TrimPrefix(line, "event: ")
			continue
		}
		if event == "ticket" && strings.HasPrefix(line, "data: ") {
			var ticket models.RewardTicket
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ticket))
			require.Equal(t, granted.ID, ticket.ID)
			require.Equal(t, models.GoldPoints{Amount: 75}, ticket.Reward)
			return
		}
	}
}

type refusingSnapshots struct {
	store.EconomyRepository
}

func (refusingSnapshots) PutSnapshot(context.Context, string, *models.EconomySnapshot) error {
	return errors.New("snapshot write refused")
}

func Test_ClaimCreditFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	env := newTestEnv(t, devConfig(), nil)
	env.services.Economy.Store = refusingSnapshots{env.services.Economy.Store}

	status, _ := env.do(t, http.MethodPost, "/rewards/tickets/claim", map[string]string{"ticketId": "ticket-gold-1"}, nil)
	require.Equal(t, http.StatusInternalServerError, status)
	require.Contains(t, buf.String(), "Ticket ticket-gold-1 claimed but reward not credited to dev: gold=150")

	tickets, err := env.services.Tickets.ListTickets(context.Background(), models.DemoUserID)
	require.NoError(t, err)
	require.Equal(t, "ticket-gold-1", tickets[0].ID)
	require.Equal(t, models.TicketStatusClaimed, tickets[0].Status)
}
