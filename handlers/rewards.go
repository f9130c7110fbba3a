package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"synthara-api/config"
	"synthara-api/middleware"
	"synthara-api/models"
	"synthara-api/services"

	"github.com/gofiber/fiber/v2"
)

// StreamPollInterval is how often the ticket stream re-reads the store.
var StreamPollInterval = 2 * time.Second

type claimRequest struct {
	TicketID string `json:"ticketId"`
}

// ClaimResponse is the body of every claim attempt. Refusals are ok=false with
// a user-facing error, never an HTTP failure.
type ClaimResponse struct {
	OK             bool                   `json:"ok"`
	Ticket         *models.RewardTicket   `json:"ticket,omitempty"`
	InventoryDelta *models.InventoryDelta `json:"inventoryDelta,omitempty"`
	GoldDelta      *int                   `json:"goldDelta,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

type grantRequest struct {
	Source   models.TicketSource `json:"source"`
	Reward   json.RawMessage     `json:"reward"`
	TTLHours int                 `json:"ttlHours"`
}

var claimErrors = map[error]string{
	services.ErrTicketNotFound:         "Ticket not found",
	services.ErrTicketAlreadyProcessed: "Ticket already processed",
	services.ErrTicketExpired:          "Ticket expired",
}

func SetupRewardRoutes(app *fiber.App, cfg *config.Config, tickets *services.TicketService, economy *services.EconomyService, events *services.EventLog) {
	h := &rewardHandler{tickets: tickets, economy: economy, events: events}

	group := app.Group("/rewards/tickets")
	group.Get("/me", h.list)
	group.Get("/list", h.list)
	group.Post("/claim", h.claim)
	group.Post("/grant", middleware.RequireDevAdmin(cfg), h.grant)
	group.Get("/stream", middleware.StreamAuth(), h.stream)
}

type rewardHandler struct {
	tickets *services.TicketService
	economy *services.EconomyService
	events  *services.EventLog
}

func (h *rewardHandler) list(c *fiber.Ctx) error {
	tickets, err := h.tickets.ListTickets(c.UserContext(), middleware.StateUserID(c))
	if err != nil {
		return internalError(c, "REWARDS", err)
	}
	return c.JSON(tickets)
}

func (h *rewardHandler) claim(c *fiber.Ctx) error {
	var req claimRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	userID := middleware.StateUserID(c)

	result, err := h.tickets.ClaimTicket(c.UserContext(), userID, req.TicketID)
	if err != nil {
		for sentinel, message := range claimErrors {
			if errors.Is(err, sentinel) {
				return c.JSON(ClaimResponse{OK: false, Ticket: result.Ticket, Error: message})
			}
		}
		return internalError(c, "REWARDS", err)
	}

	if _, err := h.economy.ApplyRewardDelta(c.UserContext(), userID, *result.Delta); err != nil {
		// The ticket is already CLAIMED; this line is the only record of what was owed.
		gold := 0
		if result.Delta.GoldDelta != nil {
			gold = *result.Delta.GoldDelta
		}
		log.Printf("❌ [REWARDS] Ticket %s claimed but reward not credited to %s: gold=%d perks=%d nfts=%d: %v",
			result.Ticket.ID, userID, gold, len(result.Delta.Inventory.Perks), len(result.Delta.Inventory.Nfts), err)
		return internalError(c, "REWARDS", err)
	}
	h.events.Append(models.EventRewardClaimed, map[string]any{
		"ticketId":   result.Ticket.ID,
		"rewardKind": string(result.Ticket.Reward.Kind()),
	})

	return c.JSON(ClaimResponse{
		OK:             true,
		Ticket:         result.Ticket,
		InventoryDelta: &result.Delta.Inventory,
		GoldDelta:      result.Delta.GoldDelta,
	})
}

func (h *rewardHandler) grant(c *fiber.Ctx) error {
	var req grantRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Source == "" {
		req.Source = models.TicketSourceAdmin
	}
	if req.Source != models.TicketSourceAdmin && req.Source != models.TicketSourceEvent {
		return fail(c, fiber.StatusBadRequest, "source must be ADMIN or EVENT")
	}
	reward, err := models.ParseReward(req.Reward)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid reward: %v", err))
	}

	ticket, err := h.tickets.IssueTicket(c.UserContext(), middleware.StateUserID(c), req.Source, reward,
		time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		return internalError(c, "REWARDS", err)
	}
	h.events.Append(models.EventRewardTicketCreated, map[string]any{
		"ticketId":   ticket.ID,
		"rewardKind": string(ticket.Reward.Kind()),
		"source":     string(ticket.Source),
	})
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// stream pushes tickets that appear after the connection opened as
// `event: ticket` server-sent events.
func (h *rewardHandler) stream(c *fiber.Ctx) error {
	userID := middleware.StateUserID(c)
	ctx := c.UserContext()
	reqCtx := c.Context()

	seen := map[string]bool{}
	initial, err := h.tickets.ListTickets(ctx, userID)
	if err != nil {
		return internalError(c, "REWARDS", err)
	}
	for _, t := range initial {
		seen[t.ID] = true
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	reqCtx.SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(StreamPollInterval)
		defer ticker.Stop()

		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-ticker.C:
				tickets, err := h.tickets.ListTickets(ctx, userID)
				if err != nil {
					log.Printf("SSE query error for user %s: %v", userID, err)
					continue
				}
				// Tickets are stored newest first; emit oldest first.
				fresh := 0
				for i := len(tickets) - 1; i >= 0; i-- {
					t := tickets[i]
					if seen[t.ID] {
						continue
					}
					seen[t.ID] = true
					payload, err := json.Marshal(t)
					if err != nil {
						log.Printf("SSE encode error for ticket %s: %v", t.ID, err)
						continue
					}
					fmt.Fprintf(w, "event: ticket\ndata: %s\n\n", payload)
					fresh++
				}
				if fresh == 0 {
					w.WriteString(":\n\n")
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-reqCtx.Done():
				return
			}
		}
	})
	return nil
}
