// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartExpirySweeper periodically moves overdue PENDING tickets to EXPIRED.
// The caller owns the returned scheduler and should Shutdown it on exit.
func (s *TicketService) StartExpirySweeper(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			n, err := s.SweepExpired(ctx)
			if err != nil {
				log.Printf("[Scheduler] Ticket sweep failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("⌛ Expired %d reward ticket(s)", n)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	return sched, nil
}
