package agent

import (
	"context"
	"time"
)

// Clock drives the autonomous loop and the wall-time budget.
//
//go:generate mockgen -destination=clockmocks_test.go -package=agent_test github.com/kardolus/onchain-agent/agent Clock
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Sleep waits for d or until ctx ends, whichever comes first, and reports
// the context error in the latter case.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	wait, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	<-wait.Done()
	return ctx.Err()
}
