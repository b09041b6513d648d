package agent

import (
	"fmt"
	"time"
)

// Budget meters one turn.
type Budget interface {
	Start(now time.Time)
	AllowIteration(now time.Time) error
	AllowToolCall(now time.Time) error
	ChargeLLMTokens(tokens int, now time.Time) error
	Snapshot(now time.Time) BudgetSnapshot
}

const (
	BudgetKindIterations = "iterations"
	BudgetKindToolCalls  = "tool_calls"
	BudgetKindLLMTokens  = "llm_tokens"
	BudgetKindWallTime   = "wall_time"
)

// BudgetLimits bound a single turn; zero means unlimited.
type BudgetLimits struct {
	MaxIterations int
	MaxToolCalls  int
	MaxLLMTokens  int
	MaxWallTime   time.Duration
}

type BudgetSnapshot struct {
	StartedAt      time.Time
	Elapsed        time.Duration
	Limits         BudgetLimits
	IterationsUsed int
	ToolCallsUsed  int
	LLMTokensUsed  int
}

type DefaultBudget struct {
	limits BudgetLimits

	started   bool
	startedAt time.Time

	iterationsUsed int
	toolCallsUsed  int
	llmTokensUsed  int
}

var _ Budget = &DefaultBudget{}

func NewDefaultBudget(limits BudgetLimits) *DefaultBudget {
	return &DefaultBudget{limits: limits}
}

func (b *DefaultBudget) Start(now time.Time) {
	b.started = true
	b.startedAt = now
	b.iterationsUsed = 0
	b.toolCallsUsed = 0
	b.llmTokensUsed = 0
}

func (b *DefaultBudget) Snapshot(now time.Time) BudgetSnapshot {
	b.ensureStarted(now)

	elapsed := now.Sub(b.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	return BudgetSnapshot{
		StartedAt:      b.startedAt,
		Elapsed:        elapsed,
		Limits:         b.limits,
		IterationsUsed: b.iterationsUsed,
		ToolCallsUsed:  b.toolCallsUsed,
		LLMTokensUsed:  b.llmTokensUsed,
	}
}

func (b *DefaultBudget) AllowIteration(now time.Time) error {
	b.ensureStarted(now)

	if err := b.checkWall(now); err != nil {
		return err
	}

	if b.limits.MaxIterations > 0 && b.iterationsUsed+1 > b.limits.MaxIterations {
		return BudgetExceededError{
			Kind:    BudgetKindIterations,
			Limit:   b.limits.MaxIterations,
			Used:    b.iterationsUsed,
			Message: "iteration budget exceeded",
		}
	}

	b.iterationsUsed++
	return nil
}

func (b *DefaultBudget) AllowToolCall(now time.Time) error {
	b.ensureStarted(now)

	if err := b.checkWall(now); err != nil {
		return err
	}

	if b.limits.MaxToolCalls > 0 && b.toolCallsUsed+1 > b.limits.MaxToolCalls {
		return BudgetExceededError{
			Kind:    BudgetKindToolCalls,
			Limit:   b.limits.MaxToolCalls,
			Used:    b.toolCallsUsed,
			Message: "tool call budget exceeded",
		}
	}

	b.toolCallsUsed++
	return nil
}

// ChargeLLMTokens records usage and reports when the token limit is crossed.
func (b *DefaultBudget) ChargeLLMTokens(tokens int, now time.Time) error {
	b.ensureStarted(now)
	if tokens > 0 {
		b.llmTokensUsed += tokens
	}

	if b.limits.MaxLLMTokens > 0 && b.llmTokensUsed > b.limits.MaxLLMTokens {
		return BudgetExceededError{
			Kind:    BudgetKindLLMTokens,
			Limit:   b.limits.MaxLLMTokens,
			Used:    b.llmTokensUsed,
			Message: "llm token budget exceeded",
		}
	}

	return nil
}

func (b *DefaultBudget) ensureStarted(now time.Time) {
	if b.started {
		return
	}
	b.Start(now)
}

func (b *DefaultBudget) checkWall(now time.Time) error {
	if b.limits.MaxWallTime <= 0 {
		return nil
	}
	elapsed := now.Sub(b.startedAt)
	if elapsed > b.limits.MaxWallTime {
		return BudgetExceededError{
			Kind:    BudgetKindWallTime,
			LimitD:  b.limits.MaxWallTime,
			UsedD:   elapsed,
			Message: "wall time budget exceeded",
		}
	}
	return nil
}

// BudgetExceededError is typed so callers can tell a runaway turn from a
// provider failure.
type BudgetExceededError struct {
	Kind    string
	Limit   int
	Used    int
	LimitD  time.Duration
	UsedD   time.Duration
	Message string
}

func (e BudgetExceededError) Error() string {
	if e.Kind == BudgetKindWallTime {
		return fmt.Sprintf("%s: limit=%s used=%s", e.Message, e.LimitD, e.UsedD)
	}
	return fmt.Sprintf("%s: kind=%s limit=%d used=%d", e.Message, e.Kind, e.Limit, e.Used)
}
