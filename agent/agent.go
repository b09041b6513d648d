package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kardolus/onchain-agent/api"
	"github.com/kardolus/onchain-agent/history"
)

const (
	DefaultMaxIterations = 10
	errorObservation     = "error: "
)

// Agent runs tool-calling turns against an LLM and remembers the
// conversation per history thread.
type Agent struct {
	llm      LLM
	registry *Registry
	clock    Clock

	historyStore  history.Store
	omitHistory   bool
	systemPrompt  string
	maxIterations int
	limits        BudgetLimits

	out   *zap.SugaredLogger
	debug *zap.SugaredLogger

	syncOut   func()
	syncDebug func()

	mu    sync.Mutex
	usage int
}

type Option func(*Agent)

func WithHistory(store history.Store, omit bool) Option {
	return func(a *Agent) {
		a.historyStore = store
		a.omitHistory = omit
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) { a.systemPrompt = prompt }
}

func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxIterations = n
		}
	}
}

// WithBudgetLimits bounds tool calls, tokens and wall time per turn.
// MaxIterations is always taken from WithMaxIterations.
func WithBudgetLimits(limits BudgetLimits) Option {
	return func(a *Agent) { a.limits = limits }
}

func WithClock(c Clock) Option {
	return func(a *Agent) {
		if c != nil {
			a.clock = c
		}
	}
}

func WithHumanLogger(l *zap.SugaredLogger, sync func()) Option {
	return func(a *Agent) {
		if l != nil {
			a.out = l
		}
		if sync != nil {
			a.syncOut = sync
		}
	}
}

func WithDebugLogger(l *zap.SugaredLogger, sync func()) Option {
	return func(a *Agent) {
		if l != nil {
			a.debug = l
		}
		if sync != nil {
			a.syncDebug = sync
		}
	}
}

func New(llm LLM, registry *Registry, opts ...Option) *Agent {
	if registry == nil {
		registry = NewRegistry()
	}

	a := &Agent{
		llm:           llm,
		registry:      registry,
		clock:         SystemClock{},
		systemPrompt:  SystemPrompt,
		maxIterations: DefaultMaxIterations,
		out:           zap.NewNop().Sugar(),
		debug:         zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Usage is the number of tokens billed since the agent was created.
func (a *Agent) Usage() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.usage
}

// ChunkSeparator joins chunk contents in Chat. A Wallet Details block in one
// chunk ends at the separator instead of running into the next chunk.
const ChunkSeparator = "\n\n"

// Chat runs one turn and returns every chunk's content in order, joined by
// ChunkSeparator.
func (a *Agent) Chat(ctx context.Context, prompt string) (string, error) {
	var b strings.Builder
	err := a.Stream(ctx, prompt, func(c Chunk) {
		if b.Len() > 0 {
			b.WriteString(ChunkSeparator)
		}
		b.WriteString(c.Content)
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// Stream runs one user turn, calling onChunk for every assistant message
// with content and every tool observation. Turns are serialized.
func (a *Agent) Stream(ctx context.Context, prompt string, onChunk func(Chunk)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if onChunk == nil {
		onChunk = func(Chunk) {}
	}

	start := a.clock.Now()
	defer a.finishTimer(start)

	a.out.Infof("Prompt: %s", prompt)

	past, err := a.readHistory()
	if err != nil {
		return err
	}

	limits := a.limits
	limits.MaxIterations = a.maxIterations
	var budget Budget = NewDefaultBudget(limits)
	budget.Start(start)

	messages := make([]api.Message, 0, len(past)+2)
	if a.systemPrompt != "" {
		messages = append(messages, api.Message{Role: api.SystemRole, Content: a.systemPrompt})
	}
	for _, h := range past {
		messages = append(messages, h.Message)
	}

	turn := []history.History{a.record(api.Message{Role: api.UserRole, Content: prompt})}
	messages = append(messages, turn[0].Message)

	tools := a.registry.Definitions()

	for i := 1; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := budget.AllowIteration(a.clock.Now()); err != nil {
			a.out.Errorf("Stopping: %v", err)
			return err
		}

		a.debug.Debugf("iteration %d messages=%d", i, len(messages))

		reply, tokens, err := a.llm.Complete(ctx, messages, tools)
		a.usage += tokens
		if err != nil {
			a.debug.Debugf("iteration %d llm error: %v", i, err)
			return err
		}
		a.debug.Debugf("iteration %d tokens=%d tool_calls=%d", i, tokens, len(reply.ToolCalls))

		if err := budget.ChargeLLMTokens(tokens, a.clock.Now()); err != nil {
			a.out.Errorf("Stopping: %v", err)
			return err
		}

		if reply.Role == "" {
			reply.Role = api.AssistantRole
		}
		messages = append(messages, reply)
		turn = append(turn, a.record(reply))

		if strings.TrimSpace(reply.Content) != "" {
			a.out.Infof("[Agent] %s", reply.Content)
			onChunk(Chunk{Kind: ChunkAgent, Content: reply.Content})
		}

		if len(reply.ToolCalls) == 0 {
			break
		}

		for _, call := range reply.ToolCalls {
			if err := budget.AllowToolCall(a.clock.Now()); err != nil {
				a.out.Errorf("Stopping: %v", err)
				return err
			}

			observation := a.invoke(ctx, call)
			onChunk(Chunk{Kind: ChunkTools, Tool: call.Function.Name, Content: observation})

			toolMessage := api.Message{
				Role:       api.ToolRole,
				Content:    observation,
				Name:       call.Function.Name,
				ToolCallID: call.ID,
			}
			messages = append(messages, toolMessage)
			turn = append(turn, a.record(toolMessage))
		}
	}

	return a.writeHistory(past, turn)
}

// RunAutonomous sends AutonomousThought every interval until ctx ends or a
// turn fails.
func (a *Agent) RunAutonomous(ctx context.Context, interval time.Duration, onChunk func(Chunk)) error {
	for {
		if err := a.Stream(ctx, AutonomousThought, onChunk); err != nil {
			return err
		}
		if err := a.clock.Sleep(ctx, interval); err != nil {
			return err
		}
	}
}

func (a *Agent) invoke(ctx context.Context, call api.ToolCall) string {
	start := a.clock.Now()
	a.out.Infof("[Tool] %s %s", call.Function.Name, call.Function.Arguments)

	result, err := a.registry.Invoke(ctx, call.Function.Name, call.Function.Arguments)
	took := a.clock.Now().Sub(start)
	if err != nil {
		a.out.Errorf("[Tool] %s failed: %v", call.Function.Name, err)
		a.debug.Debugf("tool %s error=%q took=%s", call.Function.Name, err.Error(), took)
		return errorObservation + err.Error()
	}

	a.debug.Debugf("tool %s observation=%q took=%s", call.Function.Name, result, took)
	return result
}

func (a *Agent) readHistory() ([]history.History, error) {
	if a.omitHistory || a.historyStore == nil {
		return nil, nil
	}

	stored, err := a.historyStore.Read()
	if err != nil {
		return nil, err
	}

	past := make([]history.History, 0, len(stored))
	for _, h := range stored {
		if h.Role == api.SystemRole {
			continue
		}
		past = append(past, h)
	}
	return past, nil
}

func (a *Agent) writeHistory(past, turn []history.History) error {
	if a.omitHistory || a.historyStore == nil {
		return nil
	}

	if err := a.historyStore.Write(append(past, turn...)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

func (a *Agent) record(m api.Message) history.History {
	return history.History{Message: m, Timestamp: a.clock.Now()}
}

func (a *Agent) finishTimer(start time.Time) {
	dur := a.clock.Now().Sub(start)
	a.out.Infof("Turn duration: %s", dur)
	a.debug.Infof("Turn duration: %s", dur)

	if a.syncOut != nil {
		a.syncOut()
	}
	if a.syncDebug != nil {
		a.syncDebug()
	}
}
