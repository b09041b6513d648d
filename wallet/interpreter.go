package wallet

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Result pairs the optional wallet snapshot with the narrative left for display.
type Result struct {
	Snapshot    *Snapshot `json:"wallet"`
	DisplayText string    `json:"display_text"`
}

type Interpreter struct {
	extractor Extractor
	balances  Extractor
	defaults  Defaults
	logger    *zap.Logger
}

type Option func(*Interpreter)

func WithExtractor(e Extractor) Option {
	return func(i *Interpreter) {
		if e != nil {
			i.extractor = e
		}
	}
}

// WithBalances sets the extractor token balances are read from once a wallet
// block with an address was found. A nil extractor turns balances off.
func WithBalances(e Extractor) Option {
	return func(i *Interpreter) { i.balances = e }
}

func WithDefaults(d Defaults) Option {
	return func(i *Interpreter) { i.defaults = d.withFallbacks() }
}

func WithLogger(l *zap.Logger) Option {
	return func(i *Interpreter) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewInterpreter reads the free-text Wallet Details block. A fenced
// wallet-details segment only contributes balances to that block.
func NewInterpreter(opts ...Option) *Interpreter {
	i := &Interpreter{
		extractor: PatternExtractor{},
		balances:  TaggedExtractor{},
		defaults:  DefaultValues(),
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Interpret never fails: text without a usable block yields a nil Snapshot,
// and a panic while matching yields a nil Snapshot and the unmodified text.
func (i *Interpreter) Interpret(text string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			i.logger.Warn("wallet block interpretation aborted", zap.String("panic", fmt.Sprint(r)))
			result = Result{DisplayText: text}
		}
	}()

	block, ok := i.extractor.Extract(text)
	if !ok {
		return Result{DisplayText: Split(text, nil)}
	}

	if !block.Fields.HasAddress() {
		i.logger.Debug("wallet block found without a valid address")
		return Result{DisplayText: Split(text, &block)}
	}

	fields := block.Fields
	display := Split(text, &block)

	if extra, ok := i.supplement(text, block); ok {
		fields.Balances = extra.Fields.Balances
		display = Split(cut(text, extra), shifted(block, extra))
	}

	return Result{
		Snapshot:    Build(fields, i.defaults),
		DisplayText: display,
	}
}

// supplement finds the balances segment that belongs to block: it must not
// overlap the block and must not name a different address.
func (i *Interpreter) supplement(text string, block Block) (Block, bool) {
	if i.balances == nil {
		return Block{}, false
	}

	extra, ok := i.balances.Extract(text)
	if !ok {
		return Block{}, false
	}

	if extra.Start < block.End+block.Separator && block.Start < extra.End+extra.Separator {
		return Block{}, false
	}

	if a := extra.Fields.Address; a != nil && !strings.EqualFold(strings.TrimSpace(*a), strings.TrimSpace(*block.Fields.Address)) {
		i.logger.Debug("balances segment names another wallet", zap.String("address", *a))
		return Block{}, false
	}

	return extra, true
}

func cut(text string, b Block) string {
	return text[:b.Start] + text[b.End+b.Separator:]
}

// shifted moves block to its position in text once removed has been cut.
func shifted(block, removed Block) *Block {
	if removed.Start < block.Start {
		n := removed.End + removed.Separator - removed.Start
		block.Start -= n
		block.End -= n
	}
	return &block
}

// Interpret uses the free-text grammar and the documented defaults.
func Interpret(text string) Result {
	return NewInterpreter(WithBalances(nil)).Interpret(text)
}
