package pegmatch

import (
	"errors"

	"github.com/hashicorp/go-hclog"
)

// MatchHandler is the one place every matcher activation of a run
// goes through.  The default handler just calls the matcher.
type MatchHandler interface {
	Match(ctx *MatcherContext) bool
}

// MatchHandlerFunc adapts a function to the MatchHandler interface
type MatchHandlerFunc func(ctx *MatcherContext) bool

func (f MatchHandlerFunc) Match(ctx *MatcherContext) bool { return f(ctx) }

type basicMatchHandler struct{}

func (basicMatchHandler) Match(ctx *MatcherContext) bool {
	return ctx.Matcher().Match(ctx)
}

// ParseRunner runs a grammar against inputs.  A runner holds no
// state from one run to the next, so it may be used by many
// goroutines at once as long as its listeners allow it.
type ParseRunner struct {
	root      Matcher
	log       hclog.Logger
	handler   MatchHandler
	listeners []Listener
	buildTree bool
	fullInput bool
	trace     bool
}

type Option func(r *ParseRunner)

// WithLogger sets the logger of the runner.  Runners log nothing by
// default.
func WithLogger(log hclog.Logger) Option {
	return func(r *ParseRunner) {
		r.log = log
	}
}

// WithListener registers a listener.  Listeners are notified in the
// order they're registered.
func WithListener(l Listener) Option {
	return func(r *ParseRunner) {
		r.listeners = append(r.listeners, l)
	}
}

// WithMatchHandler replaces the handler that invokes matchers.
// Listeners still wrap the given handler.
func WithMatchHandler(h MatchHandler) Option {
	return func(r *ParseRunner) {
		r.handler = h
	}
}

func WithParseTree(on bool) Option {
	return func(r *ParseRunner) {
		r.buildTree = on
	}
}

// WithFullInput makes runs fail unless the root rule consumes the
// whole input
func WithFullInput(on bool) Option {
	return func(r *ParseRunner) {
		r.fullInput = on
	}
}

// WithConfig reads the `runner.*` settings of `cfg`
func WithConfig(cfg *Config) Option {
	return func(r *ParseRunner) {
		r.buildTree = cfg.GetBool("runner.parse_tree")
		r.fullInput = cfg.GetBool("runner.full_input")
		r.trace = cfg.GetBool("runner.trace")
	}
}

func NewParseRunner(root Matcher, opts ...Option) *ParseRunner {
	r := &ParseRunner{
		root:    root,
		log:     hclog.NewNullLogger(),
		handler: basicMatchHandler{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.trace {
		r.listeners = append(r.listeners, NewTracingListener(r.log))
	}
	if r.fullInput && root != nil {
		r.root = mustFullInput(root)
	}
	return r
}

func mustFullInput(root Matcher) Matcher {
	seq, err := NewSequenceMatcher(root, NewEOIMatcher())
	if err != nil {
		panic(err)
	}
	labeled, err := WithLabel(seq, root.Label())
	if err != nil {
		panic(err)
	}
	return labeled
}

func (r *ParseRunner) Root() Matcher { return r.root }

// Run matches the root rule against `input`.  An error is returned
// only for faults of the grammar itself; an input that doesn't match
// is reported through the result.
func (r *ParseRunner) Run(input string) (*ParsingResult, error) {
	return r.RunBuffer(NewInputBuffer(input))
}

func (r *ParseRunner) RunBuffer(input *InputBuffer) (result *ParsingResult, err error) {
	if r.root == nil {
		return nil, invalidRule("", "runner has no root rule")
	}
	run := &parseRun{
		input:     input,
		stack:     NewValueStack(),
		handler:   r.handler,
		buildTree: r.buildTree,
	}
	if len(r.listeners) > 0 {
		run.handler = &listeningHandler{inner: r.handler, listeners: r.listeners}
	}
	ctx := newRootContext(run, r.root)

	defer func() {
		if rec := recover(); rec != nil {
			gerr, ok := rec.(*GrammarError)
			if !ok {
				panic(rec)
			}
			r.log.Error("parse aborted", "rule", gerr.Rule, "error", gerr.Message)
			result, err = nil, gerr
		}
	}()

	r.log.Debug("parse started", "root", r.root.Label(), "length", input.Len())
	for _, l := range r.listeners {
		l.BeforeParse(ctx)
	}

	matched := ctx.RunMatcher()
	result = &ParsingResult{
		Matched:    matched,
		ValueStack: run.stack,
		Errors:     run.errors,
		Input:      input,
		End:        ctx.CurrentIndex(),
	}
	if matched {
		result.Tree = ctx.Node()
	} else {
		result.End = 0
	}
	for _, perr := range run.errors {
		r.log.Warn("action failed", "path", perr.Path, "position", perr.Position.String(), "error", perr.Message)
	}
	r.log.Debug("parse finished", "matched", matched, "end", result.End, "errors", len(run.errors))

	for _, l := range r.listeners {
		l.AfterParse(result)
	}
	return result, nil
}

// IsGrammarError tells whether `err` is a fault of the grammar,
// either found while building it or while running it
func IsGrammarError(err error) bool {
	var gerr *GrammarError
	return errors.As(err, &gerr)
}
