package pegmatch

import (
	"time"

	"github.com/hashicorp/go-hclog"
)

// Listener observes a parse run.  BeforeMatch is called before every
// matcher activation, followed by either MatchSuccess or
// MatchFailure.
type Listener interface {
	BeforeParse(ctx *MatcherContext)
	BeforeMatch(ctx *MatcherContext)
	MatchSuccess(ctx *MatcherContext)
	MatchFailure(ctx *MatcherContext)
	AfterParse(result *ParsingResult)
}

// BaseListener ignores every notification.  Embed it to implement
// only the methods needed.
type BaseListener struct{}

func (BaseListener) BeforeParse(*MatcherContext)  {}
func (BaseListener) BeforeMatch(*MatcherContext)  {}
func (BaseListener) MatchSuccess(*MatcherContext) {}
func (BaseListener) MatchFailure(*MatcherContext) {}
func (BaseListener) AfterParse(*ParsingResult)    {}

// listeningHandler notifies listeners around the activations run by
// the inner handler
type listeningHandler struct {
	inner     MatchHandler
	listeners []Listener
}

func (h *listeningHandler) Match(ctx *MatcherContext) bool {
	for _, l := range h.listeners {
		l.BeforeMatch(ctx)
	}
	matched := h.inner.Match(ctx)
	for _, l := range h.listeners {
		if matched {
			l.MatchSuccess(ctx)
		} else {
			l.MatchFailure(ctx)
		}
	}
	return matched
}

// TracingListener logs every activation at trace level
type TracingListener struct {
	BaseListener
	log hclog.Logger
}

func NewTracingListener(log hclog.Logger) *TracingListener {
	return &TracingListener{log: log.Named("trace")}
}

func (l *TracingListener) BeforeMatch(ctx *MatcherContext) {
	l.log.Trace("match", "path", ctx.Path(), "index", ctx.CurrentIndex())
}

func (l *TracingListener) MatchSuccess(ctx *MatcherContext) {
	l.log.Trace("matched", "path", ctx.Path(), "range", NewRange(ctx.StartIndex(), ctx.CurrentIndex()).String())
}

func (l *TracingListener) MatchFailure(ctx *MatcherContext) {
	l.log.Trace("failed", "path", ctx.Path(), "index", ctx.StartIndex())
}

// RuleStats holds the counters ProfilingListener keeps per label
type RuleStats struct {
	Label       string
	Invocations int
	Matches     int
	Failures    int

	// Rematches counts successful activations at an index where
	// the same rule already matched during the run
	Rematches int
}

// ProfilingListener counts activations per matcher label, which is
// handy for spotting rules that backtrack too much
type ProfilingListener struct {
	BaseListener
	stats   map[string]*RuleStats
	seen    map[string]map[int]struct{}
	started time.Time
	elapsed time.Duration
}

func NewProfilingListener() *ProfilingListener {
	return &ProfilingListener{}
}

func (l *ProfilingListener) BeforeParse(*MatcherContext) {
	l.stats = map[string]*RuleStats{}
	l.seen = map[string]map[int]struct{}{}
	l.started = time.Now()
}

func (l *ProfilingListener) AfterParse(*ParsingResult) {
	l.elapsed = time.Since(l.started)
}

func (l *ProfilingListener) BeforeMatch(ctx *MatcherContext) {
	l.rule(ctx).Invocations++
}

func (l *ProfilingListener) MatchSuccess(ctx *MatcherContext) {
	stats := l.rule(ctx)
	stats.Matches++
	seen, ok := l.seen[stats.Label]
	if !ok {
		seen = map[int]struct{}{}
		l.seen[stats.Label] = seen
	}
	if _, ok := seen[ctx.StartIndex()]; ok {
		stats.Rematches++
	}
	seen[ctx.StartIndex()] = struct{}{}
}

func (l *ProfilingListener) MatchFailure(ctx *MatcherContext) {
	l.rule(ctx).Failures++
}

func (l *ProfilingListener) rule(ctx *MatcherContext) *RuleStats {
	label := ctx.Matcher().Label()
	stats, ok := l.stats[label]
	if !ok {
		stats = &RuleStats{Label: label}
		l.stats[label] = stats
	}
	return stats
}

// Stats returns the counters of the last run keyed by label
func (l *ProfilingListener) Stats() map[string]*RuleStats { return l.stats }

// Elapsed returns how long the last run took
func (l *ProfilingListener) Elapsed() time.Duration { return l.elapsed }
