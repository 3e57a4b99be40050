package rp

import (
	"context"
	"errors"
	"sync"
)

// ErrCodePARFailed is the code every failed attempt is rejected with.
const ErrCodePARFailed = "ERR_PAR_FAILED"

// ErrFlowClosed is returned by [Flow.Next] and passed to [Call.Reject]
// by [Flow.Start] once the flow is closed.
var ErrFlowClosed = errors.New("rp: flow closed")

// Authorizer continues the authorization after the pushed authorization request,
// typically by sending the user agent to [AuthURL].
type Authorizer interface {
	StartAuthorization(ctx context.Context, opts *OAuth2Options)
}

// Call receives the failure of an attempt.
// An empty message means no message is available.
type Call interface {
	Reject(code, message string)
}

// AuthorizerFunc is an adapter to use a function as [Authorizer].
type AuthorizerFunc func(ctx context.Context, opts *OAuth2Options)

func (f AuthorizerFunc) StartAuthorization(ctx context.Context, opts *OAuth2Options) {
	f(ctx, opts)
}

// CallFunc is an adapter to use a function as [Call].
type CallFunc func(code, message string)

func (f CallFunc) Reject(code, message string) {
	f(code, message)
}

// Complete hands the result of an attempt to its collaborators.
// On success, result.RequestURI is stored in opts.ParRequestURI before
// authorization starts. A skipped result starts authorization without request_uri.
// Failures and nil results reject call with [ErrCodePARFailed].
func Complete(ctx context.Context, authorizer Authorizer, call Call, opts *OAuth2Options, result *ParRequestResult) {
	switch {
	case result == nil:
		call.Reject(ErrCodePARFailed, "")
	case result.Error:
		call.Reject(ErrCodePARFailed, result.ErrorMessage)
	default:
		if opts != nil {
			opts.ParRequestURI = result.RequestURI
		}
		authorizer.StartAuthorization(ctx, opts)
	}
}

type completion struct {
	ctx    context.Context
	call   Call
	opts   *OAuth2Options
	result *ParRequestResult
}

// Flow runs pushed authorization requests in the background
// and completes them on a single consumer goroutine, the one calling [Flow.Run].
// Options passed to [Flow.Start] are therefore only modified on that goroutine.
type Flow struct {
	requester   *Requester
	authorizer  Authorizer
	completions chan completion

	mu      sync.Mutex
	closed  bool
	done    chan struct{}
	workers sync.WaitGroup
}

func NewFlow(requester *Requester, authorizer Authorizer) *Flow {
	return &Flow{
		requester:   requester,
		authorizer:  authorizer,
		completions: make(chan completion),
		done:        make(chan struct{}),
	}
}

// Start runs the pushed authorization request of opts in a new goroutine.
// opts is copied before Start returns.
// The attempt is completed exactly once, by the goroutine running [Flow.Run] or [Flow.Next];
// until then the worker waits, or until the flow is closed.
// On a closed flow call is rejected right away.
func (f *Flow) Start(ctx context.Context, call Call, opts *OAuth2Options) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		call.Reject(ErrCodePARFailed, ErrFlowClosed.Error())
		return
	}
	f.workers.Add(1)
	f.mu.Unlock()

	snapshot := opts.snapshot()
	go func() {
		defer f.workers.Done()
		c := completion{
			ctx:    ctx,
			call:   call,
			opts:   opts,
			result: f.requester.performRecovered(ctx, snapshot),
		}
		select {
		case f.completions <- c:
		case <-f.done:
		}
	}()
}

// Next completes one attempt. It returns ctx.Err() if ctx is done first,
// or [ErrFlowClosed] once the flow is closed.
func (f *Flow) Next(ctx context.Context) error {
	select {
	case c := <-f.completions:
		Complete(c.ctx, f.authorizer, c.call, c.opts, c.result)
		return nil
	case <-f.done:
		return ErrFlowClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run completes attempts until ctx is done or the flow is closed.
// Attempts still pending when Run returns wait for the next consumer;
// call [Flow.Close] to discard them.
func (f *Flow) Run(ctx context.Context) error {
	for {
		if err := f.Next(ctx); err != nil {
			return err
		}
	}
}

// Close discards the attempts not completed yet and waits for their workers to return.
// Their collaborators are not called.
func (f *Flow) Close() {
	f.mu.Lock()
	if !f.closed {
		f.closed = true
		close(f.done)
	}
	f.mu.Unlock()
	f.workers.Wait()
}
