package gate

import (
	"context"
	"sync"
)

// Kind identifies the capability a Request belongs to.
type Kind int

// The available kinds.
const (
	KindPermission Kind = iota
	KindLocation
	KindBluetooth
)

func (k Kind) String() string {
	switch k {
	case KindPermission:
		return "permission"
	case KindLocation:
		return "location"
	case KindBluetooth:
		return "bluetooth"
	default:
		return "unknown"
	}
}

// Request represents a pending capability request. It completes once the
// platform handed back control, at which point the capability is checked
// again.
type Request struct {
	kind   Kind
	check  func() bool
	result bool
	done   chan struct{}
	once   sync.Once
}

func newRequest(kind Kind, check func() bool) *Request {
	return &Request{
		kind:  kind,
		check: check,
		done:  make(chan struct{}),
	}
}

func completed(kind Kind) *Request {
	// prepare request
	req := newRequest(kind, func() bool {
		return true
	})

	// complete request
	req.complete()

	return req
}

func (r *Request) complete() {
	r.once.Do(func() {
		r.result = r.check()
		close(r.done)
	})
}

// Kind returns the requested capability.
func (r *Request) Kind() Kind {
	return r.kind
}

// Done returns a channel that is closed when the request completed.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Result returns whether the capability was available after completion. It
// returns false while the request is pending.
func (r *Request) Result() bool {
	select {
	case <-r.done:
		return r.result
	default:
		return false
	}
}

// Wait waits until the request completed or the context is cancelled.
func (r *Request) Wait(ctx context.Context) (bool, error) {
	select {
	case <-r.done:
		return r.result, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
