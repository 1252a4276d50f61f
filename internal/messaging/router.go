package messaging

import (
	"context"
	"fmt"
	"sync"
)

var knownActions = map[string]bool{
	ActionExtractText: true,
	ActionGeneratePDF: true,
}

// Router dispatches messages to listeners registered per action. It is the
// in-process end of the channel and is safe for concurrent use.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]HandlerFunc),
	}
}

// Handle registers h as the listener for action, replacing any previous one.
func (r *Router) Handle(action string, h HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[action] = h
}

// Send implements Sender.
func (r *Router) Send(ctx context.Context, msg Message) (Reply, error) {
	if !knownActions[msg.Action] {
		return Reply{}, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)
	}

	r.mu.RLock()
	h, ok := r.handlers[msg.Action]
	r.mu.RUnlock()
	if !ok {
		return Reply{}, ErrNoReceiver
	}

	return h(ctx, msg)
}
