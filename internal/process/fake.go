package process

import (
	"context"
	"sync"
)

// Recording is a Runner that records commands instead of executing them.
// Responses are looked up by command name; a missing entry returns "" and nil.
type Recording struct {
	mu        sync.Mutex
	Commands  []Command
	Responses map[string]func(Command) (string, error)
}

// NewRecording creates an empty recording runner.
func NewRecording() *Recording {
	return &Recording{Responses: map[string]func(Command) (string, error){}}
}

// On registers a response for commands named name.
func (r *Recording) On(name string, fn func(Command) (string, error)) *Recording {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Responses[name] = fn
	return r
}

func (r *Recording) Run(_ context.Context, cmd Command) (string, error) {
	r.mu.Lock()
	r.Commands = append(r.Commands, cmd)
	fn := r.Responses[cmd.Name]
	r.mu.Unlock()
	if fn == nil {
		return "", nil
	}
	return fn(cmd)
}

// Names returns the names of recorded commands in call order.
func (r *Recording) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		out[i] = c.Name
	}
	return out
}
