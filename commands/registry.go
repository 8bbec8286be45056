package commands

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/grafana/cmdjen"
)

// Order controls the order of command blocks in the rendered descriptor.
type Order int

const (
	// OrderInsertion renders commands in the order their names were first
	// recorded. Overwriting a command keeps its original position.
	OrderInsertion Order = iota

	// OrderName renders commands sorted by name.
	OrderName
)

func (o Order) String() string {
	switch o {
	case OrderInsertion:
		return "insertion"
	case OrderName:
		return "name"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder parses "insertion" or "name". The empty string is insertion.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "insertion":
		return OrderInsertion, nil
	case "name":
		return OrderName, nil
	default:
		return 0, fmt.Errorf("unknown order %q, expected insertion or name", s)
	}
}

// Option configures a Registry.
type Option func(*Registry)

// WithOrder sets the order of rendered command blocks.
func WithOrder(o Order) Option {
	return func(r *Registry) {
		r.order = o
	}
}

// WithQuoting sets the quoting used by Render and WriteTo.
func WithQuoting(q Quoting) Option {
	return func(r *Registry) {
		r.quoting = q
	}
}

// Registry collects commands for one generation run, keyed by name. Recording
// a command whose name is already present replaces the earlier one.
//
// A Registry is safe for concurrent use. Create one per run; it holds no
// state beyond the commands recorded into it.
type Registry struct {
	mu      sync.Mutex
	order   Order
	quoting Quoting
	decls   *orderedmap.OrderedMap[string, Declaration]
}

var _ Sink = (*Registry)(nil)

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		decls: orderedmap.New[string, Declaration](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record adds cmd, replacing any command previously recorded under the same
// name.
func (r *Registry) Record(cmd Command) {
	r.Deliver(Declaration{Command: cmd})
}

// Deliver implements [Sink]. It behaves like Record, and also keeps the
// declaration's owner and position.
func (r *Registry) Deliver(d Declaration) {
	d.Command.Aliases = slices.Clone(d.Command.Aliases)
	r.mu.Lock()
	r.decls.Set(d.Command.Name, d)
	r.mu.Unlock()
}

// Lookup returns the declaration currently recorded under name.
func (r *Registry) Lookup(name string) (Declaration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.decls.Get(name)
	if ok {
		d.Command.Aliases = slices.Clone(d.Command.Aliases)
	}
	return d, ok
}

// IsEmpty reports whether no commands have been recorded.
func (r *Registry) IsEmpty() bool {
	return r.Len() == 0
}

// Len returns the number of distinct command names recorded.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decls.Len()
}

// Declarations returns a snapshot of the recorded declarations in render
// order.
func (r *Registry) Declarations() []Declaration {
	r.mu.Lock()
	out := make([]Declaration, 0, r.decls.Len())
	for pair := r.decls.Oldest(); pair != nil; pair = pair.Next() {
		d := pair.Value
		d.Command.Aliases = slices.Clone(d.Command.Aliases)
		out = append(out, d)
	}
	r.mu.Unlock()

	if r.order == OrderName {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Command.Name < out[j].Command.Name
		})
	}
	return out
}

// Commands returns a snapshot of the recorded commands in render order.
func (r *Registry) Commands() []Command {
	decls := r.Declarations()
	out := make([]Command, len(decls))
	for i, d := range decls {
		out[i] = d.Command
	}
	return out
}

// Render returns the descriptor for all recorded commands. An empty Registry
// renders only the header; callers that must not produce an empty descriptor
// check IsEmpty first.
func (r *Registry) Render() []byte {
	return Render(r.Commands(), r.quoting)
}

// WriteTo writes the rendered descriptor to w. A failed write is returned as
// a *cmdjen.IOError; bytes written before the failure are not undone.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Render())
	if err != nil {
		return int64(n), &cmdjen.IOError{Op: "write", Path: DefaultFileName, Err: err}
	}
	return int64(n), nil
}
