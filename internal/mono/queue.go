package mono

import (
	"fmt"

	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/types"
)

// Kind distinguishes what a generic declaration specializes into.
type Kind int

const (
	KindFunction Kind = iota
	KindStruct
	KindUnion
)

// InstantiationRequest is one pending specialization: the generic
// symbol, the concrete type arguments it was requested with, and the
// call/use site that triggered it (for diagnostics).
type InstantiationRequest struct {
	Kind     Kind
	Generic  *scope.Symbol
	Args     []types.Type
	CallSite ast.Node
	Result   *scope.Symbol // placeholder, populated before body analysis
}

// Coordinator owns the specialization cache and the FIFO instantiation
// queue. Requesting the same key twice always returns the same
// specialized symbol; the cache is populated with a placeholder before
// the specialized body is ever analyzed, so mutually recursive generics
// terminate instead of looping.
type Coordinator struct {
	cache map[string]*scope.Symbol
	queue []InstantiationRequest
}

func NewCoordinator() *Coordinator {
	return &Coordinator{cache: make(map[string]*scope.Symbol)}
}

// Request returns the existing specialization for key if one is
// cached. Otherwise it synthesizes a placeholder symbol with a mangled
// name, caches it immediately, enqueues an InstantiationRequest for the
// driver to process, and returns the placeholder. The bool result
// reports whether this call created a new entry (false = cache hit).
func (c *Coordinator) Request(kind Kind, module string, generic *scope.Symbol, args []types.Type, callSite ast.Node) (*scope.Symbol, bool) {
	key := SpecializationKey{Generic: generic, Args: args}
	h := key.hash()
	if existing, ok := c.cache[h]; ok {
		return existing, false
	}

	name := Mangle(module, generic.Name, kindName(kind), args)
	placeholder := &scope.Symbol{
		Name:      name,
		SymKind:   generic.SymKind,
		IsGeneric: false,
	}
	c.cache[h] = placeholder
	c.queue = append(c.queue, InstantiationRequest{
		Kind: kind, Generic: generic, Args: args, CallSite: callSite, Result: placeholder,
	})
	return placeholder, true
}

func kindName(k Kind) string {
	switch k {
	case KindFunction:
		return "fn"
	case KindStruct:
		return "st"
	case KindUnion:
		return "un"
	default:
		return "?"
	}
}

// Pending reports how many requests are still queued.
func (c *Coordinator) Pending() int { return len(c.queue) }

// Specializations returns every specialized symbol produced so far, so
// a backend can walk the full instantiation cache (spec.md section 6.5).
// Order is unspecified; callers that need determinism should sort by
// Symbol.Name (mangled names are already unique).
func (c *Coordinator) Specializations() []*scope.Symbol {
	out := make([]*scope.Symbol, 0, len(c.cache))
	for _, sym := range c.cache {
		out = append(out, sym)
	}
	return out
}

// Drain processes the queue to a fixed point, calling process for each
// request in FIFO insertion order; process may itself enqueue further
// requests via Coordinator (e.g. a specialized body calling another
// generic), which this loop picks up on a later iteration.
func (c *Coordinator) Drain(process func(req InstantiationRequest) error) error {
	for len(c.queue) > 0 {
		req := c.queue[0]
		c.queue = c.queue[1:]
		if err := process(req); err != nil {
			return fmt.Errorf("specializing %s: %w", req.Generic.Name, err)
		}
	}
	return nil
}
