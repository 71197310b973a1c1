package call

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/callkit/httpclient"
	"github.com/kbukum/callkit/provider"
)

// Binding translates operations into concrete HTTP requests for one
// provider. Bindings hold no state beyond their operation table; all
// per-process state (credentials, timeouts) lives in provider.Config.
type Binding interface {
	// Provider returns the provider name this binding serves.
	Provider() string

	// Operations returns the operation descriptors this binding supports.
	Operations() []Operation

	// BuildRequest maps a validated invocation onto the provider's
	// concrete HTTP shape (method, path, headers, auth, body).
	BuildRequest(cfg *provider.Config, op Operation, in Inputs) (httpclient.Request, error)

	// ParseResponse maps the provider's raw response body onto the
	// structured payload placed in Result.Data.
	ParseResponse(op Operation, resp *httpclient.Response) (any, error)
}

// --- Binding registry ---

var (
	bindingsMu sync.RWMutex
	bindings   = map[string]Binding{}
)

// Register adds a binding to the global registry. Typically called from
// init() in provider binding packages:
//
//	func init() { call.Register(&Binding{}) }
//
// so that importing the package wires the provider:
//
//	import _ "github.com/kbukum/callkit/providers/shopify"
//
// Register panics on an invalid operation descriptor: a bad descriptor
// is a bug in the binding itself, not an external condition.
func Register(b Binding) {
	for _, op := range b.Operations() {
		if err := op.validateDescriptor(); err != nil {
			panic(fmt.Sprintf("call: binding %q: %v", b.Provider(), err))
		}
	}
	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	bindings[b.Provider()] = b
}

// LookupBinding retrieves a binding by provider name.
func LookupBinding(name string) (Binding, error) {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	b, ok := bindings[name]
	if !ok {
		return nil, fmt.Errorf("call: no binding for provider %q (forgot to import it?)", name)
	}
	return b, nil
}

// Bindings returns the sorted names of all registered bindings.
func Bindings() []string {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// findOperation looks up an operation descriptor on a binding.
func findOperation(b Binding, name string) (Operation, bool) {
	for _, op := range b.Operations() {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}
