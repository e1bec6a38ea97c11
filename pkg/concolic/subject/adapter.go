package subject

import "github.com/gitrdm/concolite/pkg/concolic"

// Adapter implements concolic.InvocationAdapter over one registered
// Subject, closing over its Args/Fn so the engine never needs to know
// how a subject's arguments were declared.
type Adapter struct {
	subject Subject
}

// NewAdapter wraps s for use by concolic.NewEngine.
func NewAdapter(s Subject) *Adapter {
	return &Adapter{subject: s}
}

// GetNames returns the subject's declared argument names, in
// declaration order.
func (a *Adapter) GetNames() []string {
	names := make([]string, len(a.subject.Args))
	for i, arg := range a.subject.Args {
		names[i] = arg.Name
	}
	return names
}

// CreateArgumentValue builds a fresh symbolic input Value for name,
// wired to rec so the recorder observes every branch this value (or
// anything derived from it) reaches. override replaces the subject's
// declared seed when non-nil.
func (a *Adapter) CreateArgumentValue(rec *concolic.Recorder, name string, override *int64) *concolic.Value {
	seed := int64(0)
	for _, arg := range a.subject.Args {
		if arg.Name == name {
			seed = arg.Seed
			break
		}
	}
	if override != nil {
		seed = *override
	}
	return concolic.NewVar(rec, name, seed)
}

// CallFunction invokes the wrapped subject directly.
func (a *Adapter) CallFunction(args map[string]*concolic.Value) interface{} {
	return a.subject.Fn(args)
}
