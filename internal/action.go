package internal

// ActionRecord is the immutable descriptor of one registered action.
// Records are created during application assembly and never mutated
// afterwards; dispatch type tables hold shared read-only references.
type ActionRecord struct {
	name      string
	namespace string
	attrs     Attributes
	fn        ActionFunc
	wrapped   ActionFunc // fn with the behavior chain composed around it
	behaviors []Behavior
}

func newActionRecord(name, namespace string, attrs Attributes, fn ActionFunc, behaviors []Behavior) *ActionRecord {
	rec := &ActionRecord{
		name:      name,
		namespace: namespace,
		attrs:     attrs,
		fn:        fn,
		behaviors: behaviors,
	}
	// Compose the behavior chain once; the first declared behavior becomes
	// the outermost wrapper.
	wrapped := fn
	for i := len(behaviors) - 1; i >= 0; i-- {
		wrapped = behaviors[i].Wrap(wrapped)
	}
	rec.wrapped = wrapped
	return rec
}

// Name returns the action's identifier, unique within its controller.
func (a *ActionRecord) Name() string {
	return a.name
}

// Namespace returns the owning controller's slash-delimited prefix.
func (a *ActionRecord) Namespace() string {
	return a.namespace
}

// ReversePath returns the canonical "namespace/name" identity used for
// logging and re-dispatch.
func (a *ActionRecord) ReversePath() string {
	return joinPath(a.namespace, a.name)
}

// Describe returns the display name of the action.
func (a *ActionRecord) Describe() string {
	return a.ReversePath()
}

// Attributes returns the parsed attribute map. Callers must not mutate it.
func (a *ActionRecord) Attributes() Attributes {
	return a.attrs
}

// RequiredRoles returns the roles the permission gate must grant before
// the action executes, nil if unrestricted.
func (a *ActionRecord) RequiredRoles() []string {
	return a.attrs.Values(attrRoles)
}

// Execute runs the action with its behavior chain applied.
func (a *ActionRecord) Execute(c Context, args ...string) error {
	return a.wrapped(c, args...)
}
