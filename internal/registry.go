package internal

import (
	"fmt"
	"strings"
	"sync"
)

// Reserved action names with dispatch-level meaning.
const (
	actionBegin   = "begin"
	actionAuto    = "auto"
	actionEnd     = "end"
	actionDefault = "default"

	// privateSentinel prefixes paths and action names that must never be
	// reachable through public path resolution.
	privateSentinel = "_"

	// defaultPathKey is the exact-path table entry consulted when no
	// registration matches a public path.
	defaultPathKey = privateSentinel + actionDefault
)

// Registry owns the dispatch tables: one table per dispatch type, the
// private lifecycle actions per namespace, and the reverse-path index used
// for re-dispatch. It is populated during application assembly and
// read-mostly afterwards; hot re-registration takes the write lock while
// in-flight resolutions hold read locks.
type Registry struct {
	mu        sync.RWMutex
	path      *pathMatcher
	regex     *regexMatcher
	class     *classMatcher
	types     []DispatchType // consulted in priority order
	private   map[string]map[string]*ActionRecord
	byReverse map[string]*ActionRecord
	behaviors map[string]Behavior
	extraTags map[string][]string // reverse path -> tags merged at registration
}

// NewRegistry creates an empty registry. Behaviors are the hooks Action(...)
// attribute tags may reference; extraTags augment per-action attribute tags
// from a declarative dispatch table.
func NewRegistry(behaviors map[string]Behavior, extraTags map[string][]string) *Registry {
	r := &Registry{
		path:      newPathMatcher(),
		regex:     newRegexMatcher(),
		class:     newClassMatcher(),
		private:   make(map[string]map[string]*ActionRecord),
		byReverse: make(map[string]*ActionRecord),
		behaviors: behaviors,
		extraTags: extraTags,
	}
	r.types = []DispatchType{r.path, r.regex, r.class}
	return r
}

// RegisterController registers every action the controller declares.
// Any configuration error is startup-fatal and returned immediately.
func (r *Registry) RegisterController(ctrl Controller) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg := &registrar{registry: r, namespace: normalizePath(ctrl.Namespace())}
	ctrl.Actions(reg)
	return reg.err
}

// registrar collects registrations from one controller. The first
// configuration error wins; later registrations are still parsed so
// diagnostics stay complete, but the error aborts assembly.
type registrar struct {
	registry  *Registry
	namespace string
	err       error
}

func (g *registrar) Action(name string, fn ActionFunc, tags ...string) {
	if err := g.registry.register(g.namespace, name, fn, tags); err != nil && g.err == nil {
		g.err = err
	}
}

// register is the single registration path; callers hold the write lock.
func (r *Registry) register(namespace, name string, fn ActionFunc, tags []string) error {
	reverse := joinPath(namespace, name)
	if extra := r.extraTags[reverse]; len(extra) > 0 {
		tags = append(append([]string{}, tags...), extra...)
	}

	attrs, err := parseTags(tags, name, namespace)
	if err != nil {
		return err
	}

	behaviors, err := r.resolveBehaviors(reverse, attrs)
	if err != nil {
		return err
	}

	rec := newActionRecord(name, namespace, attrs, fn, behaviors)
	r.byReverse[reverse] = rec

	switch name {
	case actionBegin, actionAuto, actionEnd:
		ns := r.private[namespace]
		if ns == nil {
			ns = make(map[string]*ActionRecord)
			r.private[namespace] = ns
		}
		ns[name] = rec
		return nil
	case actionDefault:
		r.path.paths[defaultPathKey] = rec
		return nil
	}

	for _, dt := range r.types {
		if _, err := dt.Register(rec); err != nil {
			return err
		}
	}
	return nil
}

// resolveBehaviors maps Action(...) tags to configured behaviors in
// declaration order. An unknown tag is a configuration error, the
// equivalent of referencing an unloadable hook class.
func (r *Registry) resolveBehaviors(reverse string, attrs Attributes) ([]Behavior, error) {
	tags := attrs.Values(attrAction)
	if len(tags) == 0 {
		return nil, nil
	}
	behaviors := make([]Behavior, 0, len(tags))
	for _, tag := range tags {
		b, ok := r.behaviors[tag]
		if !ok {
			return nil, &ConfigError{
				Err:    fmt.Errorf("unknown behavior %q", tag),
				Action: reverse,
				Tag:    tag,
			}
		}
		behaviors = append(behaviors, b)
	}
	return behaviors, nil
}

// ByReversePath returns the action registered under the given canonical
// "namespace/name" identity, nil if absent. Used for re-dispatch.
func (r *Registry) ByReversePath(reverse string) *ActionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byReverse[normalizePath(reverse)]
}

// Tagged returns the actions carrying the given Action(...) behavior tag.
func (r *Registry) Tagged(tag string) []*ActionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.class.Tagged(tag)
}

// privateAction returns the most specific override of a private lifecycle
// action for the namespace, walking leaf to root.
func (r *Registry) privateAction(namespace, name string) *ActionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := namespaceChain(namespace)
	for i := len(chain) - 1; i >= 0; i-- {
		if rec := r.private[chain[i]][name]; rec != nil {
			return rec
		}
	}
	return nil
}

// autoChain returns every auto action along the namespace chain, root first.
func (r *Registry) autoChain(namespace string) []*ActionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*ActionRecord
	for _, ns := range namespaceChain(namespace) {
		if rec := r.private[ns][actionAuto]; rec != nil {
			records = append(records, rec)
		}
	}
	return records
}

// namespaceChain expands "a/b/c" into ["", "a", "a/b", "a/b/c"].
func namespaceChain(namespace string) []string {
	chain := []string{""}
	if namespace == "" {
		return chain
	}
	for i := 0; i <= len(namespace); i++ {
		if i == len(namespace) {
			chain = append(chain, namespace)
		} else if namespace[i] == '/' {
			chain = append(chain, namespace[:i])
		}
	}
	return chain
}

// TypeTable is one dispatch type's diagnostic listing.
type TypeTable struct {
	Type    string
	Entries []Entry
}

// Tables returns every dispatch type's registered entries, each sorted by
// key for reproducible snapshots.
func (r *Registry) Tables() []TypeTable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make([]TypeTable, 0, len(r.types))
	for _, dt := range r.types {
		tables = append(tables, TypeTable{Type: dt.Name(), Entries: dt.Entries()})
	}
	return tables
}

// DebugString renders the dispatch tables as a deterministic multi-line
// listing for startup diagnostics.
func (r *Registry) DebugString() string {
	var b strings.Builder
	for _, table := range r.Tables() {
		fmt.Fprintf(&b, "[%s]\n", table.Type)
		for _, e := range table.Entries {
			fmt.Fprintf(&b, "  %s -> %s\n", e.Key, e.Value)
		}
	}
	return b.String()
}
