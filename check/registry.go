package check

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

var ErrUnknownCheck = errors.New("unknown check")

// Properties are the configured settings of a check. Keys match without
// regard to case, since configuration loaders may fold them.
type Properties map[string]any

func (p Properties) lookup(key string) (any, bool) {
	if v, ok := p[key]; ok {
		return v, true
	}
	for k, v := range p {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether key is set.
func (p Properties) Has(key string) bool {
	_, ok := p.lookup(key)
	return ok
}

func (p Properties) String(key, def string) (string, error) {
	v, ok := p.lookup(key)
	if !ok {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("property %s: %w", key, err)
	}
	return s, nil
}

func (p Properties) Bool(key string, def bool) (bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return def, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, fmt.Errorf("property %s: %w", key, err)
	}
	return b, nil
}

func (p Properties) Int(key string, def int) (int, error) {
	v, ok := p.lookup(key)
	if !ok {
		return def, nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("property %s: %w", key, err)
	}
	return i, nil
}

// Strings reads a list property. A single string is split at commas.
func (p Properties) Strings(key string, def []string) ([]string, error) {
	v, ok := p.lookup(key)
	if !ok {
		return def, nil
	}
	if s, isString := v.(string); isString {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	ss, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", key, err)
	}
	return ss, nil
}

// Pattern reads a regular expression property.
func (p Properties) Pattern(key, def string) (*regexp.Regexp, error) {
	s, err := p.String(key, def)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("property %s: %w", key, err)
	}
	return re, nil
}

// Constructor creates a check from its properties.
type Constructor func(props Properties) (Check, error)

// Registry maps check names to constructors.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Register adds a constructor. Registering a name twice replaces the
// earlier constructor.
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = ctor
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}

// New creates a fresh instance of the named check.
func (r *Registry) New(name string, props Properties) (Check, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, name)
	}
	c, err := ctor(props)
	if err != nil {
		return nil, fmt.Errorf("configuring %s: %w", name, err)
	}
	return c, nil
}
