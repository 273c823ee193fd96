// Package focus keeps the focus side table: which focus keys exist, the
// text typed into each, and which one is active.
//
// A Registry is process-lifetime state owned by one engine. It is not tied
// to any node of the component tree, so text typed into an input survives
// that input's subtree being rebuilt.
package focus

// Key is an opaque focus handle. The zero Key means no focus.
type Key uint32

// None is the zero Key.
const None Key = 0

// Registry holds focus keys in registration order. It is not safe for
// concurrent use; the engine owns it on its single loop.
type Registry struct {
	names  map[string]Key
	labels map[Key]string
	next   Key

	order  []Key
	known  map[Key]bool
	text   map[Key]string
	active Key
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		names:  make(map[string]Key),
		labels: make(map[Key]string),
		known:  make(map[Key]bool),
		text:   make(map[Key]string),
	}
}

// Intern returns the Key for name, creating it on first use. The same name
// always yields the same Key. Interning does not register the key.
func (r *Registry) Intern(name string) Key {
	if k, ok := r.names[name]; ok {
		return k
	}
	r.next++
	k := r.next
	r.names[name] = k
	r.labels[k] = name
	return k
}

// Name returns the name a Key was interned under.
func (r *Registry) Name(k Key) string {
	if k == None {
		return ""
	}
	return r.labels[k]
}

// Register adds k if it is new. Whenever nothing is active, k becomes
// active, whether or not it was already known. Reports whether k was added.
func (r *Registry) Register(k Key) bool {
	if k == None {
		return false
	}
	if r.active == None {
		r.active = k
	}
	if r.known[k] {
		return false
	}
	r.known[k] = true
	r.order = append(r.order, k)
	if _, ok := r.text[k]; !ok {
		r.text[k] = ""
	}
	return true
}

// Registered reports whether k has been registered.
func (r *Registry) Registered(k Key) bool {
	return r.known[k]
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []Key {
	out := make([]Key, len(r.order))
	copy(out, r.order)
	return out
}

// Active returns the active key, or None.
func (r *Registry) Active() Key {
	return r.active
}

// Activate makes k active. Reports false if k was already active.
func (r *Registry) Activate(k Key) bool {
	if r.active == k {
		return false
	}
	r.active = k
	return true
}

// Advance activates the key after the active one, wrapping to the first
// key. With nothing active the first key is chosen. Returns the new active
// key.
func (r *Registry) Advance() Key {
	if len(r.order) == 0 {
		return r.active
	}
	i := r.index(r.active)
	if i < 0 || i == len(r.order)-1 {
		r.active = r.order[0]
	} else {
		r.active = r.order[i+1]
	}
	return r.active
}

// Retreat activates the key before the active one, wrapping to the last
// key. With nothing active the last key is chosen.
func (r *Registry) Retreat() Key {
	if len(r.order) == 0 {
		return r.active
	}
	i := r.index(r.active)
	if i <= 0 {
		r.active = r.order[len(r.order)-1]
	} else {
		r.active = r.order[i-1]
	}
	return r.active
}

// Text returns the accumulated input of k.
func (r *Registry) Text(k Key) string {
	return r.text[k]
}

// SetText replaces the accumulated input of k.
func (r *Registry) SetText(k Key, s string) {
	if k == None {
		return
	}
	r.text[k] = s
}

func (r *Registry) index(k Key) int {
	if k == None {
		return -1
	}
	for i, o := range r.order {
		if o == k {
			return i
		}
	}
	return -1
}
