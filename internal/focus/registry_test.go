package focus

import "testing"

func TestRegistry_Intern(t *testing.T) {
	r := NewRegistry()

	a := r.Intern("a")
	b := r.Intern("b")
	if a == None || b == None {
		t.Fatal("Intern returned None")
	}
	if a == b {
		t.Errorf("Intern(a) == Intern(b) = %d", a)
	}
	if again := r.Intern("a"); again != a {
		t.Errorf("Intern(a) second call = %d, want %d", again, a)
	}
	if r.Name(b) != "b" {
		t.Errorf("Name(b) = %q, want %q", r.Name(b), "b")
	}
	if r.Registered(a) {
		t.Error("Intern should not register the key")
	}
}

func TestRegistry_FirstRegistrantWins(t *testing.T) {
	r := NewRegistry()
	a, b := r.Intern("a"), r.Intern("b")

	if !r.Register(a) {
		t.Fatal("Register(a) = false, want true")
	}
	r.Register(b)

	if r.Active() != a {
		t.Errorf("Active() = %d, want %d", r.Active(), a)
	}
	if r.Register(a) {
		t.Error("registering an existing key should report false")
	}
	if len(r.Keys()) != 2 {
		t.Errorf("len(Keys()) = %d, want 2", len(r.Keys()))
	}
}

func TestRegistry_Advance(t *testing.T) {
	r := NewRegistry()
	a, b, c := r.Intern("A"), r.Intern("B"), r.Intern("C")
	for _, k := range []Key{a, b, c} {
		r.Register(k)
	}
	r.Activate(None)

	steps := []struct {
		name string
		want Key
	}{
		{"no focus activates first", a},
		{"A advances to B", b},
		{"B advances to C", c},
		{"C wraps to A", a},
	}
	for _, s := range steps {
		if got := r.Advance(); got != s.want {
			t.Errorf("%s: Advance() = %s, want %s", s.name, r.Name(got), r.Name(s.want))
		}
	}
}

func TestRegistry_Retreat(t *testing.T) {
	r := NewRegistry()
	a, b := r.Intern("A"), r.Intern("B")
	r.Register(a)
	r.Register(b)

	if got := r.Retreat(); got != b {
		t.Errorf("Retreat from A = %s, want B", r.Name(got))
	}
	if got := r.Retreat(); got != a {
		t.Errorf("Retreat from B = %s, want A", r.Name(got))
	}

	r.Activate(None)
	if got := r.Retreat(); got != b {
		t.Errorf("Retreat with no focus = %s, want B", r.Name(got))
	}
}

func TestRegistry_AdvanceEmpty(t *testing.T) {
	r := NewRegistry()
	if got := r.Advance(); got != None {
		t.Errorf("Advance on empty registry = %d, want None", got)
	}
}

func TestRegistry_Activate(t *testing.T) {
	r := NewRegistry()
	a := r.Intern("a")
	r.Register(a)

	if r.Activate(a) {
		t.Error("Activate of the active key should report false")
	}
	b := r.Intern("b")
	if !r.Activate(b) {
		t.Error("Activate(b) = false, want true")
	}
}

func TestRegistry_Text(t *testing.T) {
	r := NewRegistry()
	k := r.Intern("k")
	r.Register(k)

	if r.Text(k) != "" {
		t.Errorf("initial Text = %q, want empty", r.Text(k))
	}
	r.SetText(k, "typed")
	if r.Text(k) != "typed" {
		t.Errorf("Text = %q, want %q", r.Text(k), "typed")
	}

	r.SetText(None, "ignored")
	if r.Text(None) != "" {
		t.Errorf("Text(None) = %q, want empty", r.Text(None))
	}
}

func TestRegistry_ReRegisterActivatesWhenNothingFocused(t *testing.T) {
	r := NewRegistry()
	a, b := r.Intern("a"), r.Intern("b")
	r.Register(a)
	r.Register(b)
	r.Activate(None)

	if r.Register(b) {
		t.Error("Register(b) again = true, want false")
	}
	if r.Active() != b {
		t.Errorf("Active() = %s, want b", r.Name(r.Active()))
	}

	r.Register(a)
	if r.Active() != b {
		t.Errorf("Register(a) with b active moved focus to %s", r.Name(r.Active()))
	}
	if len(r.Keys()) != 2 {
		t.Errorf("len(Keys()) = %d, want 2", len(r.Keys()))
	}
}
