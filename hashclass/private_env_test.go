package hashclass

import "testing"

func TestNewPrivateNameIsUnique(t *testing.T) {
	a := NewPrivateName("#x")
	b := NewPrivateName("#x")
	if a == b {
		t.Fatalf("expected distinct tokens")
	}
	if a.Description() != b.Description() {
		t.Fatalf("descriptions should match: %q vs %q", a.Description(), b.Description())
	}
	if a.String() == b.String() {
		t.Fatalf("expected distinct diagnostics, both %q", a.String())
	}
	if a.Kind() != PrivateUnset {
		t.Fatalf("expected unset kind, got %s", a.Kind())
	}
}

func TestResolvePrivateIdentifier(t *testing.T) {
	outer := NewPrivateEnvironment(nil)
	outer.Declare("#shared")
	inner := NewPrivateEnvironment(outer)
	inner.Declare("#own")

	if pn, ok := inner.Lookup("#own"); !ok || pn != nil {
		t.Fatalf("expected declared but uninitialized binding, got %v %v", pn, ok)
	}

	first, err := ResolvePrivateIdentifier(inner, "#own")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := ResolvePrivateIdentifier(inner, "#own")
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first != second {
		t.Fatalf("expected the initialized binding to be reused")
	}

	fromInner, err := ResolvePrivateIdentifier(inner, "#shared")
	if err != nil {
		t.Fatalf("resolve outer: %v", err)
	}
	fromOuter, _ := outer.Lookup("#shared")
	if fromInner != fromOuter {
		t.Fatalf("expected outer binding to be initialized in place")
	}
}

func TestResolvePrivateIdentifierShadowing(t *testing.T) {
	outer := NewPrivateEnvironment(nil)
	outer.Declare("#x")
	inner := NewPrivateEnvironment(outer)
	inner.Declare("#x")

	innerName, _ := ResolvePrivateIdentifier(inner, "#x")
	outerName, _ := ResolvePrivateIdentifier(outer, "#x")
	if innerName == outerName {
		t.Fatalf("inner declaration should shadow the outer one")
	}
}

func TestResolvePrivateIdentifierMissing(t *testing.T) {
	env := NewPrivateEnvironment(nil)
	_, err := ResolvePrivateIdentifier(env, "#nope")
	requireErrorType(t, err, "InternalError", "unresolvable private name #nope")

	_, err = ResolvePrivateIdentifier(nil, "#nope")
	requireErrorType(t, err, "InternalError", "#nope")
}

func TestCollectPrivateBoundIdentifiers(t *testing.T) {
	cls := &ClassLiteral{Elements: []*ClassElement{
		{Kind: ElementSetter, Key: "#v", Private: true},
		{Kind: ElementField, Key: "#a", Private: true},
		{Kind: ElementGetter, Key: "#v", Private: true},
		{Kind: ElementMethod, Key: "public"},
	}}
	names, errs := CollectPrivateBoundIdentifiers(cls, "")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(names) != 2 || names[0] != "#v" || names[1] != "#a" {
		t.Fatalf("unexpected names: %v", names)
	}
}
