package script

import (
	"errors"
	"testing"
)

func TestRegistryResolveByExtension(t *testing.T) {
	reg := NewRegistry()
	eng := &fakeEngine{}
	reg.Register(".bx", eng)

	got, err := reg.Resolve("/var/task/Lambda.bx")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != Engine(eng) {
		t.Error("Resolve returned a different engine than registered")
	}
}

func TestRegistryResolveCaseInsensitiveExtension(t *testing.T) {
	reg := NewRegistry()
	reg.Register("BX", &fakeEngine{})

	if _, err := reg.Resolve("/var/task/Lambda.bx"); err != nil {
		t.Errorf("Resolve: %v, want extension matched case-insensitively", err)
	}
}

func TestRegistryResolveUnregistered(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Resolve("/var/task/Lambda.bx")
	if err == nil {
		t.Fatal("expected error for unregistered extension")
	}
}

func TestRegistryExtensionsSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(".lua", &fakeEngine{})
	reg.Register(".bx", &fakeEngine{})

	exts := reg.Extensions()
	if len(exts) != 2 || exts[0] != ".bx" || exts[1] != ".lua" {
		t.Errorf("Extensions() = %v, want sorted [.bx .lua]", exts)
	}
}

func TestAbortErrorUnwrap(t *testing.T) {
	cause := errors.New("payment declined")
	err := error(&AbortError{Cause: cause})
	if !errors.Is(err, cause) {
		t.Error("AbortError must unwrap to its cause")
	}

	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Error("errors.As failed to recognize AbortError")
	}
}

func TestMethodNotFoundErrorMessage(t *testing.T) {
	err := &MethodNotFoundError{Method: "run", Script: "/var/task/Lambda.bx"}
	want := "script /var/task/Lambda.bx does not contain a `run` method"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
