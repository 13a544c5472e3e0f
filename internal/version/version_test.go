package version

import "testing"

func TestGet(t *testing.T) {
	got := Get()
	if got.Version != Version || got.Commit != Commit || got.Date != Date {
		t.Errorf("Get() = %+v", got)
	}
}

func TestString(t *testing.T) {
	if got, want := String(), "petfeed dev (commit unknown, built unknown)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
