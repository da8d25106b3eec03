package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v1.2.3", "4f9c2e1d0b8a"
	if got, want := Short(), "v1.2.3 (4f9c2e1)"; got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}

	Commit = "none"
	if got, want := Short(), "v1.2.3 (none)"; got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version ") {
		t.Errorf("Template() = %q, want cobra name placeholder prefix", got)
	}
	if got := String(); !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("String() = %q, missing commit", got)
	}
}
