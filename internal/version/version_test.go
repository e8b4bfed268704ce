package version

import "testing"

func TestString_Fallbacks(t *testing.T) {
	oldDate, oldCommit, oldBranch := BuildDate, BuildCommit, BuildBranch
	defer func() {
		BuildDate, BuildCommit, BuildBranch = oldDate, oldCommit, oldBranch
	}()

	BuildDate, BuildCommit, BuildBranch = "", "", ""
	got := String()
	want := "build dev commit[unknown] branch[unknown]"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	BuildDate, BuildCommit, BuildBranch = "2026-08-30", "abc123", "main"
	got = String()
	want = "build 2026-08-30 commit[abc123] branch[main]"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
