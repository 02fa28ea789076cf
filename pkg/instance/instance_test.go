package instance

import "testing"

func TestIDPrefersDyno(t *testing.T) {
	t.Setenv("DYNO", "web.1")
	t.Setenv("INSTANCE_ID", "box-7")
	if got := ID(); got != "web.1" {
		t.Fatalf("expected web.1, got %q", got)
	}
}

func TestIDFallsBack(t *testing.T) {
	t.Setenv("DYNO", "")
	t.Setenv("INSTANCE_ID", "")
	if got := ID(); got != "local" {
		t.Fatalf("expected local, got %q", got)
	}
	t.Setenv("INSTANCE_ID", "box-7")
	if got := ID(); got != "box-7" {
		t.Fatalf("expected box-7, got %q", got)
	}
}
