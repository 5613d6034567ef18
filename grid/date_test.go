package grid

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"iso timestamp keeps date part", "2024-09-05T10:00:00", "2024-09-05"},
		{"plain date unchanged", "2024-09-05", "2024-09-05"},
		{"short text unchanged", "sep", "sep"},
		{"serial number", float64(45539), "2024-09-04"},
		{"serial int", 45540, "2024-09-05"},
		{"native date", time.Date(2024, 9, 5, 18, 30, 0, 0, time.UTC), "2024-09-05"},
		{"nil is sentinel", nil, NoDate},
		{"empty string is sentinel", "", NoDate},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NormalizeDate(c.in); got != c.want {
				t.Fatalf("NormalizeDate(%v) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	good := []string{"2024-09-05", "1999-01-31", "2030-12-01"}
	bad := []string{"2024-9-5", "05.09.2024", "2024-09-05T10:00:00", "tomorrow", ""}

	for _, s := range good {
		if !ValidDate(s) {
			t.Errorf("ValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range bad {
		if ValidDate(s) {
			t.Errorf("ValidDate(%q) = true, want false", s)
		}
	}
}

func TestTomorrow(t *testing.T) {
	now := time.Date(2024, 9, 4, 23, 50, 0, 0, time.UTC)
	if got := Tomorrow(now); got != "2024-09-05" {
		t.Fatalf("Tomorrow = %q, want 2024-09-05", got)
	}
}
