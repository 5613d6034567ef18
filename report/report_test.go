package report

import "testing"

func TestDisplayValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "—"},
		{"  ", "—"},
		{"night", "Night"},
		{"NIGHT", "Night"},
		{`"day"`, "Day"},
		{"«ночь»", "Ночь"},
		{"“quoted”", "Quoted"},
	}
	for _, c := range cases {
		if got := displayValue(c.in); got != c.want {
			t.Errorf("displayValue(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestShortName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ivanov Ivan Ivanovich", "Ivanov Ivan"},
		{"Cher", "Cher"},
		{"", ""},
	}
	for _, c := range cases {
		if got := shortName(c.in); got != c.want {
			t.Errorf("shortName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestWithHandle(t *testing.T) {
	if got := withHandle("Ivanov Ivan", "ivan"); got != "Ivanov Ivan (@ivan)" {
		t.Errorf("withHandle = %q", got)
	}
	if got := withHandle("Ivanov Ivan", "@ivan"); got != "Ivanov Ivan (@ivan)" {
		t.Errorf("withHandle with @ = %q", got)
	}
	if got := withHandle("Ivanov Ivan", ""); got != "Ivanov Ivan" {
		t.Errorf("withHandle without handle = %q", got)
	}
}
