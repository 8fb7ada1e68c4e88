package library

import "testing"

func TestEntryString(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{
			name:  "with year",
			entry: Entry{Artist: "Portishead", Album: "Dummy", Year: "1994"},
			want:  "Portishead - Dummy [1994]",
		},
		{
			name:  "without year",
			entry: Entry{Artist: "Portishead", Album: "Roseland NYC Live"},
			want:  "Portishead - Roseland NYC Live",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
	}{
		{
			name: "full triple",
			line: "Portishead - Dummy [1994]",
			want: Entry{Artist: "Portishead", Album: "Dummy", Year: "1994"},
		},
		{
			name: "no year falls back to first separator",
			line: "Portishead - Roseland NYC Live",
			want: Entry{Artist: "Portishead", Album: "Roseland NYC Live"},
		},
		{
			name: "separator inside album",
			line: "Sufjan Stevens - Illinois - Special 10th Anniversary Edition [2015]",
			want: Entry{Artist: "Sufjan Stevens", Album: "Illinois - Special 10th Anniversary Edition", Year: "2015"},
		},
		{
			name: "brackets without digits are album text",
			line: "Aphex Twin - Classics [remastered]",
			want: Entry{Artist: "Aphex Twin", Album: "Classics [remastered]"},
		},
		{
			name: "no separator is artist only",
			line: "Fugazi",
			want: Entry{Artist: "Fugazi"},
		},
		{
			name: "empty line",
			line: "",
			want: Entry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseEntry(tt.line); got != tt.want {
				t.Errorf("ParseEntry(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestEntryRoundTrip(t *testing.T) {
	entries := []Entry{
		{Artist: "Portishead", Album: "Dummy", Year: "1994"},
		{Artist: "Godspeed You! Black Emperor", Album: "F# A# ∞", Year: "1997"},
		{Artist: "múm", Album: "Finally We Are No One", Year: "2002"},
		{Artist: "Boards of Canada", Album: "Music Has the Right to Children"},
	}

	for _, e := range entries {
		if got := ParseEntry(e.String()); got != e {
			t.Errorf("round trip of %+v via %q = %+v", e, e.String(), got)
		}
	}
}
