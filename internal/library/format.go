package library

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry is one artist/album/year triple.
type Entry struct {
	Artist string
	Album  string
	Year   string // four digits, or empty when unknown
}

var entryRe = regexp.MustCompile(`^(.*?) - (.*) \[(\d{4})\]$`)

// String formats the entry as "Artist - Album [Year]", dropping the
// bracketed year when it is unknown.
func (e Entry) String() string {
	if e.Year == "" {
		return fmt.Sprintf("%s - %s", e.Artist, e.Album)
	}
	return fmt.Sprintf("%s - %s [%s]", e.Artist, e.Album, e.Year)
}

// ParseEntry is the inverse of Entry.String. Lines without the bracketed
// year fall back to a naive split on the first " - "; a line with no
// separator at all becomes an artist-only entry.
func ParseEntry(line string) Entry {
	if m := entryRe.FindStringSubmatch(line); m != nil {
		return Entry{Artist: m[1], Album: m[2], Year: m[3]}
	}
	artist, album, ok := strings.Cut(line, " - ")
	if !ok {
		return Entry{Artist: line}
	}
	return Entry{Artist: artist, Album: album}
}
