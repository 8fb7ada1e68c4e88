package library

import (
	"path"
	"sort"
	"strings"
	"time"
)

// Artists returns all unique artists, case-insensitively sorted. When the
// configured tag is albumartist and the library has none, falls back to
// the artist tag.
func (c *Client) Artists() ([]string, error) {
	names, err := c.conn.List(c.tag)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 && c.tag == "albumartist" {
		names, err = c.conn.List("artist")
		if err != nil {
			return nil, err
		}
	}
	return sortUnique(names), nil
}

// Albums returns the albums for an artist with their release years. The
// year comes from a separate date query per album; when the dates
// disagree the earliest four-digit year wins.
func (c *Client) Albums(artist string) ([]Entry, error) {
	names, err := c.conn.List("album", c.tag, artist)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, album := range sortUnique(names) {
		dates, err := c.conn.List("date", c.tag, artist, "album", album)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Artist: artist,
			Album:  album,
			Year:   earliestYear(dates),
		})
	}
	return entries, nil
}

// AlbumIndex returns every artist/album/year triple in the library,
// case-insensitively sorted by their formatted form.
func (c *Client) AlbumIndex() ([]Entry, error) {
	artists, err := c.Artists()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, artist := range artists {
		albums, err := c.Albums(artist)
		if err != nil {
			return nil, err
		}
		entries = append(entries, albums...)
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].String()) < strings.ToLower(entries[j].String())
	})
	return entries, nil
}

// Directories returns every directory containing library files, including
// intermediate parents, case-insensitively sorted.
func (c *Client) Directories() ([]string, error) {
	tracks, err := c.conn.ListAllInfo("/")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, t := range tracks {
		file := t["file"]
		if file == "" {
			continue
		}
		for dir := path.Dir(file); dir != "." && dir != "/"; dir = path.Dir(dir) {
			seen[dir] = true
		}
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	return sortUnique(dirs), nil
}

// RecentAlbums returns the albums with files modified since cutoff,
// newest first.
func (c *Client) RecentAlbums(cutoff time.Time) ([]Entry, error) {
	tracks, err := c.conn.Find("modified-since", cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	type recent struct {
		entry    Entry
		modified string // RFC3339 sorts lexically
	}

	byAlbum := make(map[string]*recent)
	var order []string
	for _, t := range tracks {
		artist := t["AlbumArtist"]
		if artist == "" {
			artist = t["Artist"]
		}
		album := t["Album"]
		if artist == "" && album == "" {
			continue
		}

		key := artist + "\x00" + album
		r, ok := byAlbum[key]
		if !ok {
			r = &recent{entry: Entry{
				Artist: artist,
				Album:  album,
				Year:   yearOf(t["Date"]),
			}}
			byAlbum[key] = r
			order = append(order, key)
		}
		if m := t["Last-Modified"]; m > r.modified {
			r.modified = m
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return byAlbum[order[i]].modified > byAlbum[order[j]].modified
	})

	entries := make([]Entry, 0, len(order))
	for _, key := range order {
		entries = append(entries, byAlbum[key].entry)
	}
	return entries, nil
}

// sortUnique drops empty strings and exact duplicates and sorts the rest
// case-insensitively.
func sortUnique(ss []string) []string {
	seen := make(map[string]bool, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i]), strings.ToLower(out[j])
		if a == b {
			return out[i] < out[j]
		}
		return a < b
	})
	return out
}

// earliestYear picks the lowest four-digit year across a set of date
// tags, favoring original release years when reissue dates disagree.
func earliestYear(dates []string) string {
	best := ""
	for _, d := range dates {
		y := yearOf(d)
		if y == "" {
			continue
		}
		if best == "" || y < best {
			best = y
		}
	}
	return best
}

// yearOf extracts the first four-digit run from a date tag
// ("1994", "1994-06-21", ...).
func yearOf(date string) string {
	for i := 0; i+4 <= len(date); i++ {
		if isDigits(date[i : i+4]) {
			return date[i : i+4]
		}
	}
	return ""
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
