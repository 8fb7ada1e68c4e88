// Package app wires the cache, the MPD library, and the picker into the
// select-and-enqueue workflow.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/karpfen/fzmp/internal/library"
	"github.com/karpfen/fzmp/internal/picker"
)

// Mode is one of the selectable library views.
type Mode string

const (
	ModeArtist    Mode = "artist"
	ModeDirectory Mode = "directory"
	ModeAlbum     Mode = "artist-album"
	ModeNew       Mode = "new"
)

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeArtist, ModeDirectory, ModeAlbum, ModeNew:
		return true
	}
	return false
}

// Library is the slice of the MPD layer the workflow needs.
type Library interface {
	Artists() ([]string, error)
	AlbumIndex() ([]library.Entry, error)
	Directories() ([]string, error)
	RecentAlbums(cutoff time.Time) ([]library.Entry, error)
	DBUpdateTime() (time.Time, error)

	AddArtist(artist string) (int, error)
	AddAlbum(artist, album string) (int, error)
	AddPath(path string) error
	ClearQueue() error
	StartPlayback() error
	UpdateDB() error
}

// Cache is the per-mode list cache.
type Cache interface {
	Get(mode string, dbUpdated time.Time) ([]string, time.Time, bool)
	Put(mode string, entries []string) error
	Clear() error
}

// Picker presents a list and reports the outcome.
type Picker interface {
	Pick(entries []string, prompt string) (picker.Result, error)
}

type App struct {
	Lib    Library
	Cache  Cache
	Picker Picker

	NewWindow time.Duration // lookback for ModeNew
	NoCache   bool
	Verbose   bool

	// SwitchMode re-launches the program in another mode. Left nil, a
	// mode-switch key ends the run silently.
	SwitchMode func(Mode) error

	Out    io.Writer // summary output
	Errout io.Writer // verbose diagnostics
}

func (a *App) out() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a *App) logf(format string, args ...any) {
	if !a.Verbose {
		return
	}
	w := a.Errout
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Run drives one interactive session in the given mode. It returns after
// a selection is applied, the picker is aborted, or the process is
// handed off to another mode.
func (a *App) Run(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid mode %q", mode)
	}

	useCache := !a.NoCache
	for {
		entries, err := a.list(mode, useCache)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no data for mode %s", mode)
		}

		res, err := a.Picker.Pick(entries, string(mode))
		if err != nil {
			return err
		}

		switch res.Event {
		case picker.EventCancel:
			return nil

		case picker.EventReload:
			a.logf("reload requested, bypassing cache")
			useCache = false

		case picker.EventClearCache:
			a.logf("library update requested, clearing caches")
			if err := a.Lib.UpdateDB(); err != nil {
				return fmt.Errorf("update library: %w", err)
			}
			if err := a.Cache.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			useCache = false

		case picker.EventModeSwitch:
			next := Mode(res.Mode)
			if !next.Valid() || next == mode {
				useCache = true
				continue
			}
			if a.SwitchMode == nil {
				return nil
			}
			return a.SwitchMode(next)

		case picker.EventSelect, picker.EventReplace:
			return a.apply(mode, res.Lines, res.Event == picker.EventReplace)
		}
	}
}

// list resolves the entries for a mode, consulting the cache for every
// mode except new, whose whole point is recency.
func (a *App) list(mode Mode, useCache bool) ([]string, error) {
	if mode == ModeNew {
		entries, err := a.Lib.RecentAlbums(time.Now().Add(-a.NewWindow))
		if err != nil {
			return nil, fmt.Errorf("list recent albums: %w", err)
		}
		return formatEntries(entries), nil
	}

	dbUpdated, err := a.Lib.DBUpdateTime()
	if err != nil {
		return nil, fmt.Errorf("query database stats: %w", err)
	}

	if useCache {
		if lines, mtime, ok := a.Cache.Get(string(mode), dbUpdated); ok {
			a.logf("using cached %s list (written %s)", mode, humanize.Time(mtime))
			return lines, nil
		}
		a.logf("cache miss for %s, querying mpd", mode)
	}

	lines, err := a.query(mode)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := a.Cache.Put(string(mode), lines); err != nil {
			return nil, fmt.Errorf("write %s cache: %w", mode, err)
		}
	}
	return lines, nil
}

func (a *App) query(mode Mode) ([]string, error) {
	switch mode {
	case ModeArtist:
		lines, err := a.Lib.Artists()
		if err != nil {
			return nil, fmt.Errorf("list artists: %w", err)
		}
		return lines, nil
	case ModeDirectory:
		lines, err := a.Lib.Directories()
		if err != nil {
			return nil, fmt.Errorf("list directories: %w", err)
		}
		return lines, nil
	case ModeAlbum:
		entries, err := a.Lib.AlbumIndex()
		if err != nil {
			return nil, fmt.Errorf("list albums: %w", err)
		}
		return formatEntries(entries), nil
	}
	return nil, fmt.Errorf("invalid mode %q", mode)
}

// apply adds the chosen lines to the queue. With replace set the queue
// is cleared first and playback starts after.
func (a *App) apply(mode Mode, lines []string, replace bool) error {
	if replace {
		a.logf("replacing queue")
		if err := a.Lib.ClearQueue(); err != nil {
			return fmt.Errorf("clear queue: %w", err)
		}
	}

	tracks := 0
	counted := true
	for _, line := range lines {
		switch mode {
		case ModeArtist:
			n, err := a.Lib.AddArtist(line)
			if err != nil {
				return fmt.Errorf("add artist %q: %w", line, err)
			}
			tracks += n
		case ModeDirectory:
			if err := a.Lib.AddPath(line); err != nil {
				return fmt.Errorf("add directory %q: %w", line, err)
			}
			counted = false
		case ModeAlbum, ModeNew:
			e := library.ParseEntry(line)
			n, err := a.Lib.AddAlbum(e.Artist, e.Album)
			if err != nil {
				return fmt.Errorf("add album %q: %w", line, err)
			}
			tracks += n
		}
		fmt.Fprintf(a.out(), "Added: %s\n", line)
	}

	if replace {
		if err := a.Lib.StartPlayback(); err != nil {
			return fmt.Errorf("start playback: %w", err)
		}
	}

	if counted {
		fmt.Fprintf(a.out(), "Added %d selections (%d tracks)\n", len(lines), tracks)
	} else {
		fmt.Fprintf(a.out(), "Added %d selections\n", len(lines))
	}
	return nil
}

func formatEntries(entries []library.Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return lines
}
