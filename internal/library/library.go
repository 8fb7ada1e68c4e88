// Package library answers queries about the MPD database and applies
// selections to the play queue.
package library

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fhs/gompd/v2/mpd"
)

// protocol is the slice of the MPD protocol this package uses. It is
// satisfied by *mpd.Client; tests substitute a fake.
type protocol interface {
	List(args ...string) ([]string, error)
	Find(args ...string) ([]mpd.Attrs, error)
	ListAllInfo(uri string) ([]mpd.Attrs, error)
	Stats() (mpd.Attrs, error)
	Add(uri string) error
	Clear() error
	Play(pos int) error
	Update(uri string) (int, error)
	Close() error
}

var _ protocol = &mpd.Client{}

// Client wraps an MPD connection.
type Client struct {
	conn protocol
	tag  string // "albumartist" or "artist"
}

// Dial connects to MPD and authenticates when password is non-empty.
func Dial(network, addr, password, artistTag string) (*Client, error) {
	var conn *mpd.Client
	var err error
	if password != "" {
		conn, err = mpd.DialAuthenticated(network, addr, password)
	} else {
		conn, err = mpd.Dial(network, addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to mpd at %s: %w", addr, err)
	}
	return NewClient(conn, artistTag), nil
}

// NewClient wraps an existing connection. artistTag selects the tag used
// for artist grouping; empty means albumartist.
func NewClient(conn protocol, artistTag string) *Client {
	if artistTag == "" {
		artistTag = "albumartist"
	}
	return &Client{conn: conn, tag: artistTag}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// DBUpdateTime returns the time of MPD's last database update, zero when
// the stat is absent.
func (c *Client) DBUpdateTime() (time.Time, error) {
	stats, err := c.conn.Stats()
	if err != nil {
		return time.Time{}, err
	}
	sec, err := strconv.ParseInt(stats["db_update"], 10, 64)
	if err != nil {
		return time.Time{}, nil
	}
	return time.Unix(sec, 0), nil
}

// AddArtist appends every track by artist to the queue and returns the
// number added.
func (c *Client) AddArtist(artist string) (int, error) {
	return c.findAdd(c.tag, artist)
}

// AddAlbum appends an album's tracks to the queue and returns the number
// added.
func (c *Client) AddAlbum(artist, album string) (int, error) {
	if album == "" {
		return c.findAdd(c.tag, artist)
	}
	return c.findAdd(c.tag, artist, "album", album)
}

// AddPath appends a file or directory (recursively) to the queue.
func (c *Client) AddPath(path string) error {
	return c.conn.Add(path)
}

// ClearQueue empties the play queue.
func (c *Client) ClearQueue() error {
	return c.conn.Clear()
}

// StartPlayback starts playing at the current queue position.
func (c *Client) StartPlayback() error {
	return c.conn.Play(-1)
}

// UpdateDB triggers a full library rescan.
func (c *Client) UpdateDB() error {
	_, err := c.conn.Update("")
	return err
}

func (c *Client) findAdd(args ...string) (int, error) {
	tracks, err := c.conn.Find(args...)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, t := range tracks {
		file := t["file"]
		if file == "" {
			continue
		}
		if err := c.conn.Add(file); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
