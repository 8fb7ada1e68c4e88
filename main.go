package main

import (
	"fmt"
	"os"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/karpfen/fzmp/internal/app"
	"github.com/karpfen/fzmp/internal/cache"
	"github.com/karpfen/fzmp/internal/config"
	"github.com/karpfen/fzmp/internal/library"
	"github.com/karpfen/fzmp/internal/picker"
)

var (
	clearFlag   = flag.BoolP("clear", "c", false, "delete all cache files and exit")
	artistFlag  = flag.BoolP("artist", "a", false, "browse artists (default)")
	dirFlag     = flag.BoolP("directory", "d", false, "browse directories")
	albumFlag   = flag.BoolP("artist-album", "b", false, "browse artist/album/year entries")
	newFlag     = flag.BoolP("new", "n", false, "browse recently added albums")
	verboseFlag = flag.BoolP("verbose", "v", false, "report cache decisions on stderr")
	noCacheFlag = flag.Bool("no-cache", false, "skip cache reads for this run")
)

func main() {
	flag.Parse()

	mode, err := selectedMode()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	if err := run(mode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// selectedMode maps the mode flags to a single mode; more than one is a
// usage error.
func selectedMode() (app.Mode, error) {
	var modes []app.Mode
	for _, m := range []struct {
		set  bool
		mode app.Mode
	}{
		{*artistFlag, app.ModeArtist},
		{*dirFlag, app.ModeDirectory},
		{*albumFlag, app.ModeAlbum},
		{*newFlag, app.ModeNew},
	} {
		if m.set {
			modes = append(modes, m.mode)
		}
	}

	switch len(modes) {
	case 0:
		return app.ModeArtist, nil
	case 1:
		return modes[0], nil
	}
	return "", fmt.Errorf("only one mode flag may be given")
}

func run(mode app.Mode) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lists := cache.Open(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)

	if *clearFlag {
		if err := lists.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		if *verboseFlag {
			fmt.Fprintf(os.Stderr, "cleared cache files under %s\n", lists.Dir())
		}
		return nil
	}

	network, addr, password := cfg.Addr()
	lib, err := library.Dial(network, addr, password, cfg.Library.ArtistTag)
	if err != nil {
		return err
	}
	defer lib.Close()

	a := &app.App{
		Lib:        lib,
		Cache:      lists,
		Picker:     picker.New(cfg.Picker.Command, cfg.Picker.Options),
		NewWindow:  time.Duration(cfg.Library.NewWindowDays) * 24 * time.Hour,
		NoCache:    *noCacheFlag || cfg.Cache.Disable,
		Verbose:    *verboseFlag,
		SwitchMode: switchMode,
	}
	return a.Run(mode)
}

// switchMode replaces the process with a fresh invocation in the target
// mode, so the finder's terminal state is fully torn down in between.
func switchMode(mode app.Mode) error {
	self, err := os.Executable()
	if err != nil {
		return err
	}

	argv := []string{self, "--" + string(mode)}
	if *verboseFlag {
		argv = append(argv, "--verbose")
	}
	if *noCacheFlag {
		argv = append(argv, "--no-cache")
	}
	return syscall.Exec(self, argv, os.Environ())
}
