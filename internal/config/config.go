package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/ini.v1"
)

const (
	configDirName  = ".config"
	appDirName     = "lis"
	configFileName = "config.ini"
)

// Options is the session display configuration. Defaults come from the
// optional config file; CLI flags override individual fields afterwards.
// The toggle keys (., S, t) mutate it for the rest of the session.
type Options struct {
	ShowHidden   bool
	ShowGit      bool
	ShowSize     bool
	ShowTime     bool
	ShowMarks    bool
	ShowHeader   bool
	UseANSI      bool
	AltScreen    bool
	GenericIcons bool
	MaxDepth     int // -1 = unlimited indent depth
	BGColor      int // -1 = terminal default, else ANSI 256-color
	SelBGColor   int // background for the cursor row, -1 = none
	Sort         string

	// Names matching any of these globs are dropped from listings.
	IgnorePatterns []string

	ignore []glob.Glob
}

// Defaults returns the built-in configuration.
func Defaults() Options {
	return Options{
		ShowMarks:  true,
		ShowHeader: true,
		UseANSI:    true,
		MaxDepth:   -1,
		BGColor:    -1,
		SelBGColor: -1,
		Sort:       "name",
	}
}

// DefaultPath returns ~/.config/lis/config.ini, or "" when the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, appDirName, configFileName)
}

// Load reads the config file at path on top of the defaults. A missing or
// empty path yields plain defaults; a malformed file is an error.
func Load(path string) (Options, error) {
	o := Defaults()
	if path == "" {
		return o, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return o, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return o, fmt.Errorf("load config %s: %w", path, err)
	}

	d := cfg.Section("display")
	o.ShowHidden = d.Key("show_hidden").MustBool(o.ShowHidden)
	o.ShowGit = d.Key("show_git").MustBool(o.ShowGit)
	o.ShowSize = d.Key("show_size").MustBool(o.ShowSize)
	o.ShowTime = d.Key("show_time").MustBool(o.ShowTime)
	o.ShowMarks = d.Key("show_marks").MustBool(o.ShowMarks)
	o.ShowHeader = d.Key("show_header").MustBool(o.ShowHeader)
	o.UseANSI = d.Key("ansi").MustBool(o.UseANSI)
	o.AltScreen = d.Key("alt_screen").MustBool(o.AltScreen)
	o.GenericIcons = d.Key("generic_icons").MustBool(o.GenericIcons)
	o.MaxDepth = d.Key("max_depth").MustInt(o.MaxDepth)
	o.BGColor = d.Key("background").MustInt(o.BGColor)
	o.SelBGColor = d.Key("selection_background").MustInt(o.SelBGColor)
	o.Sort = d.Key("sort").MustString(o.Sort)

	f := cfg.Section("filter")
	if key := f.Key("ignore"); key.String() != "" {
		o.IgnorePatterns = key.Strings(",")
	}

	if err := o.CompilePatterns(); err != nil {
		return o, err
	}
	return o, nil
}

// CompilePatterns compiles IgnorePatterns; call after mutating them.
func (o *Options) CompilePatterns() error {
	o.ignore = o.ignore[:0]
	for _, p := range o.IgnorePatterns {
		g, err := glob.Compile(p)
		if err != nil {
			return fmt.Errorf("ignore pattern %q: %w", p, err)
		}
		o.ignore = append(o.ignore, g)
	}
	return nil
}

// Ignored reports whether a display name matches an ignore pattern.
func (o *Options) Ignored(name string) bool {
	for _, g := range o.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}
