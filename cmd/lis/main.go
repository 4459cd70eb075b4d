package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lis/internal/app"
	"lis/internal/config"
	"lis/internal/input"
	"lis/internal/tree"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var (
		cwd      string
		cfgPath  string
		debugLog string
	)
	opts := config.Defaults()

	cmd := &cobra.Command{
		Use:           "lis [path]",
		Short:         "Interactive tree file browser",
		Long:          "lis renders a directory as an expandable tree and lets you browse,\nmark, and manage files with vi-style keys. Opening a file with Enter\nprints its path on stdout, so lis composes with $EDITOR and scripts.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fileOpts, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			mergeFlagOverrides(cmd, &fileOpts, &opts)

			pathArg := ""
			if len(args) > 0 {
				pathArg = args[0]
			}
			root, highlight := resolvePaths(cwd, pathArg)

			log := newLogger(debugLog)

			st := tree.NewState(root, &fileOpts)
			st.HighlightTarget = highlight

			raw, err := input.EnterRaw(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("enter raw mode: %w", err)
			}

			session := app.NewSession(st, os.Stdin, os.Stdout, log)
			selected, runErr := session.Run()
			raw.Restore()

			if runErr != nil {
				return runErr
			}
			if selected != "" {
				fmt.Println(selected)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cwd, "cwd", "", "root directory for the tree (positional path highlights a file)")
	f.StringVar(&cfgPath, "config", config.DefaultPath(), "config file")
	f.StringVar(&debugLog, "debug-log", "", "append debug diagnostics to this file")
	f.BoolVarP(&opts.ShowHidden, "all", "a", opts.ShowHidden, "show hidden files")
	f.BoolVarP(&opts.AltScreen, "alt-screen", "A", opts.AltScreen, "use the alternate screen buffer")
	f.BoolP("compact", "c", false, "hide header and help")
	f.BoolVarP(&opts.GenericIcons, "generic-icons", "g", opts.GenericIcons, "use a generic icon for all files")
	f.BoolVarP(&opts.ShowGit, "git", "G", opts.ShowGit, "show git status column")
	f.BoolVarP(&opts.ShowSize, "size", "s", opts.ShowSize, "show file size column")
	f.IntVarP(&opts.MaxDepth, "depth", "d", opts.MaxDepth, "max indent depth (-1 = unlimited)")
	f.IntVar(&opts.BGColor, "background", opts.BGColor, "terminal background (0-255, needs -A)")
	f.IntVar(&opts.SelBGColor, "selection-background", opts.SelBGColor, "cursor line background (0-255, needs -A)")

	return cmd
}

// mergeFlagOverrides copies flag values over the file-loaded options, but
// only for flags the user actually set, so the config file keeps supplying
// defaults for everything else.
func mergeFlagOverrides(cmd *cobra.Command, dst, flags *config.Options) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("all", func() { dst.ShowHidden = flags.ShowHidden })
	set("alt-screen", func() { dst.AltScreen = flags.AltScreen })
	set("compact", func() { dst.ShowHeader = false })
	set("generic-icons", func() { dst.GenericIcons = flags.GenericIcons })
	set("git", func() { dst.ShowGit = flags.ShowGit })
	set("size", func() { dst.ShowSize = flags.ShowSize })
	set("depth", func() { dst.MaxDepth = flags.MaxDepth })
	set("background", func() { dst.BGColor = flags.BGColor })
	set("selection-background", func() { dst.SelBGColor = flags.SelBGColor })
}

// resolvePaths validates the startup path arguments per the CLI contract:
// with --cwd the positional path is a file to highlight; without it, a
// directory positional becomes the root and a file positional opens its
// parent with the file highlighted. Invalid paths exit with code 2.
func resolvePaths(cwd, pathArg string) (root, highlight string) {
	fail := func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
		os.Exit(2)
	}

	if cwd != "" {
		root, err := filepath.Abs(cwd)
		if err != nil {
			fail("cwd path is invalid: %s", cwd)
		}
		info, err := os.Stat(root)
		if err != nil {
			fail("cwd path does not exist: %s", root)
		}
		if !info.IsDir() {
			fail("cwd must be a directory: %s", root)
		}
		if pathArg != "" {
			highlight, err = filepath.Abs(pathArg)
			if err != nil {
				fail("file path is invalid: %s", pathArg)
			}
			if _, err := os.Stat(highlight); err != nil {
				fail("file path does not exist: %s", highlight)
			}
		}
		return root, highlight
	}

	target := pathArg
	if target == "" {
		target = "."
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		fail("path is invalid: %s", target)
	}
	info, err := os.Stat(abs)
	if err != nil {
		fail("path does not exist: %s", abs)
	}
	if info.IsDir() {
		return abs, ""
	}
	return filepath.Dir(abs), abs
}

func newLogger(path string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	if path == "" {
		return log
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open debug log %s: %v\n", path, err)
		return log
	}
	log.SetOutput(f)
	log.SetLevel(logrus.DebugLevel)
	return log
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
