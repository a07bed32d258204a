// SlideShowBob
// Copyright (c) 2026 The SlideShowBob Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of SlideShowBob.
//
// SlideShowBob is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SlideShowBob is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with SlideShowBob.  If not, see <http://www.gnu.org/licenses/>.

// Package cli holds the flag handling and environment bootstrap shared
// by the command line entrypoint.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jefftier/SlideShowBob-sub000/pkg/config"
	"github.com/jefftier/SlideShowBob-sub000/pkg/helpers"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/playlist"
	"github.com/rs/zerolog"
)

type Flags struct {
	ConfigDir     *string
	Folders       *string
	Delay         *int
	Sort          *string
	IncludeVideos *bool
	Start         *bool
	Version       *bool
	Debug         *bool
}

// SetupFlags defines all CLI flags. Add any custom flags before calling
// Pre.
func SetupFlags() *Flags {
	return &Flags{
		ConfigDir: flag.String(
			"config-dir",
			"",
			"directory holding the config file",
		),
		Folders: flag.String(
			"folders",
			"",
			"comma-separated media folders to scan, overriding the config",
		),
		Delay: flag.Int(
			"delay",
			0,
			"slide delay in milliseconds, overriding the config",
		),
		Sort: flag.String(
			"sort",
			"",
			"sort mode: name_asc, name_desc, date_oldest, date_newest, random",
		),
		IncludeVideos: flag.Bool(
			"include-videos",
			false,
			"include .gif and .mp4 files in scans",
		),
		Start: flag.Bool(
			"start",
			false,
			"start the slideshow immediately",
		),
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
		Debug: flag.Bool(
			"debug",
			false,
			"enable debug logging",
		),
	}
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup.
func (f *Flags) Pre() {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("%s v%s\n", config.AppName, config.AppVersion)
		os.Exit(0)
	}
}

// ConfigDirOrDefault returns the config directory to use, preferring the
// flag over the user default.
func (f *Flags) ConfigDirOrDefault() string {
	if *f.ConfigDir != "" {
		return *f.ConfigDir
	}
	return helpers.ConfigDir()
}

// Post applies flag overrides onto the loaded config. Overrides are for
// this run only and are not written back to disk. Logging is allowed.
func (f *Flags) Post(cfg *config.Instance) {
	if isFlagPassed("folders") {
		var folders []string
		for _, folder := range strings.Split(*f.Folders, ",") {
			if folder = strings.TrimSpace(folder); folder != "" {
				folders = append(folders, folder)
			}
		}
		cfg.SetFolders(folders)
	}

	if isFlagPassed("delay") {
		if *f.Delay <= 0 {
			_, _ = fmt.Fprint(os.Stderr, "Error: delay must be a positive number of milliseconds\n")
			os.Exit(1)
		}
		cfg.SetSlideshowDelayMS(*f.Delay)
	}

	if isFlagPassed("sort") {
		mode, err := playlist.ParseSortMode(*f.Sort)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.SetSortMode(string(mode))
	}

	if isFlagPassed("include-videos") {
		cfg.SetIncludeVideos(*f.IncludeVideos)
	}

	if *f.Debug {
		cfg.SetDebugLogging(true)
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// Setup initializes logging and the user config. Returns a user config
// object.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	configDir string,
	defaultConfig config.Values,
	writers []io.Writer,
) *config.Instance {
	err := helpers.InitLogging(helpers.LogDir(), writers)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(configDir, defaultConfig)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return cfg
}
