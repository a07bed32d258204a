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

// slideshowbob runs the slideshow pipeline headless: it scans the
// configured folders, advances through the playlist and prints
// navigation events to stdout. A graphical frontend subscribes to the
// same notifications instead of printing them.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jefftier/SlideShowBob-sub000/pkg/api/models"
	"github.com/jefftier/SlideShowBob-sub000/pkg/cli"
	"github.com/jefftier/SlideShowBob-sub000/pkg/config"
	"github.com/jefftier/SlideShowBob-sub000/pkg/service"
	"github.com/jefftier/SlideShowBob-sub000/pkg/video"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags()
	flags.Pre()

	cfg := cli.Setup(
		flags.ConfigDirOrDefault(),
		config.BaseDefaults,
		nil,
	)

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	flags.Post(cfg)

	svc, err := service.Start(cfg, afero.NewOsFs(), video.NewNullPlayer())
	if err != nil {
		log.Error().Err(err).Msg("error starting service")
		return fmt.Errorf("error starting service: %w", err)
	}
	defer func() {
		if stopErr := svc.Stop(); stopErr != nil {
			log.Error().Err(stopErr).Msg("error stopping service")
		}
	}()

	coord := svc.Coordinator()

	notifs, subID := svc.Broker().Subscribe(32)
	defer svc.Broker().Unsubscribe(subID)
	go printNotifications(notifs)

	if coord.HasItems() {
		if item, ok := coord.CurrentItem(); ok {
			_, _ = fmt.Printf("loaded %d items, showing %s (%d/%d)\n",
				coord.Count(), item.Name, coord.CurrentIndex()+1, coord.Count())
		}
	} else {
		_, _ = fmt.Println("no media found, configure folders or pass -folders")
	}

	if *flags.Start {
		if startErr := coord.Start(); startErr != nil {
			if errors.Is(startErr, service.ErrEmptyPlaylist) {
				log.Warn().Msg("not starting slideshow, playlist is empty")
			} else {
				return fmt.Errorf("error starting slideshow: %w", startErr)
			}
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	return nil
}

// printNotifications writes pipeline events to stdout until the broker
// closes the subscription.
func printNotifications(notifs <-chan models.Notification) {
	for n := range notifs {
		switch params := n.Params.(type) {
		case models.NavigatedParams:
			_, _ = fmt.Printf("%d/%d %s\n", params.Index+1, params.Total, params.Item.Name)
		case models.MediaFailedParams:
			_, _ = fmt.Printf("error: %s: %s\n", params.Item.Name, params.Error)
		case models.SlideshowParams:
			_, _ = fmt.Printf("slideshow started, %dms per slide\n", params.DelayMS)
		default:
			if n.Method == models.NotificationSlideshowStopped {
				_, _ = fmt.Println("slideshow stopped")
			}
		}
	}
}
