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

// Package service assembles the slideshow pipeline: state, cache,
// loader, playlist, coordinator and the notification broker.
package service

import (
	"github.com/jefftier/SlideShowBob-sub000/pkg/api/models"
	"github.com/jefftier/SlideShowBob-sub000/pkg/config"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/cache"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/discovery"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/loader"
	"github.com/jefftier/SlideShowBob-sub000/pkg/media/playlist"
	"github.com/jefftier/SlideShowBob-sub000/pkg/service/broker"
	"github.com/jefftier/SlideShowBob-sub000/pkg/service/state"
	"github.com/jefftier/SlideShowBob-sub000/pkg/video"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Service is a running slideshow pipeline. Commands go through the
// Coordinator, events come out of the Broker.
type Service struct {
	cfg      *config.Instance
	st       *state.State
	coord    *Coordinator
	broker   *broker.Broker
	loader   *loader.Loader
	player   video.Player
	pumpDone chan struct{}
}

// Start wires up and launches the pipeline. The caller drives the
// playlist through Coordinator and must call Stop to shut down.
func Start(cfg *config.Instance, fsys afero.Fs, player video.Player) (*Service, error) {
	log.Info().Msgf("version: %s", config.AppVersion)

	sessionUUID := uuid.New().String()
	log.Info().Msgf("session UUID: %s", sessionUUID)

	st, ns := state.NewState(sessionUUID)

	notifBroker := broker.NewBroker(st.GetContext(), ns)
	notifBroker.Start()

	sortMode, err := playlist.ParseSortMode(cfg.SortMode())
	if err != nil {
		log.Warn().Err(err).Msg("ignoring configured sort mode")
		sortMode = playlist.SortNameAscending
	}

	imgCache := cache.NewImageCache(cfg.CacheCapacity())
	ld := loader.NewLoader(cfg, fsys, imgCache, st, st.Notifications, player)
	disc := discovery.NewDiscoverer(fsys)
	plMgr := playlist.NewManager(fsys, sortMode)
	coord := NewCoordinator(cfg, st, disc, plMgr, ld, player, clockwork.NewRealClock())

	log.Info().Msg("starting video player event pump")
	pumpDone := make(chan struct{})
	go watchPlayerEvents(st, player, pumpDone)

	if folders := cfg.Folders(); len(folders) > 0 {
		count := coord.LoadFiles(st.GetContext(), folders, cfg.IncludeVideos())
		log.Info().Int("items", count).Strs("folders", folders).
			Msg("initial media scan complete")
	}

	log.Info().Msg("slideshow service initialized")
	return &Service{
		cfg:      cfg,
		st:       st,
		coord:    coord,
		broker:   notifBroker,
		loader:   ld,
		player:   player,
		pumpDone: pumpDone,
	}, nil
}

// Coordinator exposes the command surface of the pipeline.
func (s *Service) Coordinator() *Coordinator {
	return s.coord
}

// Broker exposes the notification fan-out for presentation subscribers.
func (s *Service) Broker() *broker.Broker {
	return s.broker
}

func (s *Service) SessionUUID() string {
	return s.st.SessionUUID()
}

// Stop shuts the pipeline down in dependency order: the advance timer
// first, then in-flight loads, then the notification plumbing. Safe to
// call more than once.
func (s *Service) Stop() error {
	log.Info().Msg("stopping slideshow service")

	s.coord.Stop()
	s.loader.Close()
	s.player.Stop(false)
	s.st.Stop()
	<-s.pumpDone

	log.Info().Msg("service cleanup completed")
	return nil
}

// watchPlayerEvents forwards video player events into pipeline state and
// notifications. Frame captures are passed along for instant-feedback
// placeholders; their absence never blocks anything.
func watchPlayerEvents(st *state.State, player video.Player, done chan<- struct{}) {
	defer close(done)
	ctx := st.GetContext()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-player.Events():
			if !ok {
				return
			}
			switch evt.Kind {
			case video.EventMediaOpened:
				log.Debug().Str("uri", evt.URI).Msg("video playback opened")
			case video.EventMediaEnded:
				if st.SetVideoEnded() {
					log.Debug().Str("uri", evt.URI).Msg("video playback finished")
				}
			case video.EventFrameCaptured:
				if evt.Frame == nil {
					continue
				}
				select {
				case st.Notifications <- models.Notification{
					Method: models.NotificationVideoFrame,
					Params: models.VideoFrameParams{Frame: evt.Frame, URI: evt.URI},
				}:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
