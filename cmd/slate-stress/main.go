// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/slate-stress/main.go
// Summary: Stress driver hammering the runner and sync engine on a
// simulated display.
// Usage: `slate-stress -windows 32 -duration 30s` runs headless.

package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/slatewm/slate/config"
	"github.com/slatewm/slate/internal/anim"
	"github.com/slatewm/slate/internal/termdisplay"
	"github.com/slatewm/slate/surface"
	"github.com/slatewm/slate/wm"
)

func main() {
	windows := flag.Int("windows", 16, "number of animated windows")
	duration := flag.Duration("duration", 10*time.Second, "total duration of the stress run")
	statsEvery := flag.Duration("stats", time.Second, "interval between stats lines")
	flag.Parse()

	screen := tcell.NewSimulationScreen("ansi")
	if err := screen.Init(); err != nil {
		log.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(200, 60)
	defer screen.Fini()

	cfg := config.Default()
	display := termdisplay.New(screen, cfg.FrameInterval.Duration, 0)
	go display.Run()
	defer display.Close()

	svc := wm.NewService(display, display, cfg)
	defer svc.Close()

	svc.Lock()
	root, err := svc.CreateContainer("root", nil, 200, 60)
	if err != nil {
		svc.Unlock()
		log.Fatalf("create root: %v", err)
	}
	wins := make([]*wm.WindowContainer, 0, *windows)
	for i := 0; i < *windows; i++ {
		w, err := svc.CreateContainer("win", root, 10+rand.Intn(20), 4+rand.Intn(8))
		if err != nil {
			svc.Unlock()
			log.Fatalf("create window %d: %v", i, err)
		}
		wins = append(wins, w)
	}
	root.CommitPendingTransaction()
	for _, w := range wins {
		w.CommitPendingTransaction()
	}
	svc.Unlock()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	deadline := time.After(*duration)

	statsLogger := wm.NewRunnerStatsLogger(log.Default())
	syncLogger := wm.NewSyncDeliveryLogger(log.Default())
	statsTicker := time.NewTicker(*statsEvery)
	defer statsTicker.Stop()
	churn := time.NewTicker(50 * time.Millisecond)
	defer churn.Stop()

	delivered := 0
	for {
		select {
		case <-sigCh:
			return
		case <-deadline:
			stats := svc.Runner().Stats()
			statsLogger.Observe(stats)
			log.Printf("stress done: sync sets delivered=%d layers=%d", delivered, display.LayerCount())
			return
		case <-statsTicker.C:
			statsLogger.Observe(svc.Runner().Stats())
		case <-churn.C:
			svc.Lock()
			w := wins[rand.Intn(len(wins))]
			switch rand.Intn(3) {
			case 0:
				w.StartAnimation(w.PendingTransaction(), anim.Move{
					FromX: rand.Intn(160), FromY: rand.Intn(50),
					ToX: rand.Intn(160), ToY: rand.Intn(50),
					Dur: time.Duration(100+rand.Intn(400)) * time.Millisecond,
				}, nil)
			case 1:
				w.StartAnimation(w.PendingTransaction(), anim.Fade{
					From: 1, To: 0.3 + rand.Float32()*0.7,
					Dur: time.Duration(100+rand.Intn(400)) * time.Millisecond,
				}, nil)
			case 2:
				// Sync a couple of windows into one atomic commit.
				a, b := wins[rand.Intn(len(wins))], wins[rand.Intn(len(wins))]
				engine := svc.SyncEngine()
				begun := time.Now()
				id := engine.StartSyncSet(wm.SyncListenerFunc(func(id int, t *surface.Transaction) {
					delivered++
					syncLogger.ObserveDelivery(id, t.PendingOps(), time.Since(begun))
					t.Apply(display)
				}))
				engine.AddToSyncSet(id, a)
				if b != a {
					engine.AddToSyncSet(id, b)
				}
				engine.SetReady(id)
				engine.OnSurfacePlacement(a)
				if b != a {
					engine.OnSurfacePlacement(b)
				}
			}
			w.CommitPendingTransaction()
			svc.Unlock()
		}
	}
}
