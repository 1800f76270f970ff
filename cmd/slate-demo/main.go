// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/slate-demo/main.go
// Summary: Interactive demo driving the wm core on a terminal compositor.
// Usage: Run `slate-demo` in a terminal; 'd' toggles a dim, 'm' moves a
// window, 'r' runs an async rotation, 'q' quits.

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/slatewm/slate/config"
	"github.com/slatewm/slate/internal/anim"
	"github.com/slatewm/slate/internal/termdisplay"
	"github.com/slatewm/slate/surface"
	"github.com/slatewm/slate/wm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default ~/.config/slate/slate.yaml)")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("slate-demo needs a terminal")
	}

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset))
	screen.HideCursor()

	display := termdisplay.New(screen, cfg.FrameInterval.Duration, cfg.MaxSurfaces)
	go display.Run()
	defer display.Close()

	svc := wm.NewService(display, display, cfg)
	defer svc.Close()

	sw, sh := screen.Size()

	svc.Lock()
	root, err := svc.CreateContainer("root", nil, sw, sh)
	if err != nil {
		svc.Unlock()
		return err
	}
	winA, err := svc.CreateContainer("editor", root, 34, 9)
	if err != nil {
		svc.Unlock()
		return err
	}
	winA.Move(winA.PendingTransaction(), 2, 2)
	winB, err := svc.CreateContainer("terminal", root, 26, 7)
	if err != nil {
		svc.Unlock()
		return err
	}
	winB.Move(winB.PendingTransaction(), 40, 5)
	bar, err := svc.CreateToken("statusbar", root, sw, 1)
	if err != nil {
		svc.Unlock()
		return err
	}
	dimmer := wm.NewDimmer(root)
	root.CommitPendingTransaction()
	winA.CommitPendingTransaction()
	winB.CommitPendingTransaction()
	bar.CommitPendingTransaction()
	svc.Unlock()

	events := make(chan tcell.Event, 10)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	dimmed := false
	atLeft := true
	for {
		ev := <-events
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch key.Rune() {
		case 'q':
			close(quit)
			return nil
		case 'd':
			dimmed = !dimmed
			svc.Lock()
			t := root.PendingTransaction()
			dimmer.ResetDimStates()
			if dimmed {
				dimmer.DimAbove(t, winB, 0.6)
			}
			dimmer.UpdateDims(t, surface.Rect{X: 0, Y: 0, W: sw, H: sh})
			root.CommitPendingTransaction()
			svc.Unlock()
		case 'm':
			svc.Lock()
			from, to := 40, 6
			if !atLeft {
				from, to = 6, 40
			}
			atLeft = !atLeft
			winB.StartAnimation(winB.PendingTransaction(), anim.Move{
				FromX: from, FromY: 5, ToX: to, ToY: 5,
				Dur: 400 * time.Millisecond,
			}, nil)
			winB.CommitPendingTransaction()
			svc.Unlock()
		case 'r':
			runRotation(svc, root, winA, winB, bar)
		}
	}
}

// runRotation hides the status bar, spins the windows, and fades the bar
// back in once the start transaction commits and the bar "redraws".
func runRotation(svc *wm.Service, root, winA, winB *wm.WindowContainer, bar *wm.WindowToken) {
	svc.Lock()
	defer svc.Unlock()

	rot := wm.NewAsyncRotationController(svc, []*wm.WindowToken{bar}, false)
	start := root.PendingTransaction()
	rot.Hide(start)
	rot.SetupStartTransaction(start)

	winA.StartAnimation(winA.PendingTransaction(), anim.Rotate{FromDeg: 0, ToDeg: 360, Dur: 600 * time.Millisecond}, nil)
	winB.StartAnimation(winB.PendingTransaction(), anim.Rotate{FromDeg: 0, ToDeg: 360, Dur: 600 * time.Millisecond}, nil)

	root.CommitPendingTransaction()
	winA.CommitPendingTransaction()
	winB.CommitPendingTransaction()

	// Pretend the bar redraws shortly after the rotation starts; the
	// fade-in stays gated on the commit confirmation either way.
	go func() {
		time.Sleep(300 * time.Millisecond)
		svc.Lock()
		rot.OnWindowDrawn(bar)
		svc.Unlock()
	}()
}
