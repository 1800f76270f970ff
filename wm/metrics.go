// Copyright © 2026 Slate contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/metrics.go
// Summary: Log-based observers for runner and sync-engine activity.

package wm

import (
	"log"
	"time"

	"github.com/slatewm/slate/internal/anim"
)

// RunnerStatsLogger periodically logs animation runner statistics.
type RunnerStatsLogger struct {
	logger *log.Logger
}

// NewRunnerStatsLogger returns an observer that logs runner stats.
func NewRunnerStatsLogger(l *log.Logger) *RunnerStatsLogger {
	if l == nil {
		l = log.Default()
	}
	return &RunnerStatsLogger{logger: l}
}

func (o *RunnerStatsLogger) Observe(stats anim.Stats) {
	if o == nil || o.logger == nil {
		return
	}
	o.logger.Printf("anim pending=%d running=%d started=%d finished=%d cancelled=%d frames=%d commits=%d",
		stats.Pending, stats.Running, stats.Started, stats.Finished, stats.Cancelled, stats.Frames, stats.Commits)
}

// SyncDeliveryLogger logs sync-set deliveries with their latency.
type SyncDeliveryLogger struct {
	logger *log.Logger
}

// NewSyncDeliveryLogger returns an observer that logs barrier deliveries.
func NewSyncDeliveryLogger(l *log.Logger) *SyncDeliveryLogger {
	if l == nil {
		l = log.Default()
	}
	return &SyncDeliveryLogger{logger: l}
}

func (o *SyncDeliveryLogger) ObserveDelivery(id, ops int, waited time.Duration) {
	if o == nil || o.logger == nil {
		return
	}
	o.logger.Printf("sync delivered id=%d ops=%d waited=%s", id, ops, waited)
}
