// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scheduler runs the in-process publish-scheduled sweep on a cron
// schedule. Deployments that prefer an external cron invoker can disable it
// and call the internal HTTP endpoint instead; both paths converge on the
// same idempotent service operation.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"irportal/internal/news"
)

// sweepTimeout bounds a single publish sweep.
const sweepTimeout = 30 * time.Second

// Scheduler wraps a cron runner around the news service.
type Scheduler struct {
	cron *cron.Cron
	svc  *news.Service
}

// New creates a scheduler that invokes the publish-scheduled sweep on the
// given cron spec (standard 5-field syntax). Returns an error if the spec
// does not parse.
func New(spec string, svc *news.Service) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, svc: svc}

	if _, err := c.AddFunc(spec, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("publish scheduler started")
}

// Stop halts the cron runner and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("publish scheduler stopped")
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	published, err := s.svc.PublishScheduled(ctx, time.Time{})
	if err != nil {
		slog.Error("publish sweep failed", "error", err)
		return
	}
	if len(published) > 0 {
		slog.Info("publish sweep completed", "published", len(published))
	}
}
