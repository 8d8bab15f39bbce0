//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

// Package service runs a long-lived process: a background function, a
// periodic task function, and a stop function invoked on SIGINT or SIGTERM.
package service

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/FieldForms/FieldForms/common/interfaces"
)

type Service struct {
	logger         interfaces.Logger
	ServiceName    string
	ServiceVersion string
	ServiceBuild   int
	TaskTicker     time.Duration
	BackgroundFunc func(interfaces.Logger)
	TasksFunc      func(interfaces.Logger)
	StopFunc       func(interfaces.Logger)
	SEid           uint32
}

// New returns a Service with defaults and options applied
//
//goland:noinspection GoUnusedExportedFunction
func New(options ...func(*Service) error) (*Service, error) {
	s := &Service{
		ServiceName:    "service",
		ServiceVersion: "unknown",
		TaskTicker:     time.Minute,
	}

	for _, op := range options {
		if err := op(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Start blocks until a termination signal arrives
func (s *Service) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run blocks until ctx is cancelled, running TasksFunc on every tick
func (s *Service) Run(ctx context.Context) error {
	if s.logger == nil {
		return errors.New("refusing to start service with nil logger")
	}
	if s.TaskTicker <= 0 {
		return errors.New("task ticker must be positive")
	}

	s.logger.Infof(s.SEid+1, "%s %s (build %d) service started", s.ServiceName, s.ServiceVersion, s.ServiceBuild)
	s.logger.Debugf(s.SEid+1, "Debug logging enabled")

	if s.BackgroundFunc != nil {
		go s.BackgroundFunc(s.logger)
	}

	ticker := time.NewTicker(s.TaskTicker)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.TasksFunc != nil {
				s.TasksFunc(s.logger)
			}
		case <-ctx.Done():
			s.logger.Infof(s.SEid+2, "%s %s (build %d) service stopping", s.ServiceName, s.ServiceVersion, s.ServiceBuild)
			if s.StopFunc != nil {
				s.StopFunc(s.logger)
			}
			s.logger.Infof(s.SEid+3, "%s %s (build %d) service stopped", s.ServiceName, s.ServiceVersion, s.ServiceBuild)
			return nil
		}
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithServiceName(name string) func(*Service) error {
	return func(s *Service) error {
		s.ServiceName = name
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithServiceVersion(version string, build int) func(*Service) error {
	return func(s *Service) error {
		s.ServiceVersion = version
		s.ServiceBuild = build
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger interfaces.Logger) func(*Service) error {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithTaskTicker(ticker time.Duration) func(*Service) error {
	return func(s *Service) error {
		s.TaskTicker = ticker
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithBackgroundFunc(f func(interfaces.Logger)) func(*Service) error {
	return func(s *Service) error {
		s.BackgroundFunc = f
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithTasksFunc(f func(interfaces.Logger)) func(*Service) error {
	return func(s *Service) error {
		s.TasksFunc = f
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithStopFunc(f func(interfaces.Logger)) func(*Service) error {
	return func(s *Service) error {
		s.StopFunc = f
		return nil
	}
}

//goland:noinspection GoUnusedExportedFunction
func WithSEid(seid uint32) func(*Service) error {
	return func(s *Service) error {
		s.SEid = seid
		return nil
	}
}
