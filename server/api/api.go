//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/FieldForms/FieldForms/common/interfaces"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/common/userver"
	"github.com/FieldForms/FieldForms/server/data"
	"github.com/FieldForms/FieldForms/server/detect"
	"github.com/FieldForms/FieldForms/server/global"
)

// Gate issues and checks tokens
type Gate interface {
	Login(ctx context.Context, code, secret string) (data.LoginResult, error)
	Verify(token string) (schema.Identity, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type API struct {
	logger   interfaces.Logger
	conf     *global.ServerConfig
	data     *data.Data
	gate     Gate
	detector *detect.Detector
	server   *userver.HServer
}

func New(config *global.ServerConfig, d *data.Data, detector *detect.Detector, logger interfaces.Logger) *API {
	return &API{logger: logger, conf: config, data: d, gate: d, detector: detector}
}

// Start runs the API until Stop is called, restarting it after errors
func (a *API) Start() {
	for {
		a.logger.Infof(2001, "Starting API")
		err := a.startAPI()
		if err != nil {
			a.logger.Errorf(2003, "API error: %s", err.Error())
		} else {
			a.logger.Infof(2002, "API stopped")
			return
		}

		// Sleep before trying again
		time.Sleep(10 * time.Second)
	}
}

func (a *API) startAPI() error {
	s, err := a.Server()
	if err != nil {
		return err
	}
	a.server = s

	if err = s.Start(); err != nil {
		return fmt.Errorf("userver Start(): %w", err)
	}
	return nil
}

// Stop shuts down the HTTP server
func (a *API) Stop() error {
	if a.server == nil {
		return errors.New("API is not running")
	}
	return a.server.Stop()
}

// Handler returns the router without listening, for tests and embedding
func (a *API) Handler() (http.Handler, error) {
	s, err := a.Server()
	if err != nil {
		return nil, err
	}
	return s.Router()
}

// Server creates the HTTP server with every route registered
func (a *API) Server() (*userver.HServer, error) {

	// Obtain the listen address and check for command line override
	listen := a.conf.SC.Get(global.ConfigListen).String()
	if global.ListenOverride != "" {
		listen = global.ListenOverride
	}

	s, err := userver.New(
		userver.WithLogger(a.logger),
		userver.WithSEid(2500),
		userver.WithListen(listen),
		userver.WithHTTPTimeout(a.conf.SC.Get(global.ConfigHTTPTimeout).Int()),
		userver.WithHTTPIdleTimeout(a.conf.SC.Get(global.ConfigHTTPIdleTimeout).Int()),
		userver.WithHandlerTimeout(a.conf.SC.Get(global.ConfigHandlerTimeout).Int()),
		userver.WithMaxConcurrent(a.conf.SC.Get(global.ConfigMaxConcurrent).Int()),
		userver.WithPenaltyBox(
			a.conf.SC.Get(global.ConfigPenaltyBoxMin).Int(),
			a.conf.SC.Get(global.ConfigPenaltyBoxMax).Int()),
		userver.WithCORSOrigins(a.conf.SC.Get(global.ConfigCORSOrigins).SplitList()),
		userver.WithDebug(global.Debug),
		userver.WithAuthFunc(a.NewAuthFunc(a.AuthAnyRole())))
	if err != nil {
		return nil, err
	}

	if s == nil {
		return nil, errors.New("userver.New() returned nil")
	}

	s.AddRoutes(a.routes())
	return s, nil
}

// routes lists every API route. Fixed paths come before patterns that
// would otherwise match them.
func (a *API) routes() userver.Routes {
	admins := a.NewAuthFunc(a.AuthAdmins())
	anyRole := a.NewAuthFunc(a.AuthAnyRole())

	return userver.Routes{
		// Authentication
		{Name: "login", Methods: []string{"POST"}, Pattern: schema.EndpointLogin, JHandler: a.postLogin},
		{Name: "refresh", Methods: []string{"POST"}, Pattern: schema.EndpointRefresh, JHandler: a.postRefresh},
		{Name: "verify", Methods: []string{"GET"}, Pattern: schema.EndpointVerify, JHandler: a.getVerify, AuthFunc: anyRole},
		{Name: "logout", Methods: []string{"POST"}, Pattern: schema.EndpointLogout, JHandler: a.postLogout, AuthFunc: anyRole},

		// Agent management
		{Name: "agents", Methods: []string{"GET"}, Pattern: schema.EndpointAgents, JHandler: a.getAgents, AuthFunc: admins},
		{Name: "agents", Methods: []string{"POST"}, Pattern: schema.EndpointAgents, JHandler: a.postAgent, AuthFunc: admins},
		{Name: "agent", Methods: []string{"GET"}, Pattern: schema.EndpointAgents + "/{id}", JHandler: a.getAgent, AuthFunc: admins},
		{Name: "agent", Methods: []string{"PUT", "POST"}, Pattern: schema.EndpointAgents + "/{id}", JHandler: a.putAgent, AuthFunc: admins},
		{Name: "agent", Methods: []string{"DELETE"}, Pattern: schema.EndpointAgents + "/{id}", JHandler: a.deleteAgent, AuthFunc: admins},

		// Forms
		{Name: "formsStatus", Methods: []string{"GET"}, Pattern: schema.EndpointFormsStatus, JHandler: a.getFormsStatus, AuthFunc: admins},
		{Name: "formsAgent", Methods: []string{"GET"}, Pattern: schema.EndpointFormsAgent + "/{agentId}", JHandler: a.getFormsAgent, AuthFunc: anyRole},
		{Name: "forms", Methods: []string{"GET"}, Pattern: schema.EndpointForms, JHandler: a.getForms, AuthFunc: anyRole},
		{Name: "forms", Methods: []string{"POST"}, Pattern: schema.EndpointForms, JHandler: a.postForm, AuthFunc: admins},
		{Name: "formOpen", Methods: []string{"POST"}, Pattern: schema.EndpointForms + "/{id}/open", JHandler: a.postOpen, AuthFunc: anyRole},
		{Name: "formSubmit", Methods: []string{"POST"}, Pattern: schema.EndpointForms + "/{id}/submit", JHandler: a.postSubmit, AuthFunc: anyRole},
		{Name: "form", Methods: []string{"GET"}, Pattern: schema.EndpointForms + "/{id}", JHandler: a.getForm, AuthFunc: anyRole},
		{Name: "form", Methods: []string{"PUT"}, Pattern: schema.EndpointForms + "/{id}", JHandler: a.putForm, AuthFunc: admins},
		{Name: "form", Methods: []string{"DELETE"}, Pattern: schema.EndpointForms + "/{id}", JHandler: a.deleteForm, AuthFunc: admins},

		// Completion detection
		{Name: "detectStorage", Methods: []string{"POST"}, Pattern: schema.EndpointDetectStorage, JHandler: a.postStorage, AuthFunc: anyRole},
		{Name: "detectWatch", Methods: []string{"POST"}, Pattern: schema.EndpointDetect + "/{session}/watch", JHandler: a.postWatch, AuthFunc: anyRole},
		{Name: "detectMessage", Methods: []string{"POST"}, Pattern: schema.EndpointDetect + "/{session}/message", JHandler: a.postMessage, AuthFunc: anyRole},
		{Name: "detectScript", Methods: []string{"GET"}, Pattern: schema.EndpointDetect + "/{session}/script", Handler: http.HandlerFunc(a.getScript), AuthFunc: anyRole},
		{Name: "detectCancel", Methods: []string{"DELETE"}, Pattern: schema.EndpointDetect + "/{session}", JHandler: a.deleteSession, AuthFunc: anyRole},

		// Service
		{Name: "health", Methods: []string{"GET"}, Pattern: schema.EndpointHealth, JHandler: a.getHealth},
		{Name: "swagger", Methods: []string{"GET"}, Pattern: schema.EndpointSwagger, Handler: http.HandlerFunc(a.getSwagger)},
	}
}

// Close closes open files, etc.
func (a *API) Close() {
	a.data.Close()
}
