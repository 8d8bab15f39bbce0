/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package userver implements a production grade HTTP server using the
// standard Go libraries and gorilla/mux. Each route is either a
// traditional http.Handler or a JHandler that returns an object to be
// marshalled to JSON. Authentication, logging, timeouts, CORS and the
// penalty box are applied uniformly by the wrappers.
package userver

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/ulogger"
)

// New returns a HServer struct with default values and options applied
func New(options ...func(*HServer) error) (*HServer, error) {
	s := &HServer{
		Listen:           "127.0.0.1:8080",
		HTTPTimeout:      60,
		HTTPIdleTimeout:  60,
		HandlerTimeout:   60,
		MaxConcurrent:    100,
		HealthHandler:    true,
		DefaultHeaders:   true,
		TLSStrongCiphers: true,
	}

	// Process options (see options.go)
	for _, op := range options {
		if err := op(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Router builds the gorilla/mux router for the registered routes.
// Start uses it, and tests can mount it on an httptest server.
func (s *HServer) Router() (http.Handler, error) {
	if s.Logger == nil {
		var err error
		s.Logger, err = ulogger.New(
			ulogger.WithLogFile(s.LogFile),
			ulogger.WithLogStdout(true),
			ulogger.WithRetention(0),
			ulogger.WithDebug(s.Debug))
		if err != nil {
			return nil, err
		}
	}

	if s.DefaultHeaders && !s.hasHeader("Cache-Control") {
		s.AddHeader("Cache-Control", "no-cache, no-store, must-revalidate")
		s.AddHeader("Pragma", "no-cache")
		s.AddHeader("Expires", "0")
	}

	router := mux.NewRouter()
	router.StrictSlash(s.StrictSlash)

	// Preflight requests never carry credentials
	if len(s.CORSOrigins) > 0 {
		router.Methods(http.MethodOptions).Handler(s.Wrapper("preflight", http.HandlerFunc(s.preflight), nil))
	}

	if s.HealthHandler {
		router.Handle("/health", s.Wrapper("health", s.JWrapper("health", s.HandlerHealth), nil)).Methods(http.MethodGet)
	}

	for _, route := range s.Routes {
		switch {
		case route.JHandler != nil:
			router.Handle(route.Pattern, s.Wrapper(route.Name, s.JWrapper(route.Name, route.JHandler), route.AuthFunc)).Methods(route.Methods...)
		case route.Handler != nil:
			router.Handle(route.Pattern, s.Wrapper(route.Name, route.Handler, route.AuthFunc)).Methods(route.Methods...)
		}
	}

	router.NotFoundHandler = s.Wrapper("Handler404", s.JWrapper("Handler404", s.Handler404), s.AuthFunc)
	router.MethodNotAllowedHandler = s.Wrapper("Handler405", s.JWrapper("Handler405", s.Handler405), s.AuthFunc)
	return router, nil
}

// Start starts the server and blocks until it stops
func (s *HServer) Start() error {
	router, err := s.Router()
	if err != nil {
		return err
	}

	s.Logger.Info(s.SEid+1,
		"Starting server", fields.NewFields(fields.NewField("listen", s.Listen)))

	serv := &http.Server{
		Addr:              s.Listen,
		Handler:           router,
		ReadHeaderTimeout: time.Duration(s.HTTPTimeout) * time.Second,
		ReadTimeout:       time.Duration(s.HTTPTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.HTTPTimeout) * time.Second,
		IdleTimeout:       time.Duration(s.HTTPIdleTimeout) * time.Second,
	}

	if s.TLS {
		if s.TLSCertFile == "" || s.TLSKeyFile == "" {
			return errors.New("TLS cert or key file not specified")
		}

		cert, err := tls.LoadX509KeyPair(s.TLSCertFile, s.TLSKeyFile)
		if err != nil {
			return err
		}

		tlsConfig := tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
		if s.TLSStrongCiphers {
			tlsConfig.CipherSuites = []uint16{
				tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
				tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
				tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
				tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
			}
		}
		serv.TLSConfig = &tlsConfig
	}

	err = s.listen(serv)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gives in-flight requests ten seconds to finish
func (s *HServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.server == nil {
		return errors.New("server is not running")
	}

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

// AddRoutes adds routes to the router
func (s *HServer) AddRoutes(routes Routes) {
	for _, route := range routes {
		s.AddRoute(route)
	}
}

// AddRoute adds a route to the router. Routes are matched in the order
// added, so fixed paths must be added before patterns that would shadow them.
func (s *HServer) AddRoute(route Route) {
	s.Routes = append(s.Routes, route)
}

// AddHeader adds a header to every response
func (s *HServer) AddHeader(key, value string) {
	s.Headers = append(s.Headers, Header{key, value})
}

func (s *HServer) hasHeader(key string) bool {
	for _, h := range s.Headers {
		if h.Key == key {
			return true
		}
	}
	return false
}

// listen is a replacement for ListenAndServe that caps concurrent
// connections with netutil.LimitListener. MaxConcurrent 0 means no limit.
func (s *HServer) listen(server *http.Server) error {
	s.server = server

	addr := s.server.Addr
	if addr == "" {
		addr = ":http"
	}

	rawListener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	listener := rawListener
	if s.MaxConcurrent > 0 {
		listener = netutil.LimitListener(rawListener, s.MaxConcurrent)
	}

	if s.TLS {
		return s.server.ServeTLS(listener, "", "")
	}
	return s.server.Serve(listener)
}
