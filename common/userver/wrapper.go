/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/FieldForms/FieldForms/common/fields"
)

type contextKey string

const authDetailsKey contextKey = "authDetails"

// ResponseWriterWrapper wraps a http.ResponseWriter to capture the status code
type ResponseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code
func (rw *ResponseWriterWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// AuthDetails returns whatever the route's AuthFunc attached to the request
func AuthDetails(req *http.Request) any {
	return req.Context().Value(authDetailsKey)
}

// WithAuthDetails attaches details to a request the same way the wrapper does.
// It exists for handlers invoked outside the router, mainly in tests.
func WithAuthDetails(req *http.Request, details any) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), authDetailsKey, details))
}

// Wrapper wraps a http.Handler to add standard headers, logging, and optionally authentication
func (s *HServer) Wrapper(handlerName string, h http.Handler, authFunc AuthFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		startTime := time.Now()
		src := RemoteIP(req)

		// Headers must be in place before the handler writes the status line
		for _, header := range s.Headers {
			w.Header().Set(header.Key, header.Value)
		}
		s.setCORS(w, req)

		if authFunc != nil {
			authenticated, failMsg, details := authFunc(src, req.Header.Get("Authorization"))
			if !authenticated {
				s.Logger.Warning(s.SEid+12,
					"authentication failure",
					fields.NewFields(
						fields.NewField("src_ip", src),
						fields.NewField("method", req.Method),
						fields.NewField("uri", stripQuery(req.RequestURI)),
						fields.NewField("handler", handlerName)))

				s.PenaltyBox()

				w.Header().Set("Content-Type", "application/json; charset=UTF-8")
				w.WriteHeader(http.StatusUnauthorized)
				if failMsg != nil {
					_, _ = w.Write(failMsg)
				}
				return
			}
			req = WithAuthDetails(req, details)
		}

		ctx, cancel := context.WithTimeout(req.Context(), time.Duration(s.HandlerTimeout)*time.Second)
		defer cancel()
		req = req.WithContext(ctx)

		rw := &ResponseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		h.ServeHTTP(rw, req)

		logFields := fields.NewFields(
			fields.NewField("code", rw.statusCode),
			fields.NewField("src_ip", src),
			fields.NewField("method", req.Method),
			fields.NewField("uri", stripQuery(req.RequestURI)),
			fields.NewField("handler", handlerName),
			fields.NewField("duration", fmt.Sprintf("%.4f", time.Since(startTime).Seconds())))

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logFields.Append(fields.NewField("timeout", "true"))
		}

		s.Logger.Info(s.SEid+10, "HTTP", logFields)
	})
}

// stripQuery removes parameters so that tokens in query strings are never logged
func stripQuery(uri string) string {
	return strings.Split(uri, "?")[0]
}
