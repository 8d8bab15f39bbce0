/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"net/http"
	"os"
)

// HandlerHealth implements a health check for load balancers.
// Creating DownFile takes the instance out of rotation.
func (s *HServer) HandlerHealth(_ *http.Request) JResponse {
	r := Response{Status: "ok", Code: http.StatusOK, Details: "health check ok"}

	if s.DownFile != "" {
		if _, err := os.Stat(s.DownFile); err == nil {
			r = Response{Status: "down", Code: http.StatusServiceUnavailable, Details: "server is shutting down"}
		}
	}
	return JResponse{HTTPCode: r.Code, JSONData: r}
}

func (s *HServer) Handler404(_ *http.Request) JResponse {
	s.PenaltyBox()
	return JResponse{
		HTTPCode: http.StatusNotFound,
		JSONData: Response{Details: "object does not exist", Status: "error", Code: http.StatusNotFound}}
}

func (s *HServer) Handler405(_ *http.Request) JResponse {
	s.PenaltyBox()
	return JResponse{
		HTTPCode: http.StatusMethodNotAllowed,
		JSONData: Response{Details: "method not allowed", Status: "error", Code: http.StatusMethodNotAllowed}}
}
