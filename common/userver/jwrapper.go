/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"encoding/json"
	"net/http"

	"github.com/FieldForms/FieldForms/common/fields"
)

// JWrapper adapts a JHandler to a standard http.Handler by
// marshalling the returned JSONData
func (s *HServer) JWrapper(name string, h JHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respData := h(req)

		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		w.WriteHeader(respData.HTTPCode)
		if err := json.NewEncoder(w).Encode(respData.JSONData); err != nil {
			s.Logger.Error(s.SEid+11,
				"Error writing response",
				fields.NewFields(
					fields.Error(err),
					fields.NewField("src_ip", RemoteIP(req)),
					fields.NewField("method", req.Method),
					fields.NewField("uri", stripQuery(req.RequestURI)),
					fields.NewField("handler", name)))
		}
	})
}
