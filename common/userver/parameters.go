/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package userver

import (
	"net/http"

	"github.com/gorilla/mux"
)

// GetParam retrieves a path variable such as {id}
//
//goland:noinspection GoUnusedExportedFunction
func GetParam(r *http.Request, param string) string {
	return mux.Vars(r)[param]
}

// SetParams attaches path variables to a request built outside the router
//
//goland:noinspection GoUnusedExportedFunction
func SetParams(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}
