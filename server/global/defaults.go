/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"github.com/FieldForms/FieldForms/common/interfaces"
)

const (
	ConfigServerSet         = "server_config"
	ConfigLogFile           = "log_file"
	ConfigLogStdout         = "log_stdout"
	ConfigLogRetention      = "log_retention"
	ConfigListen            = "listen"
	ConfigHTTPTimeout       = "http_timeout"
	ConfigHTTPIdleTimeout   = "http_idle_timeout"
	ConfigMaxConcurrent     = "max_concurrent"
	ConfigPenaltyBoxMin     = "penalty_box_min"
	ConfigPenaltyBoxMax     = "penalty_box_max"
	ConfigHandlerTimeout    = "handler_timeout"
	ConfigAccessTokenLife   = "access_token_life"
	ConfigRefreshTokenLife  = "refresh_token_life"
	ConfigStoreBackend      = "store_backend"
	ConfigSpreadsheetID     = "spreadsheet_id"
	ConfigCredentialsFile   = "credentials_file"
	ConfigBoltPath          = "bolt_path"
	ConfigAgentsSheet       = "agents_sheet"
	ConfigFormsSheet        = "forms_sheet"
	ConfigEventsSheet       = "events_sheet"
	ConfigCacheTTL          = "cache_ttl"
	ConfigDetectionTTL      = "detection_ttl"
	ConfigAllowedOrigins    = "allowed_origins"
	ConfigAllowInsecure     = "allow_insecure_origins"
	ConfigConfirmMarkers    = "confirmation_markers"
	ConfigCORSOrigins       = "cors_origins"
	ConfigExternalURL       = "external_url"
	ConfigDefaultEmailHost  = "default_email_domain"
	ConfigGeneratedPINLen   = "generated_secret_length"
	ConfigPrivate           = "server_private"
	ConfigJWTKey            = "jwt_key"
	BackendSheets           = "sheets"
	BackendBolt             = "bolt"
	DefaultBoltPath         = "./fieldforms.db"
	DefaultCredentialsFile  = "./service-account.json"
	DefaultAllowedOrigins   = "docs.google.com,forms.gle"
	DefaultConfirmMarkers   = "formResponse"
	DefaultEmailDomain      = "fieldforms.local"
	DefaultExternalURL      = "http://127.0.0.1:8080"
	DefaultDetectionSeconds = 3600
)

// setDefaults makes sure the sets exist, sets default values, and constraints
func setDefaults(c interfaces.Config) (interfaces.Parameters, interfaces.Parameters) {

	// Server configuration set
	sc := c.NewSet(ConfigServerSet)
	sc.SetConstraint(ConfigLogFile, 0, 0, "")                     // no log file by default
	sc.SetConstraint(ConfigLogStdout, 0, 0, true)                 // by default log to stdout
	sc.SetConstraint(ConfigLogRetention, 1, 0, 30)                // days
	sc.SetConstraint(ConfigListen, 0, 0, "127.0.0.1:8080")        // listen address
	sc.SetConstraint(ConfigExternalURL, 0, 0, DefaultExternalURL) // used to build script URLs
	sc.SetConstraint(ConfigHTTPTimeout, 0, 0, 30)                 // seconds
	sc.SetConstraint(ConfigHTTPIdleTimeout, 0, 0, 30)             // seconds
	sc.SetConstraint(ConfigMaxConcurrent, 0, 0, 100)              // concurrent connections, others will wait
	sc.SetConstraint(ConfigPenaltyBoxMin, 0, 0, 1000)             // milliseconds
	sc.SetConstraint(ConfigPenaltyBoxMax, 0, 0, 5000)             // milliseconds
	sc.SetConstraint(ConfigHandlerTimeout, 0, 0, 30)              // seconds
	sc.SetConstraint(ConfigAccessTokenLife, 1, 0, 720)            // minutes
	sc.SetConstraint(ConfigRefreshTokenLife, 1, 0, 10080)         // minutes
	sc.SetConstraint(ConfigStoreBackend, 0, 0, BackendSheets)     // sheets or bolt
	sc.SetConstraint(ConfigSpreadsheetID, 0, 0, "")               // required for sheets
	sc.SetConstraint(ConfigCredentialsFile, 0, 0, DefaultCredentialsFile)
	sc.SetConstraint(ConfigBoltPath, 0, 0, DefaultBoltPath)
	sc.SetConstraint(ConfigAgentsSheet, 0, 0, "Sheet1")
	sc.SetConstraint(ConfigFormsSheet, 0, 0, "Sheet2")
	sc.SetConstraint(ConfigEventsSheet, 0, 0, "Sheet3")
	sc.SetConstraint(ConfigCacheTTL, 0, 0, 10) // seconds, 0 disables the read cache
	sc.SetConstraint(ConfigDetectionTTL, 60, 0, DefaultDetectionSeconds)
	sc.SetConstraint(ConfigAllowedOrigins, 0, 0, DefaultAllowedOrigins)
	sc.SetConstraint(ConfigAllowInsecure, 0, 0, false)
	sc.SetConstraint(ConfigConfirmMarkers, 0, 0, DefaultConfirmMarkers)
	sc.SetConstraint(ConfigCORSOrigins, 0, 0, "")
	sc.SetConstraint(ConfigDefaultEmailHost, 0, 0, DefaultEmailDomain)
	sc.SetConstraint(ConfigGeneratedPINLen, 4, 12, 6)

	// Protected configuration items
	sp := c.NewSet(ConfigPrivate)
	sp.SetConstraint(ConfigJWTKey, 0, 0, "")

	// Return the sets
	return sc, sp
}
