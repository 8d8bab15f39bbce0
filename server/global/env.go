//
// Copyright (c) 2025-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package global

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/FieldForms/FieldForms/common/interfaces"
)

// EnvOverrides are FIELDFORMS_* environment variables. Unset fields leave
// the stored configuration alone.
type EnvOverrides struct {
	Listen          string `envconfig:"LISTEN"`
	LogFile         string `envconfig:"LOG_FILE"`
	StoreBackend    string `envconfig:"STORE_BACKEND"`
	SpreadsheetID   string `envconfig:"SPREADSHEET_ID"`
	CredentialsFile string `envconfig:"CREDENTIALS_FILE"`
	BoltPath        string `envconfig:"BOLT_PATH"`
	AgentsSheet     string `envconfig:"AGENTS_SHEET"`
	FormsSheet      string `envconfig:"FORMS_SHEET"`
	EventsSheet     string `envconfig:"EVENTS_SHEET"`
	ExternalURL     string `envconfig:"EXTERNAL_URL"`
	AllowedOrigins  string `envconfig:"ALLOWED_ORIGINS"`
	CORSOrigins     string `envconfig:"CORS_ORIGINS"`
	CacheTTL        *int   `envconfig:"CACHE_TTL"`
	DetectionTTL    *int   `envconfig:"DETECTION_TTL"`
	LogStdout       *bool  `envconfig:"LOG_STDOUT"`
}

// ApplyEnv reads FIELDFORMS_* variables into the server configuration set
func ApplyEnv(sc interfaces.Parameters) error {
	var env EnvOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}

	str := map[string]string{
		ConfigListen:          env.Listen,
		ConfigLogFile:         env.LogFile,
		ConfigStoreBackend:    env.StoreBackend,
		ConfigSpreadsheetID:   env.SpreadsheetID,
		ConfigCredentialsFile: env.CredentialsFile,
		ConfigBoltPath:        env.BoltPath,
		ConfigAgentsSheet:     env.AgentsSheet,
		ConfigFormsSheet:      env.FormsSheet,
		ConfigEventsSheet:     env.EventsSheet,
		ConfigExternalURL:     env.ExternalURL,
		ConfigAllowedOrigins:  env.AllowedOrigins,
		ConfigCORSOrigins:     env.CORSOrigins,
	}
	for k, v := range str {
		if v != "" {
			sc.Set(k, v)
		}
	}

	if env.CacheTTL != nil {
		sc.Set(ConfigCacheTTL, *env.CacheTTL)
	}
	if env.DetectionTTL != nil {
		sc.Set(ConfigDetectionTTL, *env.DetectionTTL)
	}
	if env.LogStdout != nil {
		sc.Set(ConfigLogStdout, *env.LogStdout)
	}
	return nil
}
