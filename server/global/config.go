/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package global

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/FieldForms/FieldForms/common/interfaces"
	"github.com/FieldForms/FieldForms/common/uconfig"
)

type ServerConfig struct {
	C  interfaces.Config     // Config object
	SC interfaces.Parameters // Server configuration
	SP interfaces.Parameters // Server private configuration
}

// Config creates the configuration object, sets defaults, loads the
// configuration file and applies environment overrides
func Config() (*ServerConfig, error) {
	// A missing .env is normal
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return &ServerConfig{}, fmt.Errorf("unable to read .env: %w", err)
	}

	// Sets must exist before loading so that stored values
	// are merged into constrained parameters
	c, err := uconfig.New()
	if err != nil {
		return &ServerConfig{}, err
	}
	sc, sp := setDefaults(c)

	err = uconfig.WithFindOrCreate(UnixConfigFiles)(c)
	if err != nil {
		return &ServerConfig{}, err
	}

	conf := &ServerConfig{C: c, SC: sc, SP: sp}
	if err = conf.finish(); err != nil {
		return &ServerConfig{}, err
	}

	// Attempt to checkpoint the config before environment overrides
	// so that secrets passed by environment are not persisted
	err = c.Checkpoint()
	if err != nil {
		return &ServerConfig{}, fmt.Errorf("unable to checkpoint config: %w", err)
	}

	if err = ApplyEnv(sc); err != nil {
		return &ServerConfig{}, err
	}
	return conf, nil
}

// Memory returns a file-less configuration with defaults, used by tests
// and console commands that should not touch the config file
func Memory() *ServerConfig {
	c := uconfig.Null()
	sc, sp := setDefaults(c)
	conf := &ServerConfig{C: c, SC: sc, SP: sp}
	_ = conf.finish()
	return conf
}

// finish generates values that must exist
func (c *ServerConfig) finish() error {
	if c.SP.Get(ConfigJWTKey).String() == "" {
		key, err := GenerateToken()
		if err != nil {
			return err
		}
		c.SP.Set(ConfigJWTKey, key)
	}
	return nil
}

// GenerateToken creates a new random token
func GenerateToken() (string, error) {
	// Create a byte slice to hold the random data
	token := make([]byte, TokenLength)

	// Read random data into the byte slice
	if _, err := io.ReadFull(rand.Reader, token); err != nil {
		return "", err
	}

	// Encode the byte slice in base64
	return base64.URLEncoding.EncodeToString(token), nil
}

func (c *ServerConfig) Checkpoint() error {
	return c.C.Checkpoint()
}
