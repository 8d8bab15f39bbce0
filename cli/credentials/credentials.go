/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

// Package credentials finds the agent code, secret and server URL and
// keeps the access and refresh tokens for the life of the process.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/FieldForms/FieldForms/cli/global"
)

var (
	accessToken  string
	refreshToken string
)

// Credentials used to log in
type Credentials struct {
	Code   string
	Secret string
	Server string
}

func SetAccessToken(token string) {
	accessToken = token
}

func SetRefreshToken(token string) {
	refreshToken = token
}

func GetAccessToken() string {
	return accessToken
}

func GetRefreshToken() string {
	return refreshToken
}

func AccessExpired() {
	accessToken = ""
}

func RefreshExpired() {
	refreshToken = ""
}

// Load reads ~/.fieldforms if it exists and then the environment. Values
// already in the environment take precedence over the file. The secret is
// prompted for when stdin is a terminal and no secret was found.
func Load() (Credentials, error) {
	if homeDir, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(homeDir, global.CredentialsFile))
	}
	return FromEnv(os.Getenv, promptSecret)
}

// FromEnv builds credentials from a lookup function. prompt is only
// called when the secret is missing and may be nil.
func FromEnv(getenv func(string) string, prompt func() (string, error)) (Credentials, error) {
	c := Credentials{
		Code:   strings.TrimSpace(getenv(global.EnvCode)),
		Secret: getenv(global.EnvSecret),
		Server: strings.TrimRight(strings.TrimSpace(getenv(global.EnvServer)), "/"),
	}

	if c.Server == "" {
		return c, fmt.Errorf("%s is not set", global.EnvServer)
	}
	if c.Code == "" {
		return c, fmt.Errorf("%s is not set", global.EnvCode)
	}

	if c.Secret == "" && prompt != nil {
		secret, err := prompt()
		if err != nil {
			return c, err
		}
		c.Secret = secret
	}
	if c.Secret == "" {
		return c, fmt.Errorf("%s is not set", global.EnvSecret)
	}
	return c, nil
}

// promptSecret reads the secret without echo
func promptSecret() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no secret available and stdin is not a terminal")
	}

	fmt.Print("Secret: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println() // Print newline after secret input
	if err != nil {
		return "", fmt.Errorf("error reading secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
