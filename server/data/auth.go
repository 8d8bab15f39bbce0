/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/FieldForms/FieldForms/common/fields"
	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/server/rowstore"
)

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Identity     schema.Identity
}

// Login authenticates an agent code and secret. Unknown codes, agents
// that are not active and wrong secrets all return ErrInvalidCredentials.
// A store failure is returned as is so that the caller can ask for a retry.
func (d *Data) Login(ctx context.Context, code, secret string) (LoginResult, error) {
	agents, err := d.loadAgents(ctx)
	if err != nil {
		return LoginResult{}, err
	}

	code = NormalizeCode(code)
	var match *agentRecord
	for i := range agents {
		if agents[i].active() && agents[i].Code == code && code != "" {
			match = &agents[i]
			break
		}
	}

	if match == nil || !CheckSecret(match.secret, secret) {
		// Impose a random delay to prevent timing attacks and make
		// brute force attacks take longer
		d.delay()
		d.logger.Info(3010, "login failed", fields.NewFields(fields.NewField("code", code)))
		return LoginResult{}, ErrInvalidCredentials
	}

	role := schema.ParseRole(match.Role)
	req := tokenRequest{subject: match.ID, role: role, code: match.Code, name: match.Name}

	req.purpose = schema.TokenPurposeAccess
	access, err := d.createToken(req)
	if err != nil {
		return LoginResult{}, err
	}

	req.purpose = schema.TokenPurposeRefresh
	refresh, err := d.createToken(req)
	if err != nil {
		return LoginResult{}, err
	}

	d.logger.Info(3011, "login", fields.NewFields(fields.NewField("id", match.ID), fields.NewField("role", match.Role)))
	return LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		Identity: schema.Identity{
			ID:   match.ID,
			Code: match.Code,
			Name: match.Name,
			Role: schema.RoleName(role),
		},
	}, nil
}

// Verify returns the identity carried by a valid access token
func (d *Data) Verify(token string) (schema.Identity, error) {
	claims, err := d.ValidateToken(token, schema.TokenPurposeAccess)
	if err != nil {
		return schema.Identity{}, err
	}
	return identity(claims), nil
}

// Refresh returns a new access token for a valid refresh token whose
// agent is still active. The role is taken from the current agent row.
func (d *Data) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := d.ValidateToken(refreshToken, schema.TokenPurposeRefresh)
	if err != nil {
		return "", err
	}

	agents, err := d.loadAgents(rowstore.NoCache(ctx))
	if err != nil {
		return "", err
	}
	a, ok := findAgent(agents, claims.Subject)
	if !ok || !a.active() {
		return "", errors.Join(ErrInvalidToken, errors.New("subject is not active"))
	}

	return d.createToken(tokenRequest{
		subject: a.ID,
		role:    schema.ParseRole(a.Role),
		code:    a.Code,
		name:    a.Name,
		purpose: schema.TokenPurposeAccess,
	})
}

// delay imposes a random delay between 0 and 1000ms
func (d *Data) delay() {
	if d.noDelay {
		return
	}
	time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)
}
