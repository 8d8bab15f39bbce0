/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package data

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/FieldForms/FieldForms/common/schema"
	"github.com/FieldForms/FieldForms/server/global"
)

// CustomClaims includes jwt.RegisteredClaims and adds custom fields
type CustomClaims struct {
	jwt.RegisteredClaims
	Role      int    `json:"role"`
	AgentCode string `json:"agent_code"`
	Name      string `json:"name,omitempty"`
	Purpose   string `json:"purpose"`
}

type tokenRequest struct {
	subject string
	role    int
	code    string
	name    string
	purpose string
}

// createToken signs a token for the subject with the lifetime configured for its purpose
func (d *Data) createToken(request tokenRequest) (string, error) {
	var lifeTime time.Duration

	// Get the appropriate lifetime
	switch request.purpose {
	case schema.TokenPurposeAccess:
		lifeTime = d.conf.SC.Get(global.ConfigAccessTokenLife).Minutes()
	case schema.TokenPurposeRefresh:
		lifeTime = d.conf.SC.Get(global.ConfigRefreshTokenLife).Minutes()
	default:
		return "", errors.New("invalid token purpose")
	}

	// Set NotBefore 5 minutes in the past to allow for clock skew
	now := d.now()
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   request.subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Minute)),
			Issuer:    global.Name,
			ID:        "T-" + uuid.New().String(),
		},
		Role:      request.role,
		AgentCode: request.code,
		Name:      request.name,
		Purpose:   request.purpose,
	}

	if lifeTime > 0 {
		claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(lifeTime))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(d.jwtKey)
}

// ValidateToken validates the supplied token including its purpose
func (d *Data) ValidateToken(tokenString string, purpose string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return d.jwtKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(global.Name),
		jwt.WithTimeFunc(d.now))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Purpose != purpose || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func identity(c *CustomClaims) schema.Identity {
	return schema.Identity{
		ID:   c.Subject,
		Code: c.AgentCode,
		Name: c.Name,
		Role: schema.RoleName(c.Role),
	}
}
