package token

import (
	authmw "refdata/pkg/platform/middleware/auth"
)

// MiddlewareAdapter bridges the token service to the auth middleware's
// validator interface.
type MiddlewareAdapter struct {
	Service *Service
}

func (a MiddlewareAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.Service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{Subject: claims.Subject}, nil
}
