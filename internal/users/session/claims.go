// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Info describes the stored access token for display purposes.
type Info struct {
	// Subject is the user ID the token was minted for.
	Subject string
	// IssuedAt is when the token was minted, if the claim is present.
	IssuedAt time.Time
	// ExpiresAt is when the server will stop honoring the token, if the
	// claim is present. The client itself never acts on it.
	ExpiresAt time.Time
}

/*
SessionInfo decodes the stored access token's registered claims.

Description: The token is parsed WITHOUT signature verification — the client
holds no verification key, and the decoded claims feed display surfaces only
("session expires at 18:04"). Authorization decisions always belong to the
server; a request with a bad token simply fails there.

Parameters:
  - context: context.Context

Returns:
  - *Info: Decoded claims
  - error: No stored token, or a token that is not a well-formed JWT
*/
func (manager *Manager) SessionInfo(context context.Context) (*Info, error) {
	pair, err := manager.tokens.Load(context)
	if err != nil {
		return nil, fmt.Errorf("session_load_tokens_failed: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, fmt.Errorf("session_info_unavailable: no stored token")
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(pair.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("session_token_malformed: %w", err)
	}

	info := &Info{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info, nil
}
