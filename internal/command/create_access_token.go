package command

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/verdantly/wellness-api/internal/datasources"
)

// MaxAccessTokensPerUser is the maximum number of active tokens a user can have.
const MaxAccessTokensPerUser = 10

// ErrTokenLimitExceeded is returned when a user has reached the maximum number of active tokens.
var ErrTokenLimitExceeded = errors.New("user has reached maximum number of active tokens")

// AccessTokenPrefix is the prefix for access tokens in the Authorization header.
const AccessTokenPrefix = "wellness_pat|"

// CreateAccessTokenRequest is the request for the CreateAccessToken command.
type CreateAccessTokenRequest struct {
	UserID int64
	Name   *string
}

// CreateAccessTokenResponse is the response from the CreateAccessToken command.
type CreateAccessTokenResponse struct {
	TokenID   string
	FullToken string
	Prefix    string
}

// CreateAccessToken handles creating new personal access tokens.
type CreateAccessToken struct {
	TokenCounter datasources.UserAccessTokenCounter
	TokenCreator datasources.AccessTokenCreator
}

// NewCreateAccessToken creates a properly initialized CreateAccessToken command.
func NewCreateAccessToken(
	tokenCounter datasources.UserAccessTokenCounter,
	tokenCreator datasources.AccessTokenCreator,
) *CreateAccessToken {
	return &CreateAccessToken{
		TokenCounter: tokenCounter,
		TokenCreator: tokenCreator,
	}
}

// Execute creates a new access token for the user. The full secret is
// returned once and only its hash is stored.
func (c *CreateAccessToken) Execute(ctx context.Context, req CreateAccessTokenRequest) (CreateAccessTokenResponse, error) {
	count, err := c.TokenCounter.CountUserActiveAccessTokens(ctx, req.UserID)
	if err != nil {
		return CreateAccessTokenResponse{}, fmt.Errorf("counting user tokens: %w", err)
	}

	if count >= MaxAccessTokensPerUser {
		return CreateAccessTokenResponse{}, ErrTokenLimitExceeded
	}

	// Cryptographically secure random token (32 bytes = 64 hex chars).
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return CreateAccessTokenResponse{}, fmt.Errorf("generating random token: %w", err)
	}

	tokenHex := hex.EncodeToString(tokenBytes)
	fullToken := AccessTokenPrefix + tokenHex

	hash := sha256.Sum256([]byte(fullToken))
	tokenHash := hex.EncodeToString(hash[:])

	// First 8 chars of the random portion identify the token in listings.
	tokenPrefix := tokenHex[:8]

	tokenID := uuid.New().String()

	if err := c.TokenCreator.CreateAccessToken(ctx, tokenID, req.UserID, tokenHash, tokenPrefix, req.Name, nil); err != nil {
		return CreateAccessTokenResponse{}, fmt.Errorf("creating token: %w", err)
	}

	return CreateAccessTokenResponse{
		TokenID:   tokenID,
		FullToken: fullToken,
		Prefix:    tokenPrefix,
	}, nil
}
