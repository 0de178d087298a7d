package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

func (r *Repository) CreateAccessToken(
	ctx context.Context, tokenID string, userID int64, tokenHash, prefix string, name *string, expiresAt *string,
) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access_tokens (id, user_id, token_hash, prefix, name, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, NOW(), ?)`,
		tokenID, userID, tokenHash, prefix, name, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("inserting access token: %w", err)
	}
	return nil
}

func (r *Repository) GetAccessTokenByHash(ctx context.Context, tokenHash string) (domain.AccessToken, error) {
	var token domain.AccessToken
	var name sql.NullString
	var lastUsedAt, expiresAt, revokedAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, prefix, name, created_at, last_used_at, expires_at, revoked_at
		FROM access_tokens
		WHERE token_hash = ?`,
		tokenHash,
	).Scan(
		&token.ID, &token.UserID, &token.TokenHash, &token.Prefix, &name,
		&token.CreatedAt, &lastUsedAt, &expiresAt, &revokedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AccessToken{}, datasources.ErrNotFound
	}
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("fetching access token: %w", err)
	}

	if name.Valid {
		token.Name = &name.String
	}
	token.LastUsedAt = nullTimePtr(lastUsedAt)
	token.ExpiresAt = nullTimePtr(expiresAt)
	token.RevokedAt = nullTimePtr(revokedAt)
	return token, nil
}

func (r *Repository) UpdateAccessTokenLastUsed(ctx context.Context, tokenID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE access_tokens SET last_used_at = NOW() WHERE id = ?", tokenID)
	if err != nil {
		return fmt.Errorf("updating token last used: %w", err)
	}
	return nil
}

func (r *Repository) CountUserActiveAccessTokens(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		FROM access_tokens
		WHERE user_id = ? AND revoked_at IS NULL AND (expires_at IS NULL OR expires_at > NOW())`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting access tokens: %w", err)
	}
	return count, nil
}

func (r *Repository) ListAccessTokens(ctx context.Context, userID int64) ([]domain.AccessToken, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, token_hash, prefix, name, created_at, last_used_at, expires_at, revoked_at
		FROM access_tokens
		WHERE user_id = ? AND revoked_at IS NULL
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("running access tokens query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tokens := []domain.AccessToken{}
	for rows.Next() {
		var token domain.AccessToken
		var name sql.NullString
		var lastUsedAt, expiresAt, revokedAt sql.NullTime
		if err := rows.Scan(
			&token.ID, &token.UserID, &token.TokenHash, &token.Prefix, &name,
			&token.CreatedAt, &lastUsedAt, &expiresAt, &revokedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning access tokens: %w", err)
		}
		if name.Valid {
			token.Name = &name.String
		}
		token.LastUsedAt = nullTimePtr(lastUsedAt)
		token.ExpiresAt = nullTimePtr(expiresAt)
		token.RevokedAt = nullTimePtr(revokedAt)
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return tokens, nil
}

func (r *Repository) RevokeAccessToken(ctx context.Context, userID int64, tokenID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE access_tokens SET revoked_at = NOW() WHERE id = ? AND user_id = ? AND revoked_at IS NULL",
		tokenID, userID,
	)
	if err != nil {
		return fmt.Errorf("revoking access token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return datasources.ErrNotFound
	}
	return nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
