package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

const userColumns = "id, email, display_name, COALESCE(auth0_subject, ''), is_admin, created_at"

func scanUser(scanner interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := scanner.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Auth0Subject, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

func (r *Repository) GetUser(ctx context.Context, userID int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", userID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, datasources.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("fetching user: %w", err)
	}
	return u, nil
}

func (r *Repository) GetUserByAuth0Subject(ctx context.Context, subject string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE auth0_subject = ?", subject)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, datasources.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("fetching user by subject: %w", err)
	}
	return u, nil
}

func (r *Repository) GetProfileStats(ctx context.Context, userID int64) (domain.ProfileStats, error) {
	var stats domain.ProfileStats
	err := r.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM orders WHERE user_id = ?),
			(SELECT COUNT(*) FROM workshop_registrations WHERE user_id = ?),
			(SELECT COUNT(*) FROM discussions WHERE user_id = ?),
			(SELECT COUNT(DISTINCT content_id) FROM activity_events
				WHERE user_id = ? AND content_type = ?)`,
		userID, userID, userID, userID, string(domain.ContentTypeArticle),
	).Scan(&stats.Orders, &stats.WorkshopsRegistered, &stats.DiscussionPosts, &stats.ArticlesRead)
	if err != nil {
		return domain.ProfileStats{}, fmt.Errorf("fetching profile stats: %w", err)
	}
	return stats, nil
}
