package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/verdantly/wellness-api/internal/domain"
)

func (r *Repository) InsertActivityEvent(ctx context.Context, event domain.ActivityEvent) (int64, error) {
	var userID sql.NullInt64
	if event.UserID > 0 {
		userID = sql.NullInt64{Int64: event.UserID, Valid: true}
	}
	var categoryID sql.NullInt64
	if event.CategoryID > 0 {
		categoryID = sql.NullInt64{Int64: event.CategoryID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_events
			(user_id, ip_address, activity_type, content_type, content_id, category_id, time_spent_seconds, viewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, event.IPAddress, string(event.ActivityType), string(event.ContentType),
		event.ContentID, categoryID, event.TimeSpentSeconds, event.ViewedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting activity event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading activity event insert ID: %w", err)
	}
	return id, nil
}

// ResolveContentCategory looks up the category owning a piece of content.
// Unresolvable lookups return 0 with a nil error; the event is stored with a
// NULL category in that case.
func (r *Repository) ResolveContentCategory(
	ctx context.Context, contentType domain.ContentType, contentID int64,
) (int64, error) {
	var table string
	switch contentType {
	case domain.ContentTypeArticle:
		table = "articles"
	case domain.ContentTypeProduct:
		table = "products"
	default:
		return 0, nil
	}

	var categoryID sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT category_id FROM "+table+" WHERE id = ?", contentID,
	).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("resolving %s category: %w", contentType, err)
	}
	if !categoryID.Valid {
		return 0, nil
	}
	return categoryID.Int64, nil
}

// AddInterest adds an increment to the (user, category) score through a
// unique-key upsert, so concurrent increments for the same pair cannot lose
// updates.
func (r *Repository) AddInterest(ctx context.Context, userID, categoryID int64, increment float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO interest_scores (user_id, category_id, score, last_updated)
		VALUES (?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE score = score + VALUES(score), last_updated = NOW()`,
		userID, categoryID, increment,
	)
	if err != nil {
		return fmt.Errorf("upserting interest score: %w", err)
	}
	return nil
}

// TopInterests returns the user's highest-scored categories. Ties break on
// category_id ascending so the ordering is deterministic.
func (r *Repository) TopInterests(ctx context.Context, userID int64, limit int) ([]domain.CategoryInterest, error) {
	sb := sqlbuilder.Select("s.category_id", "c.name", "s.score", "s.last_updated")
	sb.From("interest_scores s")
	sb.Join("categories c", "c.id = s.category_id")
	sb.Where(sb.Equal("s.user_id", userID))
	sb.OrderBy("s.score DESC", "s.category_id ASC")
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running top interests query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	interests := []domain.CategoryInterest{}
	for rows.Next() {
		var interest domain.CategoryInterest
		if err := rows.Scan(
			&interest.CategoryID,
			&interest.CategoryName,
			&interest.Score,
			&interest.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scanning interests: %w", err)
		}
		interests = append(interests, interest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return interests, nil
}
