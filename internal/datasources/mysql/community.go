package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

func (r *Repository) ListUpcomingWorkshops(ctx context.Context, limit int) ([]domain.Workshop, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT w.id, w.title, w.description, w.host_name, w.category_id, c.name,
			w.scheduled_at, w.capacity,
			(SELECT COUNT(*) FROM workshop_registrations reg WHERE reg.workshop_id = w.id)
		FROM workshops w
		JOIN categories c ON c.id = w.category_id
		WHERE w.scheduled_at >= NOW()
		ORDER BY w.scheduled_at ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("running workshops query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	workshops := []domain.Workshop{}
	for rows.Next() {
		var w domain.Workshop
		if err := rows.Scan(
			&w.ID, &w.Title, &w.Description, &w.HostName, &w.CategoryID, &w.CategoryName,
			&w.ScheduledAt, &w.Capacity, &w.Registered,
		); err != nil {
			return nil, fmt.Errorf("scanning workshops: %w", err)
		}
		workshops = append(workshops, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return workshops, nil
}

// RegisterForWorkshop inserts a registration inside a transaction holding the
// workshop row lock, so the capacity check cannot race.
func (r *Repository) RegisterForWorkshop(ctx context.Context, workshopID, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var capacity int64
	err = tx.QueryRowContext(ctx,
		"SELECT capacity FROM workshops WHERE id = ? FOR UPDATE", workshopID,
	).Scan(&capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return datasources.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("locking workshop: %w", err)
	}

	var registered int64
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workshop_registrations WHERE workshop_id = ?", workshopID,
	).Scan(&registered)
	if err != nil {
		return fmt.Errorf("counting registrations: %w", err)
	}
	if registered >= capacity {
		return datasources.ErrWorkshopFull
	}

	res, err := tx.ExecContext(ctx,
		`INSERT IGNORE INTO workshop_registrations (workshop_id, user_id, created_at)
		VALUES (?, ?, NOW())`,
		workshopID, userID,
	)
	if err != nil {
		return fmt.Errorf("inserting registration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return datasources.ErrAlreadyRegistered
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (r *Repository) CreateWorkshop(ctx context.Context, workshop domain.Workshop) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO workshops (title, description, host_name, category_id, scheduled_at, capacity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())`,
		workshop.Title, workshop.Description, workshop.HostName,
		workshop.CategoryID, workshop.ScheduledAt, workshop.Capacity,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting workshop: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading workshop insert ID: %w", err)
	}
	return id, nil
}

func (r *Repository) ListDiscussions(ctx context.Context, page, pageSize int) ([]domain.Discussion, error) {
	limit, offset := paginationToLimitOffset(page, pageSize)
	rows, err := r.db.QueryContext(ctx,
		`SELECT d.id, d.user_id, u.display_name, d.title, d.body,
			COALESCE(d.category_id, 0),
			(SELECT COUNT(*) FROM discussion_replies dr WHERE dr.discussion_id = d.id),
			d.created_at
		FROM discussions d
		JOIN users u ON u.id = d.user_id
		ORDER BY d.created_at DESC, d.id DESC
		LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("running discussions query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	discussions := []domain.Discussion{}
	for rows.Next() {
		var d domain.Discussion
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.AuthorName, &d.Title, &d.Body,
			&d.CategoryID, &d.ReplyCount, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning discussions: %w", err)
		}
		discussions = append(discussions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return discussions, nil
}

func (r *Repository) GetDiscussion(
	ctx context.Context, discussionID int64,
) (domain.Discussion, []domain.DiscussionReply, error) {
	var d domain.Discussion
	err := r.db.QueryRowContext(ctx,
		`SELECT d.id, d.user_id, u.display_name, d.title, d.body, COALESCE(d.category_id, 0), d.created_at
		FROM discussions d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = ?`,
		discussionID,
	).Scan(&d.ID, &d.UserID, &d.AuthorName, &d.Title, &d.Body, &d.CategoryID, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Discussion{}, nil, datasources.ErrNotFound
	}
	if err != nil {
		return domain.Discussion{}, nil, fmt.Errorf("fetching discussion: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT dr.id, dr.user_id, u.display_name, dr.body, dr.created_at
		FROM discussion_replies dr
		JOIN users u ON u.id = dr.user_id
		WHERE dr.discussion_id = ?
		ORDER BY dr.created_at ASC, dr.id ASC`,
		discussionID,
	)
	if err != nil {
		return domain.Discussion{}, nil, fmt.Errorf("running replies query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	replies := []domain.DiscussionReply{}
	for rows.Next() {
		reply := domain.DiscussionReply{DiscussionID: discussionID}
		if err := rows.Scan(&reply.ID, &reply.UserID, &reply.AuthorName, &reply.Body, &reply.CreatedAt); err != nil {
			return domain.Discussion{}, nil, fmt.Errorf("scanning replies: %w", err)
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return domain.Discussion{}, nil, fmt.Errorf("iterating rows: %w", err)
	}

	d.ReplyCount = int64(len(replies))
	return d, replies, nil
}

func (r *Repository) CreateDiscussion(ctx context.Context, discussion domain.Discussion) (int64, error) {
	var categoryID sql.NullInt64
	if discussion.CategoryID > 0 {
		categoryID = sql.NullInt64{Int64: discussion.CategoryID, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO discussions (user_id, title, body, category_id, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		discussion.UserID, discussion.Title, discussion.Body, categoryID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting discussion: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading discussion insert ID: %w", err)
	}
	return id, nil
}

func (r *Repository) CreateDiscussionReply(ctx context.Context, reply domain.DiscussionReply) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO discussion_replies (discussion_id, user_id, body, created_at)
		VALUES (?, ?, ?, NOW())`,
		reply.DiscussionID, reply.UserID, reply.Body,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting discussion reply: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading reply insert ID: %w", err)
	}
	return id, nil
}
