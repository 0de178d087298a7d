package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// GetReminderPreference returns the stored preference, or the defaults when
// the user has never saved one.
func (r *Repository) GetReminderPreference(ctx context.Context, userID int64) (domain.ReminderPreference, error) {
	pref := domain.ReminderPreference{UserID: userID}
	var frequency, categories string
	err := r.db.QueryRowContext(ctx,
		`SELECT frequency, COALESCE(preferred_categories, ''), email_enabled, reminder_time
		FROM reminder_preferences
		WHERE user_id = ?`,
		userID,
	).Scan(&frequency, &categories, &pref.EmailEnabled, &pref.ReminderTime)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultReminderPreference(userID), nil
	}
	if err != nil {
		return domain.ReminderPreference{}, fmt.Errorf("fetching reminder preference: %w", err)
	}

	pref.Frequency = domain.ReminderFrequency(frequency)
	pref.PreferredCategoryIDs, err = parseCategoryIDs(categories)
	if err != nil {
		return domain.ReminderPreference{}, fmt.Errorf("parsing preferred categories: %w", err)
	}
	return pref, nil
}

func (r *Repository) UpsertReminderPreference(ctx context.Context, pref domain.ReminderPreference) error {
	categories := formatCategoryIDs(pref.PreferredCategoryIDs)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminder_preferences (user_id, frequency, preferred_categories, email_enabled, reminder_time)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			frequency = VALUES(frequency),
			preferred_categories = VALUES(preferred_categories),
			email_enabled = VALUES(email_enabled),
			reminder_time = VALUES(reminder_time)`,
		pref.UserID, string(pref.Frequency), categories, pref.EmailEnabled, pref.ReminderTime,
	)
	if err != nil {
		return fmt.Errorf("upserting reminder preference: %w", err)
	}
	return nil
}

func (r *Repository) GetDailyReminderByDate(
	ctx context.Context, userID int64, reminderType domain.ReminderType, sentDate string,
) (domain.DailyReminder, error) {
	reminder := domain.DailyReminder{UserID: userID}
	var rType string
	var categoryID, contentID sql.NullInt64
	var sent time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reminder_type, category_id, content_id, title, message, sent_date, is_read, created_at
		FROM daily_reminders
		WHERE user_id = ? AND reminder_type = ? AND sent_date = ?`,
		userID, string(reminderType), sentDate,
	).Scan(
		&reminder.ID, &rType, &categoryID, &contentID,
		&reminder.Title, &reminder.Message, &sent, &reminder.IsRead, &reminder.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DailyReminder{}, datasources.ErrNotFound
	}
	if err != nil {
		return domain.DailyReminder{}, fmt.Errorf("fetching daily reminder: %w", err)
	}

	reminder.ReminderType = domain.ReminderType(rType)
	reminder.CategoryID = categoryID.Int64
	reminder.ContentID = contentID.Int64
	reminder.SentDate = sent.Format("2006-01-02")
	return reminder, nil
}

// CreateDailyReminder inserts a reminder row idempotently. The unique key on
// (user_id, reminder_type, sent_date) plus INSERT IGNORE makes concurrent
// same-day attempts converge on a single row, which is read back and
// returned.
func (r *Repository) CreateDailyReminder(
	ctx context.Context, reminder domain.DailyReminder,
) (domain.DailyReminder, error) {
	var categoryID sql.NullInt64
	if reminder.CategoryID > 0 {
		categoryID = sql.NullInt64{Int64: reminder.CategoryID, Valid: true}
	}
	var contentID sql.NullInt64
	if reminder.ContentID > 0 {
		contentID = sql.NullInt64{Int64: reminder.ContentID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO daily_reminders
			(user_id, reminder_type, category_id, content_id, title, message, sent_date, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, FALSE, NOW())`,
		reminder.UserID, string(reminder.ReminderType), categoryID, contentID,
		reminder.Title, reminder.Message, reminder.SentDate,
	)
	if err != nil {
		return domain.DailyReminder{}, fmt.Errorf("inserting daily reminder: %w", err)
	}

	return r.GetDailyReminderByDate(ctx, reminder.UserID, reminder.ReminderType, reminder.SentDate)
}

func (r *Repository) MarkReminderRead(ctx context.Context, userID, reminderID int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE daily_reminders SET is_read = TRUE WHERE id = ? AND user_id = ?",
		reminderID, userID,
	)
	if err != nil {
		return fmt.Errorf("marking reminder read: %w", err)
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

// PickQuote selects one active quote matching the category at random. Quotes
// with a NULL category match any category.
func (r *Repository) PickQuote(ctx context.Context, categoryID int64) (domain.MotivationalQuote, error) {
	quote := domain.MotivationalQuote{IsActive: true}
	var author string
	var quoteCategoryID sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, text, COALESCE(author, ''), category_id
		FROM motivational_quotes
		WHERE is_active = TRUE AND (category_id = ? OR category_id IS NULL)
		ORDER BY RAND()
		LIMIT 1`,
		categoryID,
	).Scan(&quote.ID, &quote.Text, &author, &quoteCategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MotivationalQuote{}, datasources.ErrNotFound
	}
	if err != nil {
		return domain.MotivationalQuote{}, fmt.Errorf("picking quote: %w", err)
	}

	quote.Author = author
	quote.CategoryID = quoteCategoryID.Int64
	return quote, nil
}

func (r *Repository) CreateQuote(ctx context.Context, quote domain.MotivationalQuote) (int64, error) {
	var categoryID sql.NullInt64
	if quote.CategoryID > 0 {
		categoryID = sql.NullInt64{Int64: quote.CategoryID, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO motivational_quotes (text, author, category_id, is_active) VALUES (?, ?, ?, TRUE)",
		quote.Text, quote.Author, categoryID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting quote: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading quote insert ID: %w", err)
	}
	return id, nil
}

func (r *Repository) DeactivateQuote(ctx context.Context, quoteID int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE motivational_quotes SET is_active = FALSE WHERE id = ?", quoteID)
	if err != nil {
		return fmt.Errorf("deactivating quote: %w", err)
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

func (r *Repository) ListReminderEnabledUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id
		FROM users u
		LEFT JOIN reminder_preferences p ON p.user_id = u.id
		WHERE p.user_id IS NULL OR p.frequency <> ?
		ORDER BY u.id`,
		string(domain.ReminderFrequencyNever),
	)
	if err != nil {
		return nil, fmt.Errorf("running reminder users query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user IDs: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return ids, nil
}

func parseCategoryIDs(csv string) ([]int64, error) {
	if csv == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category id [%s]: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatCategoryIDs(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
