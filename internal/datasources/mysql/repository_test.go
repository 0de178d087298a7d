package mysql

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verdantly/wellness-api/internal/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	if testing.Short() {
		t.Skip("skipping MySQL integration tests in short mode")
	}

	db, err := Connect(context.Background(), os.Getenv("MYSQL_URI"))
	if err != nil {
		t.Fatal(err)
	}

	for _, table := range []string{
		"interest_scores", "activity_events", "daily_reminders",
		"motivational_quotes", "order_items", "orders", "products", "articles",
		"categories", "users",
	} {
		_, err := db.Exec("DELETE FROM " + table)
		require.NoError(t, err)
	}

	_, err = db.Exec(
		`INSERT INTO categories (id, name, slug) VALUES (1, 'Yoga', 'yoga'), (2, 'Sleep', 'sleep')`)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO users (id, email, display_name, created_at) VALUES (1, 'test@example.com', 'Test', NOW())`)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAddInterest_Additivity(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	require.NoError(t, repo.AddInterest(ctx, 1, 1, 5.5))
	require.NoError(t, repo.AddInterest(ctx, 1, 1, 5.5))
	require.NoError(t, repo.AddInterest(ctx, 1, 2, 1))

	interests, err := repo.TopInterests(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, interests, 2)

	assert.Equal(t, int64(1), interests[0].CategoryID)
	assert.Equal(t, "Yoga", interests[0].CategoryName)
	assert.InDelta(t, 11.0, interests[0].Score, 1e-9)
	assert.Equal(t, int64(2), interests[1].CategoryID)
	assert.InDelta(t, 1.0, interests[1].Score, 1e-9)
}

func TestTopInterests_LimitAndOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	require.NoError(t, repo.AddInterest(ctx, 1, 1, 2))
	require.NoError(t, repo.AddInterest(ctx, 1, 2, 9))

	interests, err := repo.TopInterests(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, interests, 1)
	assert.Equal(t, int64(2), interests[0].CategoryID)
}

func TestTopInterests_NoSignal(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)

	interests, err := repo.TopInterests(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestCreateDailyReminder_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	reminder := domain.DailyReminder{
		UserID:       1,
		ReminderType: domain.ReminderTypeMotivationalQuote,
		CategoryID:   1,
		Title:        "Your Daily Motivation",
		Message:      "Begin again.",
		SentDate:     time.Now().Format("2006-01-02"),
	}

	first, err := repo.CreateDailyReminder(ctx, reminder)
	require.NoError(t, err)

	reminder.Message = "Different message"
	second, err := repo.CreateDailyReminder(ctx, reminder)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Begin again.", second.Message)
}

func TestListRecommendableProducts_Exclusions(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	freshID, err := repo.CreateProduct(ctx, domain.Product{
		Name: "Cork Yoga Block", PriceCents: 2400, Stock: 10, CategoryID: 1,
	})
	require.NoError(t, err)
	orderedID, err := repo.CreateProduct(ctx, domain.Product{
		Name: "Yoga Mat", PriceCents: 4900, Stock: 10, CategoryID: 1,
	})
	require.NoError(t, err)
	_, err = repo.CreateProduct(ctx, domain.Product{
		Name: "Sold-Out Strap", PriceCents: 1200, Stock: 0, CategoryID: 1,
	})
	require.NoError(t, err)

	res, err := db.Exec(
		`INSERT INTO orders (order_number, user_id, status, total_cents, created_at)
		VALUES ('ord_test_1', 1, 'pending', 4900, NOW())`)
	require.NoError(t, err)
	orderID, err := res.LastInsertId()
	require.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price_cents)
		VALUES (?, ?, 'Yoga Mat', 1, 4900)`, orderID, orderedID)
	require.NoError(t, err)

	products, err := repo.ListRecommendableProducts(ctx, 1, []int64{1}, 10)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, freshID, products[0].ID)

	// Another user's recommendations still include the ordered product.
	products, err = repo.ListRecommendableProducts(ctx, 2, []int64{1}, 10)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestListRecommendableArticles_ExcludesViewed(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	published := time.Now().Add(-time.Hour)
	viewedID, err := repo.CreateArticle(ctx, domain.Article{
		Title: "Wind-Down Rituals", Slug: "wind-down-rituals", Summary: "s",
		Body: "b", AuthorName: "A. Writer", CategoryID: 2, PublishedAt: published,
	})
	require.NoError(t, err)
	unreadID, err := repo.CreateArticle(ctx, domain.Article{
		Title: "Better Mornings", Slug: "better-mornings", Summary: "s",
		Body: "b", AuthorName: "A. Writer", CategoryID: 2, PublishedAt: published,
	})
	require.NoError(t, err)

	_, err = repo.InsertActivityEvent(ctx, domain.ActivityEvent{
		UserID:       1,
		IPAddress:    "203.0.113.9",
		ActivityType: domain.ActivityTypeArticleView,
		ContentType:  domain.ContentTypeArticle,
		ContentID:    viewedID,
		CategoryID:   2,
		ViewedAt:     time.Now(),
	})
	require.NoError(t, err)

	articles, err := repo.ListRecommendableArticles(ctx, 1, []int64{2}, 10)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, unreadID, articles[0].ID)

	articles, err = repo.ListRecommendableArticles(ctx, 2, []int64{2}, 10)
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestResolveContentCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := New(db)
	ctx := context.Background()

	_, err := db.Exec(
		`INSERT INTO articles (id, title, slug, summary, body, author_name, category_id, published_at, created_at)
		VALUES (10, 'Sleep Better', 'sleep-better', 's', 'b', 'A. Writer', 2, NOW(), NOW())`)
	require.NoError(t, err)

	categoryID, err := repo.ResolveContentCategory(ctx, domain.ContentTypeArticle, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), categoryID)

	categoryID, err = repo.ResolveContentCategory(ctx, domain.ContentTypeArticle, 999)
	require.NoError(t, err)
	assert.Zero(t, categoryID)

	categoryID, err = repo.ResolveContentCategory(ctx, domain.ContentTypePage, 10)
	require.NoError(t, err)
	assert.Zero(t, categoryID)
}
