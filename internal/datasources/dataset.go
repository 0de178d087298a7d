package datasources

import (
	"context"
	"errors"

	"github.com/verdantly/wellness-api/internal/domain"
)

// ErrNotFound is returned by fetchers when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmptyCart is returned when checkout is attempted with no cart items.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInsufficientStock is returned when a cart line exceeds available stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrWorkshopFull is returned when a registration would exceed capacity.
var ErrWorkshopFull = errors.New("workshop is full")

// ErrAlreadyRegistered is returned on duplicate workshop registration.
var ErrAlreadyRegistered = errors.New("already registered")

// DatasetRepository combines every storage interface the platform needs.
// Consumers should depend on the narrow interfaces below instead.
type DatasetRepository interface {
	ActivityEventInserter
	ContentCategoryResolver
	InterestAdder
	TopInterestsLister

	RecommendableProductsLister
	RecommendableArticlesLister

	ReminderPreferenceGetter
	ReminderPreferenceUpserter
	DailyReminderFetcher
	DailyReminderCreator
	DailyReminderReadMarker
	QuotePicker
	QuoteCreator
	QuoteDeactivator
	ReminderUserLister

	CategoryLister
	ProductLister
	ProductFetcher
	ProductCounter
	ProductWriter

	ArticleLister
	ArticleFetcher
	ArticleWriter

	CartFetcher
	CartItemUpserter
	CartItemRemover
	OrderCreator
	OrderLister
	OrderFetcher

	WorkshopLister
	WorkshopRegistrar
	WorkshopCreator
	DiscussionLister
	DiscussionFetcher
	DiscussionCreator
	DiscussionReplyCreator

	UserFetcher
	UserByAuth0SubjectGetter
	ProfileStatsGetter

	AccessTokenCreator
	AccessTokenByHashGetter
	AccessTokenLastUsedUpdater
	UserAccessTokenCounter
	AccessTokenLister
	AccessTokenRevoker
}

// ============================================
// Activity tracking and interest scores
// ============================================

type ActivityEventInserter interface {
	InsertActivityEvent(ctx context.Context, event domain.ActivityEvent) (int64, error)
}

// ContentCategoryResolver looks up the owning category of a piece of content.
// Returns 0 with a nil error when the content cannot be resolved.
type ContentCategoryResolver interface {
	ResolveContentCategory(ctx context.Context, contentType domain.ContentType, contentID int64) (int64, error)
}

// InterestAdder atomically adds an increment to a user's per-category score,
// creating the row on first use. Implementations must not lose concurrent
// updates for the same (user, category) pair.
type InterestAdder interface {
	AddInterest(ctx context.Context, userID, categoryID int64, increment float64) error
}

type TopInterestsLister interface {
	TopInterests(ctx context.Context, userID int64, limit int) ([]domain.CategoryInterest, error)
}

// ============================================
// Recommendations
// ============================================

// RecommendableProductsLister lists in-stock products in the given categories
// that the user has never ordered, newest first.
type RecommendableProductsLister interface {
	ListRecommendableProducts(ctx context.Context, userID int64, categoryIDs []int64, limit int) ([]domain.Product, error)
}

// RecommendableArticlesLister lists published articles in the given
// categories that the user has never viewed, newest first.
type RecommendableArticlesLister interface {
	ListRecommendableArticles(ctx context.Context, userID int64, categoryIDs []int64, limit int) ([]domain.Article, error)
}

// ============================================
// Reminders and quotes
// ============================================

type ReminderPreferenceGetter interface {
	GetReminderPreference(ctx context.Context, userID int64) (domain.ReminderPreference, error)
}

type ReminderPreferenceUpserter interface {
	UpsertReminderPreference(ctx context.Context, pref domain.ReminderPreference) error
}

// DailyReminderFetcher fetches the reminder of one type for one calendar day.
// Returns ErrNotFound when none exists yet.
type DailyReminderFetcher interface {
	GetDailyReminderByDate(ctx context.Context, userID int64, reminderType domain.ReminderType, sentDate string) (domain.DailyReminder, error)
}

// DailyReminderCreator inserts a reminder row. The insert is idempotent per
// (user, type, sent date); when a row already exists the existing row is
// returned unchanged.
type DailyReminderCreator interface {
	CreateDailyReminder(ctx context.Context, reminder domain.DailyReminder) (domain.DailyReminder, error)
}

type DailyReminderReadMarker interface {
	MarkReminderRead(ctx context.Context, userID, reminderID int64) error
}

// QuotePicker picks one active quote matching the category at random. Quotes
// with no category match any category. Returns ErrNotFound when no quote
// qualifies.
type QuotePicker interface {
	PickQuote(ctx context.Context, categoryID int64) (domain.MotivationalQuote, error)
}

type QuoteCreator interface {
	CreateQuote(ctx context.Context, quote domain.MotivationalQuote) (int64, error)
}

type QuoteDeactivator interface {
	DeactivateQuote(ctx context.Context, quoteID int64) error
}

// ReminderUserLister lists IDs of users whose preferences allow reminders.
type ReminderUserLister interface {
	ListReminderEnabledUserIDs(ctx context.Context) ([]int64, error)
}

// ============================================
// Catalog
// ============================================

type CategoryLister interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type ProductLister interface {
	ListProducts(ctx context.Context, filters domain.ProductFilters, options domain.ProductListOptions) ([]domain.Product, error)
}

type ProductFetcher interface {
	GetProduct(ctx context.Context, productID int64) (domain.Product, error)
}

type ProductCounter interface {
	TotalMatchingProducts(ctx context.Context, filters domain.ProductFilters) (int64, error)
}

type ProductWriter interface {
	CreateProduct(ctx context.Context, product domain.Product) (int64, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID int64) error
}

// ============================================
// Articles
// ============================================

type ArticleLister interface {
	ListArticles(ctx context.Context, filters domain.ArticleFilters, options domain.ArticleListOptions) ([]domain.Article, error)
}

type ArticleFetcher interface {
	GetArticle(ctx context.Context, articleID int64) (domain.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (domain.Article, error)
}

type ArticleWriter interface {
	CreateArticle(ctx context.Context, article domain.Article) (int64, error)
	UpdateArticle(ctx context.Context, article domain.Article) error
	DeleteArticle(ctx context.Context, articleID int64) error
}

// ============================================
// Cart and orders
// ============================================

type CartFetcher interface {
	GetCart(ctx context.Context, userID int64) (domain.Cart, error)
}

// CartItemUpserter sets the quantity for a (user, product) cart line,
// creating it when absent.
type CartItemUpserter interface {
	UpsertCartItem(ctx context.Context, userID, productID, quantity int64) error
}

type CartItemRemover interface {
	RemoveCartItem(ctx context.Context, userID, productID int64) error
}

// OrderCreator turns the user's cart into an order inside one transaction:
// reprice from current product rows, check stock, insert order and items,
// decrement stock, clear the cart.
type OrderCreator interface {
	CreateOrderFromCart(ctx context.Context, userID int64, orderNumber string) (domain.Order, error)
}

type OrderLister interface {
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
}

type OrderFetcher interface {
	GetOrderByNumber(ctx context.Context, userID int64, orderNumber string) (domain.Order, error)
}

// ============================================
// Community
// ============================================

type WorkshopLister interface {
	ListUpcomingWorkshops(ctx context.Context, limit int) ([]domain.Workshop, error)
}

type WorkshopRegistrar interface {
	RegisterForWorkshop(ctx context.Context, workshopID, userID int64) error
}

type WorkshopCreator interface {
	CreateWorkshop(ctx context.Context, workshop domain.Workshop) (int64, error)
}

type DiscussionLister interface {
	ListDiscussions(ctx context.Context, page, pageSize int) ([]domain.Discussion, error)
}

type DiscussionFetcher interface {
	GetDiscussion(ctx context.Context, discussionID int64) (domain.Discussion, []domain.DiscussionReply, error)
}

type DiscussionCreator interface {
	CreateDiscussion(ctx context.Context, discussion domain.Discussion) (int64, error)
}

type DiscussionReplyCreator interface {
	CreateDiscussionReply(ctx context.Context, reply domain.DiscussionReply) (int64, error)
}

// ============================================
// Users and profiles
// ============================================

type UserFetcher interface {
	GetUser(ctx context.Context, userID int64) (domain.User, error)
}

// UserByAuth0SubjectGetter maps an external identity onto a local user row.
type UserByAuth0SubjectGetter interface {
	GetUserByAuth0Subject(ctx context.Context, subject string) (domain.User, error)
}

type ProfileStatsGetter interface {
	GetProfileStats(ctx context.Context, userID int64) (domain.ProfileStats, error)
}

// ============================================
// Access tokens
// ============================================

type AccessTokenCreator interface {
	CreateAccessToken(ctx context.Context, tokenID string, userID int64, tokenHash, prefix string, name *string, expiresAt *string) error
}

type AccessTokenByHashGetter interface {
	GetAccessTokenByHash(ctx context.Context, tokenHash string) (domain.AccessToken, error)
}

type AccessTokenLastUsedUpdater interface {
	UpdateAccessTokenLastUsed(ctx context.Context, tokenID string) error
}

type UserAccessTokenCounter interface {
	CountUserActiveAccessTokens(ctx context.Context, userID int64) (int64, error)
}

type AccessTokenLister interface {
	ListAccessTokens(ctx context.Context, userID int64) ([]domain.AccessToken, error)
}

type AccessTokenRevoker interface {
	RevokeAccessToken(ctx context.Context, userID int64, tokenID string) error
}
