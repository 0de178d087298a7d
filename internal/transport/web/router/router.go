package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/command"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/transport/web/controller"
)

func MakeRouter(
	dataset datasources.DatasetRepository,
	similarity datasources.SimilarityRepository,
	rssFeedBaseURL, rssFeedAuthorName, rssFeedAuthorEmail string,
	catalogCacheMaxAge time.Duration,
	authMiddleware func(http.Handler) http.Handler,
	recordActivityCmd *command.RecordActivity,
	recommendCmd *command.RecommendItems,
	reminderCmd *command.GetDailyReminder,
	checkoutCmd *command.Checkout,
	createTokenCmd *command.CreateAccessToken,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(authMiddleware)

	requireAdmin := NewRequireAdminMiddleware(dataset)

	// Activity tracking. Anonymous events are allowed.
	r.Handle("/v1/activity", controller.ActivityRecord{
		RecordCmd: recordActivityCmd,
	}).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/recommendations", requireAuthMiddleware(controller.RecommendationsList{
		RecommendCmd: recommendCmd,
	})).Methods(http.MethodGet, http.MethodOptions)

	// Reminders.
	r.Handle("/v1/reminders/daily", requireAuthMiddleware(controller.ReminderDailyGet{
		ReminderCmd: reminderCmd,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/reminders/preferences", requireAuthMiddleware(controller.ReminderPreferencesGet{
		Preferences: dataset,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/reminders/preferences", requireAuthMiddleware(controller.ReminderPreferencesPut{
		Preferences: dataset,
	})).Methods(http.MethodPut, http.MethodOptions)

	r.Handle("/v1/reminders/{reminder_id}/read", requireAuthMiddleware(controller.ReminderMarkRead{
		ReadMarker: dataset,
	})).Methods(http.MethodPost, http.MethodOptions)

	// Catalog.
	r.Handle("/v1/categories", controller.CategoriesList{
		Lister:      dataset,
		CacheMaxAge: catalogCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/products", controller.ProductsList{
		Lister:      dataset,
		Counter:     dataset,
		CacheMaxAge: catalogCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/products/{product_id}", controller.ProductGet{
		Fetcher:     dataset,
		CacheMaxAge: catalogCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/products/{product_id}/similar", controller.SimilarProductsList{
		Fetcher:    dataset,
		Similarity: similarity,
	}).Methods(http.MethodGet, http.MethodOptions)

	// Wellness Hub articles.
	r.Handle("/v1/articles", controller.ArticlesList{
		Lister:      dataset,
		CacheMaxAge: catalogCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/articles/{article_ref}", controller.ArticleGet{
		Fetcher:     dataset,
		CacheMaxAge: catalogCacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	// Cart and checkout.
	r.Handle("/v1/cart", requireAuthMiddleware(controller.CartGet{
		Carts: dataset,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/cart/items", requireAuthMiddleware(controller.CartItemSet{
		Products: dataset,
		Items:    dataset,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/cart/items/{product_id}", requireAuthMiddleware(controller.CartItemSet{
		Products: dataset,
		Items:    dataset,
	})).Methods(http.MethodPut, http.MethodOptions)

	r.Handle("/v1/cart/items/{product_id}", requireAuthMiddleware(controller.CartItemRemove{
		Items: dataset,
	})).Methods(http.MethodDelete, http.MethodOptions)

	r.Handle("/v1/checkout", requireAuthMiddleware(controller.CheckoutCreate{
		CheckoutCmd: checkoutCmd,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/orders", requireAuthMiddleware(controller.OrdersList{
		Lister: dataset,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/orders/{order_number}", requireAuthMiddleware(controller.OrderGet{
		Fetcher: dataset,
	})).Methods(http.MethodGet, http.MethodOptions)

	// Community.
	r.Handle("/v1/workshops", controller.WorkshopsList{
		Lister: dataset,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/workshops/{workshop_id}/register", requireAuthMiddleware(controller.WorkshopRegister{
		Registrar: dataset,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/discussions", controller.DiscussionsList{
		Lister: dataset,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/discussions", requireAuthMiddleware(controller.DiscussionCreate{
		Creator: dataset,
		Users:   dataset,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/discussions/{discussion_id}", controller.DiscussionGet{
		Fetcher: dataset,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/discussions/{discussion_id}/replies", requireAuthMiddleware(controller.DiscussionReplyCreate{
		Creator: dataset,
		Users:   dataset,
	})).Methods(http.MethodPost, http.MethodOptions)

	// Profile and tokens.
	r.Handle("/v1/profile", requireAuthMiddleware(controller.ProfileGet{
		Users: dataset,
		Stats: dataset,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/tokens", requireAuthMiddleware(controller.AccessTokenCreate{
		CreateCmd: createTokenCmd,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/v1/tokens", requireAuthMiddleware(controller.AccessTokenList{
		Lister: dataset,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/v1/tokens/{token_id}", requireAuthMiddleware(controller.AccessTokenRevoke{
		Revoker: dataset,
	})).Methods(http.MethodDelete, http.MethodOptions)

	// Chatbot. Stateless, anonymous allowed.
	r.Handle("/v1/chatbot", controller.ChatbotMessage{}).
		Methods(http.MethodPost, http.MethodOptions)

	// Admin back office.
	admin := r.PathPrefix("/v1/admin").Subrouter()
	admin.Use(requireAdmin)

	admin.Handle("/products", controller.AdminProductCreate{
		Writer: dataset,
	}).Methods(http.MethodPost, http.MethodOptions)

	admin.Handle("/products/{product_id}", controller.AdminProductUpdate{
		Writer: dataset,
	}).Methods(http.MethodPut, http.MethodOptions)

	admin.Handle("/products/{product_id}", controller.AdminProductDelete{
		Writer: dataset,
	}).Methods(http.MethodDelete, http.MethodOptions)

	admin.Handle("/articles", controller.AdminArticleCreate{
		Writer: dataset,
	}).Methods(http.MethodPost, http.MethodOptions)

	admin.Handle("/articles/{article_id}", controller.AdminArticleUpdate{
		Writer: dataset,
	}).Methods(http.MethodPut, http.MethodOptions)

	admin.Handle("/articles/{article_id}", controller.AdminArticleDelete{
		Writer: dataset,
	}).Methods(http.MethodDelete, http.MethodOptions)

	admin.Handle("/quotes", controller.AdminQuoteCreate{
		Creator: dataset,
	}).Methods(http.MethodPost, http.MethodOptions)

	admin.Handle("/quotes/{quote_id}", controller.AdminQuoteDeactivate{
		Deactivator: dataset,
	}).Methods(http.MethodDelete, http.MethodOptions)

	admin.Handle("/workshops", controller.AdminWorkshopCreate{
		Creator: dataset,
	}).Methods(http.MethodPost, http.MethodOptions)

	rssFeeds := []controller.RSS{
		{
			FeedHostname:    rssFeedBaseURL,
			FeedPath:        "/rss",
			FeedAuthorName:  rssFeedAuthorName,
			FeedAuthorEmail: rssFeedAuthorEmail,
			Articles:        dataset,
			CacheMaxAge:     catalogCacheMaxAge,
		},
	}

	for _, feed := range rssFeeds {
		r.Handle(feed.FeedPath, feed)
	}

	return r, nil
}
