package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// ArticlesList handles GET /v1/articles. Only published articles are served;
// summaries are included but bodies are not.
type ArticlesList struct {
	Lister      datasources.ArticleLister
	CacheMaxAge time.Duration
}

type ArticlesListResponse struct {
	Data []domain.Article `json:"data"`
}

func (c ArticlesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	filters, err := articleFiltersFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse article filters in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	options, err := articleListOptionsFromQuery(r.URL.Query())
	if err != nil {
		logger.ErrorContext(ctx, "unable to parse article list options in query string", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	articles, err := c.Lister.ListArticles(ctx, filters, options)
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch articles", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if articles == nil {
		articles = []domain.Article{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if err := json.NewEncoder(w).Encode(ArticlesListResponse{Data: articles}); err != nil {
		logger.ErrorContext(ctx, "unable to write articles to response", "error", err)
	}
}

func articleFiltersFromQuery(q url.Values) (domain.ArticleFilters, error) {
	filters := domain.ArticleFilters{PublishedOnly: true}

	if q.Has("category_id") {
		categoryID, err := strconv.ParseInt(q.Get("category_id"), 10, 64)
		if err != nil {
			return domain.ArticleFilters{}, fmt.Errorf("unable to parse category_id from query: %w", err)
		}
		filters.CategoryID = categoryID
	}

	filters.TitleFulltext = q.Get("search")

	return filters, nil
}

func articleListOptionsFromQuery(q url.Values) (domain.ArticleListOptions, error) {
	page, pageSize, err := parsePagination(q)
	if err != nil {
		return domain.ArticleListOptions{}, err
	}

	return domain.ArticleListOptions{Page: page, PageSize: pageSize}, nil
}
