package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// ArticleGet handles GET /v1/articles/{article_ref}, where the ref is either
// a numeric ID or a slug.
type ArticleGet struct {
	Fetcher     datasources.ArticleFetcher
	CacheMaxAge time.Duration
}

func (c ArticleGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	ref := mux.Vars(r)["article_ref"]

	var article domain.Article
	var err error
	if articleID, parseErr := strconv.ParseInt(ref, 10, 64); parseErr == nil {
		article, err = c.Fetcher.GetArticle(ctx, articleID)
	} else {
		article, err = c.Fetcher.GetArticleBySlug(ctx, ref)
	}

	if err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to fetch article", "error", err, "article_ref", ref)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if domain.UserIDFromContext(ctx) == 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	}

	if err := json.NewEncoder(w).Encode(article); err != nil {
		logger.ErrorContext(ctx, "unable to write article to response", "error", err)
	}
}
