package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// AdminArticleCreate handles POST /v1/admin/articles.
type AdminArticleCreate struct {
	Writer datasources.ArticleWriter
}

func (c AdminArticleCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var article domain.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		logger.ErrorContext(ctx, "unable to parse article body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(article.Title) == "" || strings.TrimSpace(article.Slug) == "" || article.CategoryID < 1 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	articleID, err := c.Writer.CreateArticle(ctx, article)
	if err != nil {
		logger.ErrorContext(ctx, "unable to create article", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	article.ID = articleID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(article); err != nil {
		logger.ErrorContext(ctx, "unable to write article to response", "error", err)
	}
}

// AdminArticleUpdate handles PUT /v1/admin/articles/{article_id}.
type AdminArticleUpdate struct {
	Writer datasources.ArticleWriter
}

func (c AdminArticleUpdate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	articleID, err := strconv.ParseInt(mux.Vars(r)["article_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid article ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var article domain.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		logger.ErrorContext(ctx, "unable to parse article body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	article.ID = articleID

	if err := c.Writer.UpdateArticle(ctx, article); err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to update article", "error", err, "article_id", articleID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdminArticleDelete handles DELETE /v1/admin/articles/{article_id}.
type AdminArticleDelete struct {
	Writer datasources.ArticleWriter
}

func (c AdminArticleDelete) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	articleID, err := strconv.ParseInt(mux.Vars(r)["article_id"], 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "invalid article ID", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := c.Writer.DeleteArticle(ctx, articleID); err != nil {
		if errors.Is(err, datasources.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "unable to delete article", "error", err, "article_id", articleID)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
