package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

const articleColumns = `a.id, a.title, a.slug, a.summary, a.body, a.author_name,
	a.category_id, c.name, a.published_at, a.created_at`

func scanArticle(scanner interface{ Scan(...any) error }) (domain.Article, error) {
	var a domain.Article
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Summary, &a.Body, &a.AuthorName,
		&a.CategoryID, &a.CategoryName, &a.PublishedAt, &a.CreatedAt,
	)
	return a, err
}

func (r *Repository) ListArticles(
	ctx context.Context,
	filters domain.ArticleFilters,
	options domain.ArticleListOptions,
) ([]domain.Article, error) {
	sb := sqlbuilder.Select(articleColumns)
	sb.From("articles a")
	sb.Join("categories c", "c.id = a.category_id")

	var conds []string
	if filters.CategoryID > 0 {
		conds = append(conds, sb.Equal("a.category_id", filters.CategoryID))
	}
	if filters.TitleFulltext != "" {
		conds = append(conds, "MATCH (a.title, a.summary) AGAINST ("+sb.Args.Add(filters.TitleFulltext)+")")
	}
	if filters.PublishedOnly {
		conds = append(conds, "a.published_at <= NOW()")
	}
	if len(conds) > 0 {
		sb.Where(conds...)
	}

	sb.OrderBy("a.published_at DESC", "a.id DESC")
	limit, offset := paginationToLimitOffset(options.Page, options.PageSize)
	sb.Offset(offset)
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running articles query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := []domain.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning articles: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return articles, nil
}

func (r *Repository) GetArticle(ctx context.Context, articleID int64) (domain.Article, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+`
		FROM articles a JOIN categories c ON c.id = a.category_id
		WHERE a.id = ?`, articleID)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Article{}, datasources.ErrNotFound
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("fetching article: %w", err)
	}
	return a, nil
}

func (r *Repository) GetArticleBySlug(ctx context.Context, slug string) (domain.Article, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+`
		FROM articles a JOIN categories c ON c.id = a.category_id
		WHERE a.slug = ?`, slug)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Article{}, datasources.ErrNotFound
	}
	if err != nil {
		return domain.Article{}, fmt.Errorf("fetching article by slug: %w", err)
	}
	return a, nil
}

// ListRecommendableArticles lists published articles in the given categories
// that the user has never viewed, newest first. "Viewed" derives from the
// activity event log.
func (r *Repository) ListRecommendableArticles(
	ctx context.Context, userID int64, categoryIDs []int64, limit int,
) ([]domain.Article, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	viewed := sqlbuilder.Select("e.content_id")
	viewed.From("activity_events e")

	sb := sqlbuilder.Select(articleColumns)
	sb.From("articles a")
	sb.Join("categories c", "c.id = a.category_id")

	viewed.Where(
		viewed.Equal("e.user_id", userID),
		viewed.Equal("e.content_type", string(domain.ContentTypeArticle)),
	)
	sb.Where(
		sb.In("a.category_id", int64sToInterfaces(categoryIDs)...),
		"a.published_at <= NOW()",
		sb.NotIn("a.id", viewed),
	)
	sb.OrderBy("a.published_at DESC", "a.id DESC")
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running recommendable articles query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := []domain.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning articles: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return articles, nil
}

func (r *Repository) CreateArticle(ctx context.Context, article domain.Article) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO articles (title, slug, summary, body, author_name, category_id, published_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`,
		article.Title, article.Slug, article.Summary, article.Body,
		article.AuthorName, article.CategoryID, article.PublishedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading article insert ID: %w", err)
	}
	return id, nil
}

func (r *Repository) UpdateArticle(ctx context.Context, article domain.Article) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE articles
		SET title = ?, slug = ?, summary = ?, body = ?, author_name = ?, category_id = ?, published_at = ?
		WHERE id = ?`,
		article.Title, article.Slug, article.Summary, article.Body,
		article.AuthorName, article.CategoryID, article.PublishedAt, article.ID,
	)
	if err != nil {
		return fmt.Errorf("updating article: %w", err)
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

func (r *Repository) DeleteArticle(ctx context.Context, articleID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", articleID)
	if err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}
	return nil
}
