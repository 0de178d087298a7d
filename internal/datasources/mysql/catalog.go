package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, slug, COALESCE(description, '') FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("running categories query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning categories: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return categories, nil
}

const productColumns = `p.id, p.name, p.description, p.price_cents, p.stock,
	COALESCE(p.image_url, ''), p.category_id, c.name, COALESCE(p.vendor_id, 0), COALESCE(v.name, ''), p.created_at`

func scanProduct(rows *sql.Rows) (domain.Product, error) {
	var p domain.Product
	err := rows.Scan(
		&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock,
		&p.ImageURL, &p.CategoryID, &p.CategoryName, &p.VendorID, &p.VendorName, &p.CreatedAt,
	)
	return p, err
}

func (r *Repository) ListProducts(
	ctx context.Context,
	filters domain.ProductFilters,
	options domain.ProductListOptions,
) ([]domain.Product, error) {
	sb := sqlbuilder.Select(productColumns)
	sb.From("products p")
	sb.Join("categories c", "c.id = p.category_id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "vendors v", "v.id = p.vendor_id")

	conds := buildProductConditions(sb, filters)
	if len(conds) > 0 {
		sb.Where(conds...)
	}

	orderings, err := buildProductOrder(options)
	if err != nil {
		return nil, fmt.Errorf("building products order by clause: %w", err)
	}
	sb.OrderBy(orderings...)

	limit, offset := paginationToLimitOffset(options.Page, options.PageSize)
	sb.Offset(offset)
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running products query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning products: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	sb := sqlbuilder.Select(productColumns)
	sb.From("products p")
	sb.Join("categories c", "c.id = p.category_id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "vendors v", "v.id = p.vendor_id")
	sb.Where(sb.Equal("p.id", productID))

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Product{}, fmt.Errorf("running product query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.Product{}, fmt.Errorf("iterating rows: %w", err)
		}
		return domain.Product{}, datasources.ErrNotFound
	}
	p, err := scanProduct(rows)
	if err != nil {
		return domain.Product{}, fmt.Errorf("scanning product: %w", err)
	}
	return p, nil
}

func (r *Repository) TotalMatchingProducts(ctx context.Context, filters domain.ProductFilters) (int64, error) {
	sb := sqlbuilder.Select("COUNT(*)")
	sb.From("products p")

	conds := buildProductConditions(sb, filters)
	if len(conds) > 0 {
		sb.Where(conds...)
	}

	query, args := sb.Build()
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting matching products: %w", err)
	}
	return count, nil
}

// ListRecommendableProducts lists in-stock products in the given categories
// that the user has never ordered, newest first.
func (r *Repository) ListRecommendableProducts(
	ctx context.Context, userID int64, categoryIDs []int64, limit int,
) ([]domain.Product, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	ordered := sqlbuilder.Select("oi.product_id")
	ordered.From("order_items oi")
	ordered.Join("orders o", "o.id = oi.order_id")

	sb := sqlbuilder.Select(productColumns)
	sb.From("products p")
	sb.Join("categories c", "c.id = p.category_id")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "vendors v", "v.id = p.vendor_id")

	ordered.Where(ordered.Equal("o.user_id", userID))
	sb.Where(
		sb.In("p.category_id", int64sToInterfaces(categoryIDs)...),
		sb.GreaterThan("p.stock", 0),
		sb.NotIn("p.id", ordered),
	)
	sb.OrderBy("p.created_at DESC", "p.id DESC")
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running recommendable products query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning products: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return products, nil
}

func (r *Repository) CreateProduct(ctx context.Context, product domain.Product) (int64, error) {
	var vendorID sql.NullInt64
	if product.VendorID > 0 {
		vendorID = sql.NullInt64{Int64: product.VendorID, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price_cents, stock, image_url, category_id, vendor_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`,
		product.Name, product.Description, product.PriceCents, product.Stock,
		product.ImageURL, product.CategoryID, vendorID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading product insert ID: %w", err)
	}
	return id, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product domain.Product) error {
	var vendorID sql.NullInt64
	if product.VendorID > 0 {
		vendorID = sql.NullInt64{Int64: product.VendorID, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE products
		SET name = ?, description = ?, price_cents = ?, stock = ?, image_url = ?, category_id = ?, vendor_id = ?
		WHERE id = ?`,
		product.Name, product.Description, product.PriceCents, product.Stock,
		product.ImageURL, product.CategoryID, vendorID, product.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
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

func (r *Repository) DeleteProduct(ctx context.Context, productID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", productID)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

func buildProductConditions(sb *sqlbuilder.SelectBuilder, filters domain.ProductFilters) []string {
	var conds []string

	if filters.CategoryID > 0 {
		conds = append(conds, sb.Equal("p.category_id", filters.CategoryID))
	}

	if filters.NameFulltext != "" {
		conds = append(conds, "MATCH (p.name, p.description) AGAINST ("+sb.Args.Add(filters.NameFulltext)+")")
	}

	if filters.MinPriceCents > 0 {
		conds = append(conds, sb.GreaterEqualThan("p.price_cents", filters.MinPriceCents))
	}

	if filters.MaxPriceCents > 0 {
		conds = append(conds, sb.LessEqualThan("p.price_cents", filters.MaxPriceCents))
	}

	if filters.InStockOnly {
		conds = append(conds, sb.GreaterThan("p.stock", 0))
	}

	return conds
}

func buildProductOrder(options domain.ProductListOptions) ([]string, error) {
	if len(options.Ordering) == 0 {
		return []string{"p.created_at DESC"}, nil
	}

	var orderings []string
	for _, ordering := range options.Ordering {
		var col string
		switch ordering.Field {
		case domain.ProductOrderingFieldCreatedAt:
			col = "p.created_at"
		case domain.ProductOrderingFieldPrice:
			col = "p.price_cents"
		case domain.ProductOrderingFieldName:
			col = "p.name"
		default:
			return nil, fmt.Errorf("unknown ordering field: %s", ordering.Field)
		}

		if ordering.Desc {
			col += " DESC"
		}
		orderings = append(orderings, col)
	}

	return orderings, nil
}
