package mysql

import (
	"database/sql"

	"github.com/verdantly/wellness-api/internal/datasources"
)

var _ datasources.DatasetRepository = (*Repository)(nil)

// Repository implements every dataset interface over a single MySQL
// connection pool. All queries are parameterized; user input is never
// concatenated into SQL text.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// paginationToLimitOffset converts page/pageSize to limit/offset.
func paginationToLimitOffset(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return pageSize, (page - 1) * pageSize
}

func int64sToInterfaces(ids []int64) []interface{} {
	out := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}
	return out
}
