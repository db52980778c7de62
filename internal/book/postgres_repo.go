package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore/internal/crud"
	"bookstore/internal/tenant"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id::text, tenant_id::text, name, type, publish_date, price::text, created_at, updated_at`

// Tenant filter; $1 is always the tenant id or NULL for the host scope.
const tenantFilter = `tenant_id IS NOT DISTINCT FROM $1::uuid`

var sortColumns = map[string]string{
	"name":         "name",
	"type":         "type",
	"publish_date": "publish_date",
	"price":        "price",
	"created_at":   "created_at",
}

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func tenantArg(ctx context.Context) *string {
	id := tenant.From(ctx)
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// orderBy turns "field [asc|desc]" into an ORDER BY list. id is always the
// final tiebreaker so paging is stable.
func orderBy(sorting string) (string, error) {
	fields := strings.Fields(strings.ToLower(sorting))
	switch len(fields) {
	case 0:
		return "created_at ASC, id ASC", nil
	case 1, 2:
	default:
		return "", fmt.Errorf("%w: %q", crud.ErrInvalidSorting, sorting)
	}

	col, ok := sortColumns[fields[0]]
	if !ok {
		return "", fmt.Errorf("%w: unknown field %q", crud.ErrInvalidSorting, fields[0])
	}
	dir := "ASC"
	if len(fields) == 2 {
		switch fields[1] {
		case "asc":
		case "desc":
			dir = "DESC"
		default:
			return "", fmt.Errorf("%w: unknown direction %q", crud.ErrInvalidSorting, fields[1])
		}
	}
	return col + " " + dir + ", id ASC", nil
}

func scanBook(row pgx.Row) (Book, error) {
	var (
		b         Book
		tenantID  *string
		bookType  string
		published time.Time
		price     string
	)
	if err := row.Scan(&b.ID, &tenantID, &b.Name, &bookType, &published, &price, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return Book{}, err
	}

	if tenantID != nil {
		id, err := uuid.Parse(*tenantID)
		if err != nil {
			return Book{}, fmt.Errorf("scan tenant_id: %w", err)
		}
		b.TenantID = &id
	}
	m, err := ParseMoney(price)
	if err != nil {
		return Book{}, fmt.Errorf("scan price: %w", err)
	}
	b.Type = Type(bookType)
	b.PublishDate = NewDate(published.Year(), published.Month(), published.Day())
	b.Price = m
	return b, nil
}

func collectBooks(rows pgx.Rows) ([]Book, error) {
	defer rows.Close()
	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE `+tenantFilter+` AND id = $2::uuid`,
		tenantArg(ctx), id)
	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, fmt.Errorf("%w: book %s", crud.ErrNotFound, id)
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Find(ctx context.Context, id string) (*Book, error) {
	b, err := r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *PostgresRepo) List(ctx context.Context, p crud.PageRequest) ([]Book, int, error) {
	order, err := orderBy(p.Sorting)
	if err != nil {
		return nil, 0, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tid := tenantArg(ctx)
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE `+tenantFilter, tid).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+bookColumns+` FROM books WHERE `+tenantFilter+` ORDER BY `+order+` LIMIT $2 OFFSET $3`,
		tid, p.MaxResultCount, p.SkipCount)
	if err != nil {
		return nil, 0, err
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// ListAll returns every book of the current tenant ordered by id.
func (r *PostgresRepo) ListAll(ctx context.Context) ([]Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT `+bookColumns+` FROM books WHERE `+tenantFilter+` ORDER BY id`,
		tenantArg(ctx))
	if err != nil {
		return nil, err
	}
	return collectBooks(rows)
}

// Insert stores b in the current tenant and fills its generated fields.
func (r *PostgresRepo) Insert(ctx context.Context, b *Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var tenantID *string
	err := r.db.QueryRow(ctx, `
		INSERT INTO books (tenant_id, name, type, publish_date, price)
		VALUES ($1::uuid, $2, $3, $4::date, $5::numeric)
		RETURNING id::text, tenant_id::text, created_at, updated_at`,
		tenantArg(ctx), b.Name, string(b.Type), b.PublishDate.String(), b.Price.String(),
	).Scan(&b.ID, &tenantID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}

	b.TenantID = nil
	if tenantID != nil {
		id, err := uuid.Parse(*tenantID)
		if err != nil {
			return fmt.Errorf("scan tenant_id: %w", err)
		}
		b.TenantID = &id
	}
	return nil
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		UPDATE books
		SET name = $3, type = $4, publish_date = $5::date, price = $6::numeric, updated_at = now()
		WHERE `+tenantFilter+` AND id = $2::uuid
		RETURNING updated_at`,
		tenantArg(ctx), b.ID, b.Name, string(b.Type), b.PublishDate.String(), b.Price.String(),
	).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: book %s", crud.ErrNotFound, b.ID)
	}
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE `+tenantFilter+` AND id = $2::uuid`, tenantArg(ctx), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: book %s", crud.ErrNotFound, id)
	}
	return nil
}

// DeleteMany removes the listed books of the current tenant. Unknown ids are ignored.
func (r *PostgresRepo) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`DELETE FROM books WHERE `+tenantFilter+` AND id = ANY($2::text[]::uuid[])`,
		tenantArg(ctx), ids)
	return err
}
