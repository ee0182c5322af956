package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/app"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/internal/catalog/domain"
	"github.com/antoniofernandodearujo/stg-catalog-challenge/pkg/money"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const productColumns = `id, name, description, price_amount::text, price_currency, image_url, category, created_at`

type ProductRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, price_amount, price_currency, image_url, category)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+productColumns,
		p.Name, p.Description, p.Price.Amount.String(), p.Price.Currency.String(), p.ImageURL, p.Category,
	)

	created, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return created, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrInvalidInput
	}

	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, prodID)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, f app.Filter) ([]domain.Product, int, error) {
	where, args := buildWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + orderBy(f.Sort)
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.PerPage, (f.Page-1)*f.PerPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return out, total, nil
}

func (r *ProductRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func buildWhere(f app.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Search != "" {
		add(`(name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%[1]d || '%%')`, f.Search)
	}
	if f.Category != "" {
		add(`category = $%d`, f.Category)
	}
	if f.MinPrice.IsPositive() {
		add(`price_amount >= $%d`, f.MinPrice.String())
	}
	if f.MaxPrice.IsPositive() {
		add(`price_amount <= $%d`, f.MaxPrice.String())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(sort string) string {
	switch sort {
	case app.SortByName:
		return ` ORDER BY name ASC`
	case app.SortByPrice:
		return ` ORDER BY price_amount ASC`
	default:
		return ` ORDER BY created_at DESC`
	}
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p         domain.Product
		amountStr string
		curStr    string
		createdAt time.Time
	)

	err := row.Scan(&p.ID, &p.Name, &p.Description, &amountStr, &curStr, &p.ImageURL, &p.Category, &createdAt)
	if err != nil {
		return domain.Product{}, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price amount[%s] is not valid: %w", amountStr, err)
	}
	cur, err := currency.ParseISO(curStr)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", curStr, err)
	}

	p.Price = money.Money{Amount: amount, Currency: cur}
	p.CreatedAt = createdAt
	return p, nil
}
