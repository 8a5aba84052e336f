package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/dvalencia/bookstore-api/internal/domain"
	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo implementación del puerto BookRepository sobre PostgreSQL.
type BookRepo struct {
	pool *pgxpool.Pool
}

// NewBookRepository construye el adaptador de persistencia para libros.
func NewBookRepository(pool *pgxpool.Pool) *BookRepo {
	return &BookRepo{pool: pool}
}

// sortExprs traduce el enum de ordenamiento a expresiones de columna fijas.
// El texto del request jamás llega aquí: solo valores ya validados por
// repository.ParseSortColumn.
var sortExprs = map[repository.SortColumn]string{
	repository.SortByTitle:     "b.title",
	repository.SortByAuthor:    "b.author",
	repository.SortByPrice:     "b.price",
	repository.SortByStock:     "b.stock_quantity",
	repository.SortByGenre:     "b.genre",
	repository.SortByCondition: "b.condition",
	repository.SortByCreatedAt: "b.created_at",
}

// Create persiste un nuevo libro.
func (r *BookRepo) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO books (id, seller_id, title, author, isbn, genre, condition, price, cost_price, stock_quantity, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(ctx, query,
		book.ID, book.SellerID, book.Title, book.Author, book.ISBN, book.Genre,
		book.Condition, book.Price, book.CostPrice, book.StockQuantity,
		book.Description, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID obtiene un libro por ID, restringido al vendedor dueño.
func (r *BookRepo) GetByID(ctx context.Context, sellerID, id string) (*entity.Book, error) {
	query := `
		SELECT id, seller_id, title, author, isbn, genre, condition, price, cost_price, stock_quantity, description, created_at, updated_at
		FROM books WHERE id = $1 AND seller_id = $2`
	var b entity.Book
	err := r.pool.QueryRow(ctx, query, id, sellerID).Scan(
		&b.ID, &b.SellerID, &b.Title, &b.Author, &b.ISBN, &b.Genre, &b.Condition,
		&b.Price, &b.CostPrice, &b.StockQuantity, &b.Description, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &b, nil
}

// Update actualiza los campos editables de un libro.
func (r *BookRepo) Update(ctx context.Context, book *entity.Book) error {
	query := `
		UPDATE books SET title = $3, author = $4, isbn = $5, genre = $6, condition = $7, price = $8, cost_price = $9, stock_quantity = $10, description = $11, updated_at = $12
		WHERE id = $1 AND seller_id = $2`
	cmd, err := r.pool.Exec(ctx, query,
		book.ID, book.SellerID, book.Title, book.Author, book.ISBN, book.Genre,
		book.Condition, book.Price, book.CostPrice, book.StockQuantity,
		book.Description, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un libro del vendedor.
func (r *BookRepo) Delete(ctx context.Context, sellerID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1 AND seller_id = $2`, id, sellerID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListRecords devuelve los snapshots del inventario con métricas derivadas
// (rating promedio, reviews, unidades vendidas, % margen) calculadas en SQL.
// Los filtros aplican solo aquí; las consultas de estadísticas no los reciben.
func (r *BookRepo) ListRecords(
	ctx context.Context,
	sellerID string,
	f repository.ListFilter,
	limit, offset int,
) ([]repository.InventoryRecord, int, error) {
	where, args := buildBookFilter(sellerID, f)

	countQuery := `SELECT COUNT(*) FROM books b ` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	sortExpr, ok := sortExprs[f.SortBy]
	if !ok {
		sortExpr = sortExprs[repository.SortByCreatedAt]
	}
	direction := "ASC"
	if f.SortDesc {
		direction = "DESC"
	}

	var sb strings.Builder
	sb.WriteString(`
	SELECT
	    b.id, b.title, b.author, b.isbn, b.genre, b.condition,
	    b.price, b.cost_price, b.stock_quantity, b.description,
	    b.created_at, b.updated_at,
	    COALESCE(rv.avg_rating, 0)   AS avg_rating,
	    COALESCE(rv.review_count, 0) AS review_count,
	    COALESCE(oi.total_sold, 0)   AS total_sold,
	    CASE WHEN b.price > 0
	         THEN ROUND((b.price - b.cost_price) / b.price * 100, 2)
	         ELSE 0
	    END                          AS profit_margin
	FROM books b
	LEFT JOIN (
	    SELECT book_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count
	    FROM reviews GROUP BY book_id
	) rv ON rv.book_id = b.id
	LEFT JOIN (
	    SELECT book_id, SUM(quantity) AS total_sold
	    FROM order_items GROUP BY book_id
	) oi ON oi.book_id = b.id
	`)
	sb.WriteString(where)
	sb.WriteString(" ORDER BY " + sortExpr + " " + direction + ", b.id ASC")
	if limit > 0 {
		args = append(args, limit, offset)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	records := make([]repository.InventoryRecord, 0, 64)
	for rows.Next() {
		var rec repository.InventoryRecord
		if err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Author, &rec.ISBN, &rec.Genre, &rec.Condition,
			&rec.Price, &rec.CostPrice, &rec.StockQuantity, &rec.Description,
			&rec.CreatedAt, &rec.UpdatedAt,
			&rec.AvgRating, &rec.ReviewCount, &rec.TotalSold, &rec.ProfitMargin,
		); err != nil {
			return nil, 0, fmt.Errorf("scan book record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list books rows: %w", err)
	}
	return records, total, nil
}

// buildBookFilter arma el WHERE con argumentos posicionales.
func buildBookFilter(sellerID string, f repository.ListFilter) (string, []any) {
	conds := []string{"b.seller_id = $1"}
	args := []any{sellerID}

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Search != "" {
		add("(b.title ILIKE $%[1]d OR b.author ILIKE $%[1]d OR b.isbn ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if f.Genre != "" {
		add("b.genre = $%d", f.Genre)
	}
	if f.Condition != "" {
		add("b.condition = $%d", f.Condition)
	}
	if f.MinPrice != nil {
		add("b.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("b.price <= $%d", *f.MaxPrice)
	}
	if f.DateFrom != nil {
		add("b.created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("b.created_at <= $%d", *f.DateTo)
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}
