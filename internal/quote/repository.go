// quote/repository.go
package quote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound means no quote exists with the requested id
var ErrNotFound = errors.New("quote not found")

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	VIN         string
	QuoteNumber string
	Make        string
	Model       string
	DateFrom    time.Time
	DateTo      time.Time
}

// Repository persists quotes in PostgreSQL
type Repository struct {
	db *sql.DB
}

// NewRepository constructs a repository over db
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a quote and its service lines, returning the new id
func (r *Repository) Create(ctx context.Context, q *Quote) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO quotes (quote_number, date, vin_number, vin_picture_link, year, make, model, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		q.QuoteNumber, q.Date, q.VINNumber, nullString(q.VINPictureLink),
		nullInt(q.Year), nullString(q.Make), nullString(q.Model), nullString(q.Instructions),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}

	if err := insertServices(ctx, tx, id, q.Services); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	q.ID = id
	return id, nil
}

// GetByID loads a quote with its service lines
func (r *Repository) GetByID(ctx context.Context, id int64) (*Quote, error) {
	q := &Quote{Services: make(map[ServiceKey]ServiceLine)}

	var (
		vinPicture, mk, model, instructions sql.NullString
		year                                sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, quote_number, date, vin_number, vin_picture_link, year, make, model, instructions
		FROM quotes WHERE id = $1`, id,
	).Scan(&q.ID, &q.QuoteNumber, &q.Date, &q.VINNumber, &vinPicture, &year, &mk, &model, &instructions)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select quote: %w", err)
	}

	q.VINPictureLink = vinPicture.String
	q.Year = int(year.Int64)
	q.Make = mk.String
	q.Model = model.String
	q.Instructions = instructions.String

	rows, err := r.db.QueryContext(ctx, `
		SELECT service_key, photo_link, parts_cost, labor_cost
		FROM quote_services WHERE quote_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("select services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			photo sql.NullString
			line  ServiceLine
		)
		if err := rows.Scan(&key, &photo, &line.PartsCost, &line.LaborCost); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		line.PhotoLink = photo.String
		q.Services[ServiceKey(key)] = line
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return q, nil
}

// Update replaces a quote's fields and rewrites its service lines
func (r *Repository) Update(ctx context.Context, q *Quote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE quotes
		SET quote_number = $1, date = $2, vin_number = $3, vin_picture_link = $4,
		    year = $5, make = $6, model = $7, instructions = $8
		WHERE id = $9`,
		q.QuoteNumber, q.Date, q.VINNumber, nullString(q.VINPictureLink),
		nullInt(q.Year), nullString(q.Make), nullString(q.Model), nullString(q.Instructions),
		q.ID)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM quote_services WHERE quote_id = $1`, q.ID); err != nil {
		return fmt.Errorf("delete services: %w", err)
	}
	if err := insertServices(ctx, tx, q.ID, q.Services); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Delete removes a quote; service lines cascade
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns quotes matching the filter, newest first, without
// service lines
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]*Quote, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.VIN != "" {
		add("vin_number ILIKE '%%' || $%d || '%%'", filter.VIN)
	}
	if filter.QuoteNumber != "" {
		add("quote_number ILIKE '%%' || $%d || '%%'", filter.QuoteNumber)
	}
	if filter.Make != "" {
		add("make ILIKE '%%' || $%d || '%%'", filter.Make)
	}
	if filter.Model != "" {
		add("model ILIKE '%%' || $%d || '%%'", filter.Model)
	}
	if !filter.DateFrom.IsZero() {
		add("date >= $%d", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		add("date <= $%d", filter.DateTo)
	}

	query := `SELECT id, quote_number, date, vin_number, vin_picture_link, year, make, model, instructions FROM quotes`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select quotes: %w", err)
	}
	defer rows.Close()

	var result []*Quote
	for rows.Next() {
		q := &Quote{Services: make(map[ServiceKey]ServiceLine)}
		var (
			vinPicture, mk, model, instructions sql.NullString
			year                                sql.NullInt64
		)
		if err := rows.Scan(&q.ID, &q.QuoteNumber, &q.Date, &q.VINNumber,
			&vinPicture, &year, &mk, &model, &instructions); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		q.VINPictureLink = vinPicture.String
		q.Year = int(year.Int64)
		q.Make = mk.String
		q.Model = model.String
		q.Instructions = instructions.String
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// insertServices writes service lines in declared category order. Lines
// with no cost and no photo are not stored.
func insertServices(ctx context.Context, tx *sql.Tx, quoteID int64, services map[ServiceKey]ServiceLine) error {
	for _, key := range ServiceKeys {
		line, ok := services[key]
		if !ok || (!line.Active() && line.PhotoLink == "") {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO quote_services (quote_id, service_key, photo_link, parts_cost, labor_cost)
			VALUES ($1, $2, $3, $4, $5)`,
			quoteID, string(key), nullString(line.PhotoLink), line.PartsCost, line.LaborCost)
		if err != nil {
			return fmt.Errorf("insert service %s: %w", key, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
