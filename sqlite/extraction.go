package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/carousel"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ carousel.ExtractionService = (*ExtractionService)(nil)

// ExtractionService implements carousel.ExtractionService using SQLite.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreateExtraction records an extraction and its items in one transaction.
// The content hash is computed from ext.Markup unless already set.
func (s *ExtractionService) CreateExtraction(ctx context.Context, ext *carousel.Extraction) error {
	if err := ext.Validate(); err != nil {
		return err
	}

	ext.ID = uuid.New().String()
	ext.ExtractedAt = time.Now().UTC().Truncate(time.Second)
	if ext.ContentHash == "" && ext.Markup != "" {
		ext.ContentHash = hashContent(ext.Markup)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO extractions (id, source_path, content_hash, list_name, extracted_at)
		VALUES (?, ?, ?, ?, ?)
	`, ext.ID, ext.SourcePath, ext.ContentHash, ext.Result.ListName,
		formatTime(ext.ExtractedAt)); err != nil {
		return err
	}

	for i, item := range ext.Result.Items {
		var image, extension sql.NullString
		if item.Image != nil {
			image = sql.NullString{String: *item.Image, Valid: true}
		}
		if len(item.Extensions) > 0 {
			extension = sql.NullString{String: item.Extensions[0], Valid: true}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO items (extraction_id, position, name, link, image, extension)
			VALUES (?, ?, ?, ?, ?, ?)
		`, ext.ID, i, item.Name, item.Link, image, extension); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindExtractionByID retrieves an extraction by ID, items included.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*carousel.Extraction, error) {
	exts, err := s.FindExtractions(ctx, carousel.ExtractionFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(exts) == 0 {
		return nil, carousel.Errorf(carousel.ENOTFOUND, "extraction not found")
	}
	return exts[0], nil
}

// FindExtractions retrieves extractions matching the filter, newest first.
func (s *ExtractionService) FindExtractions(ctx context.Context, filter carousel.ExtractionFilter) ([]*carousel.Extraction, error) {
	q := newSelect("SELECT id, source_path, content_hash, list_name, extracted_at FROM extractions")
	q.whereEq("id", filter.ID)
	q.whereEq("source_path", filter.SourcePath)
	q.whereEq("list_name", filter.ListName)
	q.orderBy("extracted_at DESC, rowid DESC")
	q.page(filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exts []*carousel.Extraction
	for rows.Next() {
		ext := &carousel.Extraction{Result: &carousel.Result{}}
		var extractedAt string

		if err := rows.Scan(&ext.ID, &ext.SourcePath, &ext.ContentHash, &ext.Result.ListName, &extractedAt); err != nil {
			return nil, err
		}
		if ext.ExtractedAt, err = parseTime(extractedAt, "extracted_at"); err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Release the single connection before loading items.
	rows.Close()

	for _, ext := range exts {
		if ext.Result.Items, err = s.findItems(ctx, ext.ID); err != nil {
			return nil, err
		}
	}

	return exts, nil
}

// DeleteExtraction removes an extraction; its items are removed by cascade.
func (s *ExtractionService) DeleteExtraction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return carousel.Errorf(carousel.ENOTFOUND, "extraction not found")
	}
	return nil
}

// findItems loads the items of an extraction in carousel order.
func (s *ExtractionService) findItems(ctx context.Context, extractionID string) ([]*carousel.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, link, image, extension
		FROM items
		WHERE extraction_id = ?
		ORDER BY position
	`, extractionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*carousel.Item{}
	for rows.Next() {
		var item carousel.Item
		var image, extension sql.NullString

		if err := rows.Scan(&item.Name, &item.Link, &image, &extension); err != nil {
			return nil, err
		}
		if image.Valid {
			item.Image = &image.String
		}
		if extension.Valid {
			item.Extensions = []string{extension.String}
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
