package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/didi/gendry/builder"

	"github.com/contentsuite/brandsuite/internal/model"
	"github.com/contentsuite/brandsuite/internal/pkg/dbutil"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
)

var manualColumns = []string{"id", "name", "description", "product_type", "tone", "target_audience", "full_manual", "ctime", "mtime"}

type ManualRepo struct {
	db *sql.DB
}

func NewManualRepo(db *sql.DB) *ManualRepo {
	return &ManualRepo{db: db}
}

func (r *ManualRepo) Create(ctx context.Context, manual *model.BrandManual) error {
	doc, err := encodeManual(manual.FullManual)
	if err != nil {
		return err
	}
	data := map[string]interface{}{
		"id":              manual.ID,
		"name":            manual.Name,
		"description":     manual.Description,
		"product_type":    manual.ProductType,
		"tone":            manual.Tone,
		"target_audience": manual.TargetAudience,
		"full_manual":     doc,
		"ctime":           manual.Ctime,
		"mtime":           manual.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("brand_manuals", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ManualRepo) List(ctx context.Context) ([]*model.BrandManual, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
	}
	sqlStr, args, err := builder.BuildSelect("brand_manuals", where, manualColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*model.BrandManual, 0)
	for rows.Next() {
		item, err := scanManual(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ManualRepo) GetByID(ctx context.Context, id string) (*model.BrandManual, error) {
	where := map[string]interface{}{
		"id": id,
	}
	sqlStr, args, err := builder.BuildSelect("brand_manuals", where, manualColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsInvalidText(err) {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, appErr.ErrNotFound
	}
	return scanManual(rows)
}

func (r *ManualRepo) Delete(ctx context.Context, id string) error {
	sqlStr, args, err := builder.BuildDelete("brand_manuals", map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsInvalidText(err) {
			return appErr.ErrNotFound
		}
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// ListStale returns ids of generated manuals whose index is missing or older than the manual.
func (r *ManualRepo) ListStale(ctx context.Context, limit int) ([]string, error) {
	const query = `
		SELECT m.id
		FROM brand_manuals m
		LEFT JOIN (
			SELECT manual_id, MAX(ctime) AS indexed_at
			FROM brand_manual_embeddings
			GROUP BY manual_id
		) e ON e.manual_id = m.id
		WHERE m.full_manual IS NOT NULL
			AND (e.manual_id IS NULL OR m.mtime > e.indexed_at)
		ORDER BY m.mtime ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListIDs returns the ids of every manual that has a generated document.
func (r *ManualRepo) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM brand_manuals WHERE full_manual IS NOT NULL ORDER BY ctime ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanManual(rows *sql.Rows) (*model.BrandManual, error) {
	var item model.BrandManual
	var doc []byte
	if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.ProductType, &item.Tone, &item.TargetAudience, &doc, &item.Ctime, &item.Mtime); err != nil {
		return nil, err
	}
	if len(doc) > 0 {
		item.FullManual = &model.ManualDocument{}
		if err := json.Unmarshal(doc, item.FullManual); err != nil {
			return nil, fmt.Errorf("decode full_manual of %s: %w", item.ID, err)
		}
	}
	return &item, nil
}

func encodeManual(doc *model.ManualDocument) (interface{}, error) {
	if doc == nil {
		return nil, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode full_manual: %w", err)
	}
	return string(data), nil
}
