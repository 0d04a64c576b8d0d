package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/contentsuite/brandsuite/internal/model"
	"github.com/contentsuite/brandsuite/internal/pkg/dbutil"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
)

var contentColumns = []string{"id", "manual_id", "content_type", "user_prompt", "generated_text", "status", "ctime", "mtime"}

type ContentRepo struct {
	db *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

func (r *ContentRepo) Create(ctx context.Context, item *model.GeneratedContent) error {
	data := map[string]interface{}{
		"id":             item.ID,
		"manual_id":      item.ManualID,
		"content_type":   item.ContentType,
		"user_prompt":    item.UserPrompt,
		"generated_text": item.GeneratedText,
		"status":         item.Status,
		"ctime":          item.Ctime,
		"mtime":          item.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("generated_content", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if dbutil.IsForeignKeyViolation(err) {
			return appErr.ErrNotFound
		}
		return err
	}
	return nil
}

// List returns content newest first, optionally limited to one manual.
func (r *ContentRepo) List(ctx context.Context, manualID string, limit int) ([]*model.GeneratedContent, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
	}
	if manualID != "" {
		where["manual_id"] = manualID
	}
	if limit > 0 {
		where["_limit"] = []uint{0, uint(limit)}
	}
	sqlStr, args, err := builder.BuildSelect("generated_content", where, contentColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsInvalidText(err) {
			return []*model.GeneratedContent{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	items := make([]*model.GeneratedContent, 0)
	for rows.Next() {
		var item model.GeneratedContent
		if err := rows.Scan(&item.ID, &item.ManualID, &item.ContentType, &item.UserPrompt, &item.GeneratedText, &item.Status, &item.Ctime, &item.Mtime); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *ContentRepo) UpdateStatus(ctx context.Context, id, status string, mtime int64) error {
	sqlStr, args, err := builder.BuildUpdate("generated_content",
		map[string]interface{}{"id": id},
		map[string]interface{}{"status": status, "mtime": mtime},
	)
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
