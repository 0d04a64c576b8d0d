package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/didi/gendry/builder"

	"github.com/contentsuite/brandsuite/internal/model"
	"github.com/contentsuite/brandsuite/internal/pkg/dbutil"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
)

type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Create(ctx context.Context, item *model.ImageAudit) error {
	issues, err := json.Marshal(nonNil(item.Issues))
	if err != nil {
		return err
	}
	recommendations, err := json.Marshal(nonNil(item.Recommendations))
	if err != nil {
		return err
	}
	var categories interface{}
	if item.CategoryScores != nil {
		data, err := json.Marshal(item.CategoryScores)
		if err != nil {
			return err
		}
		categories = string(data)
	}
	sqlStr, args, err := builder.BuildInsert("image_audits", []map[string]interface{}{{
		"id":              item.ID,
		"manual_id":       item.ManualID,
		"image_key":       item.ImageKey,
		"mime_type":       item.MimeType,
		"compliant":       item.Compliant,
		"score":           item.Score,
		"issues":          string(issues),
		"recommendations": string(recommendations),
		"analysis":        item.Analysis,
		"category_scores": categories,
		"fallback":        item.Fallback,
		"ctime":           item.Ctime,
	}})
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

const auditSelect = `
	SELECT a.id, a.manual_id, m.name, a.image_key, a.mime_type, a.compliant, a.score,
		a.issues, a.recommendations, a.analysis, a.category_scores, a.fallback, a.ctime
	FROM image_audits a
	JOIN brand_manuals m ON m.id = a.manual_id
`

func (r *AuditRepo) ListByManual(ctx context.Context, manualID string) ([]*model.ImageAudit, error) {
	rows, err := r.db.QueryContext(ctx, auditSelect+` WHERE a.manual_id = $1 ORDER BY a.ctime DESC`, manualID)
	if err != nil {
		if dbutil.IsInvalidText(err) {
			return []*model.ImageAudit{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	items := make([]*model.ImageAudit, 0)
	for rows.Next() {
		item, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *AuditRepo) GetByID(ctx context.Context, id string) (*model.ImageAudit, error) {
	rows, err := r.db.QueryContext(ctx, auditSelect+` WHERE a.id = $1`, id)
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
	return scanAudit(rows)
}

func scanAudit(rows *sql.Rows) (*model.ImageAudit, error) {
	var item model.ImageAudit
	var issues, recommendations, categories []byte
	if err := rows.Scan(&item.ID, &item.ManualID, &item.ManualName, &item.ImageKey, &item.MimeType,
		&item.Compliant, &item.Score, &issues, &recommendations, &item.Analysis, &categories,
		&item.Fallback, &item.Ctime); err != nil {
		return nil, err
	}
	item.Issues = []string{}
	item.Recommendations = []string{}
	if err := json.Unmarshal(issues, &item.Issues); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(recommendations, &item.Recommendations); err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		item.CategoryScores = &model.CategoryScores{}
		if err := json.Unmarshal(categories, item.CategoryScores); err != nil {
			return nil, err
		}
	}
	return &item, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
