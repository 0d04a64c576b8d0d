package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"github.com/contentsuite/brandsuite/internal/model"
	"github.com/contentsuite/brandsuite/internal/pkg/dbutil"
	appErr "github.com/contentsuite/brandsuite/internal/pkg/errors"
)

type EmbeddingRepo struct {
	db *sql.DB
}

func NewEmbeddingRepo(db *sql.DB) *EmbeddingRepo {
	return &EmbeddingRepo{db: db}
}

// ReplaceByManual swaps the whole index of a manual inside one transaction, so readers see
// either the previous records or the new ones.
func (r *EmbeddingRepo) ReplaceByManual(ctx context.Context, manualID string, records []model.EmbeddingRecord, now int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	sqlDelete, deleteArgs := dbutil.Finalize("DELETE FROM brand_manual_embeddings WHERE manual_id=?", []interface{}{manualID})
	if _, err = tx.ExecContext(ctx, sqlDelete, deleteArgs...); err != nil {
		if dbutil.IsInvalidText(err) {
			return appErr.ErrNotFound
		}
		return err
	}
	for _, rec := range records {
		sqlStr, args, buildErr := builder.BuildInsert("brand_manual_embeddings", []map[string]interface{}{{
			"manual_id": manualID,
			"content":   rec.Content,
			"section":   rec.Section,
			"embedding": pgvector.NewVector(rec.Embedding),
			"ctime":     now,
		}})
		if buildErr != nil {
			err = buildErr
			return err
		}
		sqlStr, args = dbutil.Finalize(sqlStr, args)
		if _, err = tx.ExecContext(ctx, sqlStr, args...); err != nil {
			if dbutil.IsForeignKeyViolation(err) {
				return appErr.ErrNotFound
			}
			return err
		}
	}
	err = tx.Commit()
	return err
}

func (r *EmbeddingRepo) DeleteByManual(ctx context.Context, manualID string) error {
	sqlStr, args, err := builder.BuildDelete("brand_manual_embeddings", map[string]interface{}{"manual_id": manualID})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// MatchEmbeddings runs the nearest neighbour procedure for one manual, best match first.
func (r *EmbeddingRepo) MatchEmbeddings(ctx context.Context, queryEmbedding []float32, manualID string, count int) ([]model.SearchResult, error) {
	const query = `
		SELECT id, manual_id, content, section, similarity
		FROM match_brand_manual_embeddings($1, $2, $3)
	`
	rows, err := r.db.QueryContext(ctx, query, pgvector.NewVector(queryEmbedding), manualID, count)
	if err != nil {
		if dbutil.IsInvalidText(err) {
			return []model.SearchResult{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	results := make([]model.SearchResult, 0, count)
	for rows.Next() {
		var item model.SearchResult
		if err := rows.Scan(&item.ID, &item.ManualID, &item.Content, &item.Section, &item.Similarity); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// SectionCounts returns the number of indexed chunks per section of a manual.
func (r *EmbeddingRepo) SectionCounts(ctx context.Context, manualID string) (map[string]int, error) {
	sqlStr, args, err := builder.BuildSelect("brand_manual_embeddings", map[string]interface{}{
		"manual_id": manualID,
		"_groupby":  "section",
	}, []string{"section", "COUNT(*) AS cnt"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsInvalidText(err) {
			return map[string]int{}, nil
		}
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var section string
		var cnt int
		if err := rows.Scan(&section, &cnt); err != nil {
			return nil, err
		}
		counts[section] = cnt
	}
	return counts, rows.Err()
}

// CountByManuals returns indexed chunk counts keyed by manual id; manuals without chunks are absent.
func (r *EmbeddingRepo) CountByManuals(ctx context.Context, manualIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(manualIDs) == 0 {
		return counts, nil
	}
	query, args, err := sqlx.In(`SELECT manual_id, COUNT(*) FROM brand_manual_embeddings WHERE manual_id IN (?) GROUP BY manual_id`, manualIDs)
	if err != nil {
		return nil, err
	}
	query, args = dbutil.Finalize(query, args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var cnt int
		if err := rows.Scan(&id, &cnt); err != nil {
			return nil, err
		}
		counts[id] = cnt
	}
	return counts, rows.Err()
}
