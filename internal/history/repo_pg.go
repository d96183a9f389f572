package history

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Insert(ctx context.Context, run Run) error {
	const query = `
INSERT INTO analysis_runs (id, mode, document_hash, semantic_score, keyword_score, keyword_density, missing_skills, warnings, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		run.ID,
		run.Mode,
		run.DocumentHash,
		run.SemanticScore,
		run.KeywordScore,
		run.KeywordDensity,
		run.MissingSkills,
		run.Warnings,
		run.CreatedAt,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Run, error) {
	const query = `
SELECT id, mode, document_hash, semantic_score, keyword_score, keyword_density, missing_skills, warnings, created_at
FROM analysis_runs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID,
			&run.Mode,
			&run.DocumentHash,
			&run.SemanticScore,
			&run.KeywordScore,
			&run.KeywordDensity,
			&run.MissingSkills,
			&run.Warnings,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
