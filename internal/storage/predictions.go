package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/common"
	"github.com/BINABASS091/fugajiSmart-front-sub001/internal/model"
)

const predictionColumns = `id, label, confidence, status, severity, confidence_band,
	message, recommendations, actions, confidence_narrative, source, created_at`

// DefaultListLimit bounds ListPredictions when the filter sets no limit.
const DefaultListLimit = 50

// SavePrediction stores a prediction, assigning an ID and timestamp when unset.
func (s *SQLiteStorage) SavePrediction(ctx context.Context, p *model.Prediction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePrediction(p); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.savePredictionTx(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

// SavePredictions stores several predictions in one transaction.
func (s *SQLiteStorage) SavePredictions(ctx context.Context, ps []*model.Prediction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePredictions(ps); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range ps {
		if err := s.savePredictionTx(ctx, tx, p); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) savePredictionTx(ctx context.Context, tx *sql.Tx, p *model.Prediction) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC()
	if p.Source == "" {
		p.Source = model.SourceInteractive
	}

	recs, err := json.Marshal(p.Interpretation.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	actions, err := json.Marshal(p.Interpretation.Actions)
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO predictions (`+predictionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Signal.Label,
		p.Signal.Confidence,
		string(p.Interpretation.Status),
		string(p.Interpretation.Severity),
		string(p.Interpretation.ConfidenceBand),
		p.Interpretation.Message,
		string(recs),
		string(actions),
		p.Interpretation.ConfidenceNarrative,
		p.Source,
		p.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: prediction %s", common.ErrDuplicateEntry, p.ID)
		}
		return fmt.Errorf("failed to save prediction: %w", err)
	}

	return nil
}

// GetPrediction returns the prediction with the given ID.
func (s *SQLiteStorage) GetPrediction(ctx context.Context, id string) (*model.Prediction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+predictionColumns+` FROM predictions WHERE id = ?`, id)
	p, err := scanPrediction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: prediction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPredictions returns predictions newest first.
func (s *SQLiteStorage) ListPredictions(ctx context.Context, filter model.PredictionFilter) ([]model.Prediction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT ` + predictionColumns + ` FROM predictions`
	args := make([]any, 0, 2)
	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*filter.Status))
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var predictions []model.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, nil
}

// CountByStatus returns how many stored predictions carry each status.
func (s *SQLiteStorage) CountByStatus(ctx context.Context) (map[model.Status]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM predictions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[model.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counts: %w", err)
	}

	return counts, nil
}

// DeletePredictions removes predictions created before the given time. A zero
// time removes everything.
func (s *SQLiteStorage) DeletePredictions(ctx context.Context, before time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var (
		res sql.Result
		err error
	)
	if before.IsZero() {
		res, err = s.db.ExecContext(ctx, `DELETE FROM predictions`)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM predictions WHERE created_at < ?`, before.UTC())
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete predictions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted predictions: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (*model.Prediction, error) {
	var (
		p                            model.Prediction
		status, severity, band       string
		recommendations, actionsJSON string
	)

	err := row.Scan(
		&p.ID,
		&p.Signal.Label,
		&p.Signal.Confidence,
		&status,
		&severity,
		&band,
		&p.Interpretation.Message,
		&recommendations,
		&actionsJSON,
		&p.Interpretation.ConfidenceNarrative,
		&p.Source,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}

	p.Interpretation.Status = model.Status(status)
	p.Interpretation.Severity = model.Severity(severity)
	p.Interpretation.ConfidenceBand = model.ConfidenceBand(band)

	if err := json.Unmarshal([]byte(recommendations), &p.Interpretation.Recommendations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recommendations: %w", err)
	}
	if err := json.Unmarshal([]byte(actionsJSON), &p.Interpretation.Actions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal actions: %w", err)
	}

	return &p, nil
}
