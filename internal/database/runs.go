package database

import "database/sql"

// StartRun records the beginning of a pipeline run.
func (db *DB) StartRun(id string) error {
	_, err := db.conn.Exec("INSERT INTO run_reports (id) VALUES (?)", id)
	return err
}

// FinishRun stores a run's final counters.
func (db *DB) FinishRun(r *RunReport) error {
	_, err := db.conn.Exec(
		`UPDATE run_reports SET finished_at = datetime('now'),
			collected = ?, fetched = ?, processed = ?, included = ?, cut = ?
		WHERE id = ?`,
		r.Collected, r.Fetched, r.Processed, r.Included, r.Cut, r.ID,
	)
	return err
}

// LatestRun returns the most recent run report, or nil when no run exists.
func (db *DB) LatestRun() (*RunReport, error) {
	row := db.conn.QueryRow(
		`SELECT id, started_at, finished_at, collected, fetched, processed, included, cut
		FROM run_reports ORDER BY started_at DESC LIMIT 1`,
	)
	var r RunReport
	err := row.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Collected, &r.Fetched, &r.Processed, &r.Included, &r.Cut)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetStats returns aggregate statistics across the whole database.
func (db *DB) GetStats() (*Stats, error) {
	var s Stats
	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM articles", &s.TotalArticles},
		{"SELECT COUNT(*) FROM articles WHERE content_fetched = 1", &s.FetchedArticles},
		{"SELECT COUNT(*) FROM articles WHERE processed_at IS NOT NULL", &s.ProcessedArticles},
		{"SELECT COUNT(*) FROM articles WHERE assessment = 'INCLUDE'", &s.Included},
		{"SELECT COUNT(*) FROM articles WHERE assessment = 'OK'", &s.OK},
		{"SELECT COUNT(*) FROM articles WHERE assessment = 'CUT'", &s.Cut},
		{"SELECT COUNT(*) FROM run_reports", &s.Runs},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
