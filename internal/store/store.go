package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dgallion1/stackadvisor/internal/advisor"
)

// Store persists questionnaire sessions, their answers and the derived
// recommendations in SQLite. It is a collaborator of the evaluation path:
// write failures are reported to the caller for logging but never affect
// the recommendations returned to the client.
type Store struct {
	db *sql.DB
}

// Session is a stored questionnaire run.
type Session struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Answers   []advisor.Answer `json:"answers"`
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			timestamp TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT,
			question_id TEXT,
			answer_id TEXT,
			phase INTEGER,
			FOREIGN KEY(session_id) REFERENCES sessions(id)
		)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT,
			category TEXT,
			recommendation TEXT,
			FOREIGN KEY(session_id) REFERENCES sessions(id)
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// SaveSession stores a session and its answers.
func (s *Store) SaveSession(ctx context.Context, session Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions(id, timestamp) VALUES(?, ?)`,
		session.ID, session.Timestamp.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	for _, a := range session.Answers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO answers(session_id, question_id, answer_id, phase) VALUES(?, ?, ?, ?)`,
			session.ID, a.QuestionID, a.AnswerID, a.Phase,
		); err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
	}
	return tx.Commit()
}

// SaveEvaluation stores a session, its answers and the categorized
// recommendations produced for it.
func (s *Store) SaveEvaluation(ctx context.Context, session Session, recs advisor.Recommendations) error {
	if err := s.SaveSession(ctx, session); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Fixed category order keeps row order deterministic.
	for _, cat := range advisor.Categories {
		for _, text := range recs[cat] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recommendations(session_id, category, recommendation) VALUES(?, ?, ?)`,
				session.ID, string(cat), text,
			); err != nil {
				return fmt.Errorf("insert recommendation: %w", err)
			}
		}
	}
	return tx.Commit()
}

// GetSession loads a stored session and its answers. Returns nil when the
// session does not exist.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var ts string
	err := s.db.QueryRowContext(ctx,
		`SELECT timestamp FROM sessions WHERE id = ?`, id,
	).Scan(&ts)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	session := &Session{ID: id}
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		session.Timestamp = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, answer_id, phase FROM answers WHERE session_id = ? ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a advisor.Answer
		if err := rows.Scan(&a.QuestionID, &a.AnswerID, &a.Phase); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		session.Answers = append(session.Answers, a)
	}
	return session, rows.Err()
}

// GetRecommendations loads the stored recommendation mapping of a session.
// Categories with no rows come back as empty lists.
func (s *Store) GetRecommendations(ctx context.Context, sessionID string) (advisor.Recommendations, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, recommendation FROM recommendations WHERE session_id = ? ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	recs := make(advisor.Recommendations, len(advisor.Categories))
	for _, cat := range advisor.Categories {
		recs[cat] = []string{}
	}
	for rows.Next() {
		var cat, text string
		if err := rows.Scan(&cat, &text); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		recs[advisor.Category(cat)] = append(recs[advisor.Category(cat)], text)
	}
	return recs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
