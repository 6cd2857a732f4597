package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS name_options (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			description TEXT,
			avg_rating INTEGER DEFAULT 1500,
			popularity_score INTEGER DEFAULT 0,
			total_tournaments INTEGER DEFAULT 0,
			is_active BOOLEAN DEFAULT 1,
			categories TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS name_ratings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_name TEXT NOT NULL,
			name TEXT NOT NULL,
			rating INTEGER DEFAULT 1500,
			wins INTEGER DEFAULT 0,
			losses INTEGER DEFAULT 0,
			is_hidden BOOLEAN DEFAULT 0,
			rating_history TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_name, name)
		)`,
		`CREATE TABLE IF NOT EXISTS tournament_sessions (
			fingerprint TEXT PRIMARY KEY,
			user_name TEXT NOT NULL,
			state TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS user_prefs (
			user_name TEXT PRIMARY KEY,
			preferences TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_user ON name_ratings(user_name)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_name ON name_ratings(name)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON tournament_sessions(user_name)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// ===== Name options =====

const nameOptionColumns = `id, name, description, avg_rating, popularity_score, total_tournaments, is_active, categories`

func scanNameOption(scan func(dest ...interface{}) error) (*models.NameOption, error) {
	var opt models.NameOption
	var description, categoriesJSON sql.NullString
	if err := scan(&opt.ID, &opt.Name, &description, &opt.AvgRating, &opt.PopularityScore,
		&opt.TotalTournaments, &opt.Active, &categoriesJSON); err != nil {
		return nil, err
	}
	opt.Description = description.String
	if categoriesJSON.Valid && categoriesJSON.String != "" {
		if err := json.Unmarshal([]byte(categoriesJSON.String), &opt.Categories); err != nil {
			return nil, err
		}
	}
	return &opt, nil
}

func (r *Repository) listNameOptions(ctx context.Context, where string) ([]models.NameOption, error) {
	query := `SELECT ` + nameOptionColumns + ` FROM name_options`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []models.NameOption
	for rows.Next() {
		opt, err := scanNameOption(rows.Scan)
		if err != nil {
			return nil, err
		}
		options = append(options, *opt)
	}
	return options, rows.Err()
}

func (r *Repository) ListNameOptions(ctx context.Context) ([]models.NameOption, error) {
	return r.listNameOptions(ctx, "")
}

func (r *Repository) ListActiveNameOptions(ctx context.Context) ([]models.NameOption, error) {
	return r.listNameOptions(ctx, "is_active = 1")
}

func (r *Repository) GetNameOption(ctx context.Context, id int) (*models.NameOption, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+nameOptionColumns+` FROM name_options WHERE id = ?`, id)
	opt, err := scanNameOption(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return opt, err
}

func (r *Repository) GetNameOptionByName(ctx context.Context, name string) (*models.NameOption, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+nameOptionColumns+` FROM name_options WHERE name = ?`, name)
	opt, err := scanNameOption(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return opt, err
}

func (r *Repository) CreateNameOption(ctx context.Context, name, description string, categories []string) (int64, error) {
	var categoriesJSON sql.NullString
	if len(categories) > 0 {
		data, _ := json.Marshal(categories) // Marshal on []string never fails
		categoriesJSON = sql.NullString{String: string(data), Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO name_options (name, description, categories) VALUES (?, ?, ?)`,
		name, description, categoriesJSON)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repository) SetNameActive(ctx context.Context, id int, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE name_options SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateNameStats refreshes a name's aggregate rating from all users'
// records and applies popularity/tournament deltas.
func (r *Repository) UpdateNameStats(ctx context.Context, name string, popularityDelta, tournamentsDelta int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE name_options
		SET avg_rating = COALESCE(
			(SELECT CAST(ROUND(AVG(rating)) AS INTEGER) FROM name_ratings WHERE name = ?),
			avg_rating),
		    popularity_score = popularity_score + ?,
		    total_tournaments = total_tournaments + ?
		WHERE name = ?`,
		name, popularityDelta, tournamentsDelta, name)
	return err
}

// ===== Per-user ratings =====

func (r *Repository) GetUserRatings(ctx context.Context, userName string) (map[string]models.Rating, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, rating, wins, losses FROM name_ratings WHERE user_name = ?`, userName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make(map[string]models.Rating)
	for rows.Next() {
		var name string
		var rec models.Rating
		if err := rows.Scan(&name, &rec.Rating, &rec.Wins, &rec.Losses); err != nil {
			return nil, err
		}
		ratings[name] = rec
	}
	return ratings, rows.Err()
}

func (r *Repository) GetUserRating(ctx context.Context, userName, name string) (*models.Rating, error) {
	var rec models.Rating
	err := r.db.QueryRowContext(ctx,
		`SELECT rating, wins, losses FROM name_ratings WHERE user_name = ? AND name = ?`,
		userName, name).Scan(&rec.Rating, &rec.Wins, &rec.Losses)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) SaveUserRating(ctx context.Context, userName, name string, rec models.Rating) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO name_ratings (user_name, name, rating, wins, losses, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_name, name) DO UPDATE SET
			rating = excluded.rating,
			wins = excluded.wins,
			losses = excluded.losses,
			updated_at = CURRENT_TIMESTAMP`,
		userName, name, rec.Rating, rec.Wins, rec.Losses)
	return err
}

func (r *Repository) AppendRatingHistory(ctx context.Context, userName, name string, sample models.RatingSample) error {
	history, err := r.GetRatingHistory(ctx, userName, name)
	if err != nil {
		return err
	}
	history = append(history, sample)
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE name_ratings SET rating_history = ? WHERE user_name = ? AND name = ?`,
		string(data), userName, name)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetRatingHistory(ctx context.Context, userName, name string) ([]models.RatingSample, error) {
	var historyJSON sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT rating_history FROM name_ratings WHERE user_name = ? AND name = ?`,
		userName, name).Scan(&historyJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !historyJSON.Valid || historyJSON.String == "" {
		return nil, nil
	}
	var history []models.RatingSample
	if err := json.Unmarshal([]byte(historyJSON.String), &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *Repository) SetNameHidden(ctx context.Context, userName, name string, hidden bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO name_ratings (user_name, name, is_hidden, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_name, name) DO UPDATE SET
			is_hidden = excluded.is_hidden,
			updated_at = CURRENT_TIMESTAMP`,
		userName, name, hidden)
	return err
}

func (r *Repository) ListHiddenNames(ctx context.Context, userName string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM name_ratings WHERE user_name = ? AND is_hidden = 1 ORDER BY name`, userName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ===== Tournament sessions =====

func (r *Repository) LoadSession(ctx context.Context, fingerprint string) (*models.SessionState, error) {
	var stateJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT state FROM tournament_sessions WHERE fingerprint = ?`, fingerprint).Scan(&stateJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var state models.SessionState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *Repository) SaveSession(ctx context.Context, fingerprint string, state *models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tournament_sessions (fingerprint, user_name, state, updated_at)
		VALUES (?, ?, ?, ?)`,
		fingerprint, state.UserName, string(data), time.Now().UTC())
	return err
}

func (r *Repository) DeleteSession(ctx context.Context, fingerprint string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tournament_sessions WHERE fingerprint = ?`, fingerprint)
	return err
}

// ===== User preferences =====

func (r *Repository) GetPreferences(ctx context.Context, userName string) (json.RawMessage, error) {
	var prefs string
	err := r.db.QueryRowContext(ctx,
		`SELECT preferences FROM user_prefs WHERE user_name = ?`, userName).Scan(&prefs)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(prefs), nil
}

func (r *Repository) SavePreferences(ctx context.Context, userName string, prefs json.RawMessage) error {
	if !json.Valid(prefs) {
		return ErrInvalidPreferences
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO user_prefs (user_name, preferences, updated_at)
		VALUES (?, ?, ?)`,
		userName, string(prefs), time.Now().UTC())
	return err
}

// ErrInvalidPreferences is returned when a preferences payload is not
// valid JSON.
var ErrInvalidPreferences = errors.New("preferences must be valid JSON")
