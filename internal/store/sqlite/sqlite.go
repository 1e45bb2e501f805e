package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vovakirdan/gymsync-server/internal/store"
)

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Schema creates all tables when they do not exist yet.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'client',
	is_guest      BOOLEAN NOT NULL DEFAULT 0,
	session_id    TEXT,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS exercises (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	image_url   TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS routines (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	coach_id    INTEGER NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (coach_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS routine_exercises (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	routine_id   INTEGER NOT NULL,
	exercise_id  INTEGER NOT NULL,
	position     INTEGER NOT NULL,
	sets         INTEGER NOT NULL DEFAULT 0,
	reps         INTEGER NOT NULL DEFAULT 0,
	rest_seconds INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (routine_id) REFERENCES routines(id),
	FOREIGN KEY (exercise_id) REFERENCES exercises(id)
);

CREATE TABLE IF NOT EXISTS invitations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	code        TEXT NOT NULL UNIQUE,
	coach_id    INTEGER NOT NULL,
	redeemed_by INTEGER,
	expires_at  DATETIME NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (coach_id) REFERENCES users(id),
	FOREIGN KEY (redeemed_by) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS coach_links (
	coach_id   INTEGER NOT NULL,
	client_id  INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (coach_id, client_id),
	FOREIGN KEY (coach_id) REFERENCES users(id),
	FOREIGN KEY (client_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS live_sessions (
	id         TEXT PRIMARY KEY,
	code       TEXT NOT NULL UNIQUE,
	routine_id INTEGER NOT NULL,
	host_id    INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (routine_id) REFERENCES routines(id),
	FOREIGN KEY (host_id) REFERENCES users(id)
);

CREATE INDEX IF NOT EXISTS idx_routines_coach ON routines(coach_id);
CREATE INDEX IF NOT EXISTS idx_routine_exercises_routine ON routine_exercises(routine_id, position);
CREATE INDEX IF NOT EXISTS idx_exercises_category ON exercises(category);
CREATE INDEX IF NOT EXISTS idx_coach_links_client ON coach_links(client_id);
`

// New creates a new SQLite store and ensures the schema exists.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(Schema)
		return err
	})
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply a custom schema.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== UserStore implementation ====

// CreateUser creates a new account with hashed password and role.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, passwordHash string, role store.Role) (*store.User, error) {
	query := `
		INSERT INTO users (username, password_hash, role, is_guest)
		VALUES (?, ?, ?, 0)
	`
	result, err := s.db.ExecContext(ctx, query, username, passwordHash, string(role))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

// CreateGuestUser creates a temporary guest account with session ID.
func (s *SQLiteStore) CreateGuestUser(ctx context.Context, sessionID string) (*store.User, error) {
	query := `
		INSERT INTO users (username, password_hash, role, is_guest, session_id)
		VALUES (?, '', 'client', 1, ?)
	`
	guestUsername := "guest_" + sessionID[:8]

	result, err := s.db.ExecContext(ctx, query, guestUsername, sessionID)
	if err != nil {
		return nil, fmt.Errorf("insert guest user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.GetUserByID(ctx, id)
}

const userColumns = `id, username, password_hash, role, is_guest, COALESCE(session_id, ''), created_at`

func scanUser(row interface{ Scan(...any) error }) (*store.User, error) {
	var user store.User
	var role string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.IsGuest,
		&user.SessionID,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = store.Role(role)
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*store.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a registered user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? AND is_guest = 0`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

// GetUserBySessionID retrieves a guest user by session ID.
func (s *SQLiteStore) GetUserBySessionID(ctx context.Context, sessionID string) (*store.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE session_id = ? AND is_guest = 1`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query guest user: %w", err)
	}
	return user, nil
}

// SearchUsers searches registered users by username substring.
func (s *SQLiteStore) SearchUsers(ctx context.Context, query string) ([]*store.User, error) {
	stmt := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username LIKE ? AND is_guest = 0
		ORDER BY username
		LIMIT 50
	`
	rows, err := s.db.QueryContext(ctx, stmt, "%"+escapeLike(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	users := make([]*store.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func escapeLike(q string) string {
	q = strings.ReplaceAll(q, "%", `\%`)
	return strings.ReplaceAll(q, "_", `\_`)
}

// ==== ExerciseStore implementation ====

// CreateExercise adds a catalog entry.
func (s *SQLiteStore) CreateExercise(ctx context.Context, ex *store.Exercise) (*store.Exercise, error) {
	query := `
		INSERT INTO exercises (name, category, description, image_url)
		VALUES (?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, ex.Name, ex.Category, ex.Description, ex.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.GetExerciseByID(ctx, id)
}

// GetExerciseByID retrieves an exercise by ID.
func (s *SQLiteStore) GetExerciseByID(ctx context.Context, id int64) (*store.Exercise, error) {
	query := `
		SELECT id, name, category, description, image_url, created_at
		FROM exercises
		WHERE id = ?
	`
	var ex store.Exercise
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&ex.ID, &ex.Name, &ex.Category, &ex.Description, &ex.ImageURL, &ex.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query exercise: %w", err)
	}
	return &ex, nil
}

// UpdateExercise overwrites name, category, description and image.
func (s *SQLiteStore) UpdateExercise(ctx context.Context, ex *store.Exercise) error {
	query := `
		UPDATE exercises
		SET name = ?, category = ?, description = ?, image_url = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query, ex.Name, ex.Category, ex.Description, ex.ImageURL, ex.ID)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteExercise removes a catalog entry.
func (s *SQLiteStore) DeleteExercise(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListExercises lists the catalog, optionally filtered.
func (s *SQLiteStore) ListExercises(ctx context.Context, category, query string) ([]*store.Exercise, error) {
	stmt := `
		SELECT id, name, category, description, image_url, created_at
		FROM exercises
		WHERE (? = '' OR category = ?)
		  AND (? = '' OR name LIKE ?)
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, stmt, category, category, query, "%"+escapeLike(query)+"%")
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]*store.Exercise, 0)
	for rows.Next() {
		var ex store.Exercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Category, &ex.Description, &ex.ImageURL, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, &ex)
	}
	return exercises, rows.Err()
}

// ==== RoutineStore implementation ====

// CreateRoutine creates a routine owned by a coach.
func (s *SQLiteStore) CreateRoutine(ctx context.Context, coachID int64, title, description string) (*store.Routine, error) {
	query := `
		INSERT INTO routines (coach_id, title, description)
		VALUES (?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, coachID, title, description)
	if err != nil {
		return nil, fmt.Errorf("insert routine: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.GetRoutineByID(ctx, id)
}

// GetRoutineByID retrieves a routine by ID.
func (s *SQLiteStore) GetRoutineByID(ctx context.Context, id int64) (*store.Routine, error) {
	query := `
		SELECT id, coach_id, title, description, created_at, updated_at
		FROM routines
		WHERE id = ?
	`
	var r store.Routine
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&r.ID, &r.CoachID, &r.Title, &r.Description, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query routine: %w", err)
	}
	return &r, nil
}

// ListRoutinesByCoach lists a coach's routines.
func (s *SQLiteStore) ListRoutinesByCoach(ctx context.Context, coachID int64) ([]*store.Routine, error) {
	query := `
		SELECT id, coach_id, title, description, created_at, updated_at
		FROM routines
		WHERE coach_id = ?
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, coachID)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	routines := make([]*store.Routine, 0)
	for rows.Next() {
		var r store.Routine
		if err := rows.Scan(&r.ID, &r.CoachID, &r.Title, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}
		routines = append(routines, &r)
	}
	return routines, rows.Err()
}

// UpdateRoutine overwrites title and description.
func (s *SQLiteStore) UpdateRoutine(ctx context.Context, r *store.Routine) error {
	query := `
		UPDATE routines
		SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query, r.Title, r.Description, r.ID)
	if err != nil {
		return fmt.Errorf("update routine: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteRoutine removes a routine and its exercise rows.
func (s *SQLiteStore) DeleteRoutine(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM routine_exercises WHERE routine_id = ?`, id); err != nil {
		return fmt.Errorf("delete routine exercises: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM routines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

// SetRoutineExercises replaces the ordered exercise rows of a routine.
func (s *SQLiteStore) SetRoutineExercises(ctx context.Context, routineID int64, items []store.RoutineExercise) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM routine_exercises WHERE routine_id = ?`, routineID); err != nil {
		return fmt.Errorf("clear routine exercises: %w", err)
	}

	stmt := `
		INSERT INTO routine_exercises (routine_id, exercise_id, position, sets, reps, rest_seconds)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, item := range items {
		if _, err := tx.ExecContext(ctx, stmt, routineID, item.ExerciseID, i, item.Sets, item.Reps, item.RestSeconds); err != nil {
			return fmt.Errorf("insert routine exercise: %w", err)
		}
	}

	return tx.Commit()
}

// ListRoutineExercises returns the ordered exercise rows.
func (s *SQLiteStore) ListRoutineExercises(ctx context.Context, routineID int64) ([]*store.RoutineExercise, error) {
	query := `
		SELECT id, routine_id, exercise_id, position, sets, reps, rest_seconds
		FROM routine_exercises
		WHERE routine_id = ?
		ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query, routineID)
	if err != nil {
		return nil, fmt.Errorf("list routine exercises: %w", err)
	}
	defer rows.Close()

	items := make([]*store.RoutineExercise, 0)
	for rows.Next() {
		var item store.RoutineExercise
		if err := rows.Scan(&item.ID, &item.RoutineID, &item.ExerciseID, &item.Position, &item.Sets, &item.Reps, &item.RestSeconds); err != nil {
			return nil, fmt.Errorf("scan routine exercise: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// ==== InviteStore implementation ====

// CreateInvitation stores a new invitation code for a coach.
func (s *SQLiteStore) CreateInvitation(ctx context.Context, code string, coachID int64, expiresAt time.Time) (*store.Invitation, error) {
	query := `
		INSERT INTO invitations (code, coach_id, expires_at)
		VALUES (?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, code, coachID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("insert invitation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return s.getInvitationByID(ctx, id)
}

func (s *SQLiteStore) getInvitationByID(ctx context.Context, id int64) (*store.Invitation, error) {
	query := `
		SELECT id, code, coach_id, redeemed_by, expires_at, created_at
		FROM invitations
		WHERE id = ?
	`
	var inv store.Invitation
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.Code, &inv.CoachID, &inv.RedeemedBy, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query invitation: %w", err)
	}
	return &inv, nil
}

// GetInvitationByCode retrieves an invitation by its code.
func (s *SQLiteStore) GetInvitationByCode(ctx context.Context, code string) (*store.Invitation, error) {
	query := `
		SELECT id, code, coach_id, redeemed_by, expires_at, created_at
		FROM invitations
		WHERE code = ?
	`
	var inv store.Invitation
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&inv.ID, &inv.Code, &inv.CoachID, &inv.RedeemedBy, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query invitation: %w", err)
	}
	return &inv, nil
}

// RedeemInvitation marks the code as used by the client.
func (s *SQLiteStore) RedeemInvitation(ctx context.Context, code string, clientID int64) error {
	query := `
		UPDATE invitations
		SET redeemed_by = ?
		WHERE code = ? AND redeemed_by IS NULL
	`
	result, err := s.db.ExecContext(ctx, query, clientID, code)
	if err != nil {
		return fmt.Errorf("redeem invitation: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// LinkClient ties a client to a coach. Idempotent.
func (s *SQLiteStore) LinkClient(ctx context.Context, coachID, clientID int64) error {
	query := `
		INSERT OR IGNORE INTO coach_links (coach_id, client_id)
		VALUES (?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, coachID, clientID); err != nil {
		return fmt.Errorf("link client: %w", err)
	}
	return nil
}

// ListClients lists the clients linked to a coach.
func (s *SQLiteStore) ListClients(ctx context.Context, coachID int64) ([]*store.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.role, u.is_guest, COALESCE(u.session_id, ''), u.created_at
		FROM users u
		JOIN coach_links l ON l.client_id = u.id
		WHERE l.coach_id = ?
		ORDER BY u.username
	`
	rows, err := s.db.QueryContext(ctx, query, coachID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*store.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, user)
	}
	return clients, rows.Err()
}

// GetCoachForClient returns the coach a client is linked to.
func (s *SQLiteStore) GetCoachForClient(ctx context.Context, clientID int64) (*store.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.role, u.is_guest, COALESCE(u.session_id, ''), u.created_at
		FROM users u
		JOIN coach_links l ON l.coach_id = u.id
		WHERE l.client_id = ?
		LIMIT 1
	`
	user, err := scanUser(s.db.QueryRowContext(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query coach: %w", err)
	}
	return user, nil
}

// ==== SessionStore implementation ====

// CreateLiveSession stores a joinable session.
func (s *SQLiteStore) CreateLiveSession(ctx context.Context, id, code string, routineID, hostID int64) (*store.LiveSession, error) {
	query := `
		INSERT INTO live_sessions (id, code, routine_id, host_id)
		VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, id, code, routineID, hostID); err != nil {
		return nil, fmt.Errorf("insert live session: %w", err)
	}

	return s.GetLiveSessionByCode(ctx, code)
}

// GetLiveSessionByCode retrieves a session by its join code.
func (s *SQLiteStore) GetLiveSessionByCode(ctx context.Context, code string) (*store.LiveSession, error) {
	query := `
		SELECT id, code, routine_id, host_id, created_at
		FROM live_sessions
		WHERE code = ?
	`
	var ls store.LiveSession
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&ls.ID, &ls.Code, &ls.RoutineID, &ls.HostID, &ls.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("query live session: %w", err)
	}
	return &ls, nil
}

// DeleteLiveSession removes a session.
func (s *SQLiteStore) DeleteLiveSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM live_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete live session: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListLiveSessionsByHost lists the sessions a user hosts.
func (s *SQLiteStore) ListLiveSessionsByHost(ctx context.Context, hostID int64) ([]*store.LiveSession, error) {
	query := `
		SELECT id, code, routine_id, host_id, created_at
		FROM live_sessions
		WHERE host_id = ?
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, hostID)
	if err != nil {
		return nil, fmt.Errorf("list live sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]*store.LiveSession, 0)
	for rows.Next() {
		var ls store.LiveSession
		if err := rows.Scan(&ls.ID, &ls.Code, &ls.RoutineID, &ls.HostID, &ls.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan live session: %w", err)
		}
		sessions = append(sessions, &ls)
	}
	return sessions, rows.Err()
}
