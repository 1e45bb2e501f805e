package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Role defines what a registered account can do.
type Role string

const (
	RoleCoach  Role = "coach"
	RoleClient Role = "client"
)

// User represents an account in the system.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	IsGuest      bool
	SessionID    string // For guest session tracking
	CreatedAt    time.Time
}

// Exercise is a catalog entry coaches compose routines from.
type Exercise struct {
	ID          int64
	Name        string
	Category    string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

// Routine is a named workout owned by a coach.
type Routine struct {
	ID          int64
	CoachID     int64
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoutineExercise is one ordered row of a routine.
type RoutineExercise struct {
	ID          int64
	RoutineID   int64
	ExerciseID  int64
	Position    int
	Sets        int
	Reps        int
	RestSeconds int
}

// Invitation is a single-use code a coach hands to a prospective client.
type Invitation struct {
	ID         int64
	Code       string
	CoachID    int64
	RedeemedBy *int64
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// CoachLink ties a client account to its coach.
type CoachLink struct {
	CoachID   int64
	ClientID  int64
	CreatedAt time.Time
}

// LiveSession is a joinable virtual-gym session. The room name used on
// the WebSocket side is the session code.
type LiveSession struct {
	ID        string // UUID
	Code      string
	RoutineID int64
	HostID    int64
	CreatedAt time.Time
}

// UserStore handles account persistence.
type UserStore interface {
	// CreateUser creates a new account with hashed password and role.
	CreateUser(ctx context.Context, username, passwordHash string, role Role) (*User, error)

	// CreateGuestUser creates a temporary guest account with session ID.
	CreateGuestUser(ctx context.Context, sessionID string) (*User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	// GetUserByUsername retrieves a registered user by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserBySessionID retrieves a guest user by session ID.
	GetUserBySessionID(ctx context.Context, sessionID string) (*User, error)

	// SearchUsers searches registered users by username prefix/substring.
	SearchUsers(ctx context.Context, query string) ([]*User, error)
}

// ExerciseStore handles the exercise catalog.
type ExerciseStore interface {
	// CreateExercise adds a catalog entry.
	CreateExercise(ctx context.Context, ex *Exercise) (*Exercise, error)

	// GetExerciseByID retrieves an exercise by ID.
	GetExerciseByID(ctx context.Context, id int64) (*Exercise, error)

	// UpdateExercise overwrites name, category, description and image.
	UpdateExercise(ctx context.Context, ex *Exercise) error

	// DeleteExercise removes a catalog entry.
	DeleteExercise(ctx context.Context, id int64) error

	// ListExercises lists the catalog, optionally filtered by category
	// and/or a name substring.
	ListExercises(ctx context.Context, category, query string) ([]*Exercise, error)
}

// RoutineStore handles routine persistence.
type RoutineStore interface {
	// CreateRoutine creates a routine owned by a coach.
	CreateRoutine(ctx context.Context, coachID int64, title, description string) (*Routine, error)

	// GetRoutineByID retrieves a routine by ID.
	GetRoutineByID(ctx context.Context, id int64) (*Routine, error)

	// ListRoutinesByCoach lists a coach's routines.
	ListRoutinesByCoach(ctx context.Context, coachID int64) ([]*Routine, error)

	// UpdateRoutine overwrites title and description.
	UpdateRoutine(ctx context.Context, r *Routine) error

	// DeleteRoutine removes a routine and its exercise rows.
	DeleteRoutine(ctx context.Context, id int64) error

	// SetRoutineExercises replaces the ordered exercise rows of a routine.
	SetRoutineExercises(ctx context.Context, routineID int64, items []RoutineExercise) error

	// ListRoutineExercises returns the ordered exercise rows.
	ListRoutineExercises(ctx context.Context, routineID int64) ([]*RoutineExercise, error)
}

// InviteStore handles invitation codes and coach/client links.
type InviteStore interface {
	// CreateInvitation stores a new invitation code for a coach.
	CreateInvitation(ctx context.Context, code string, coachID int64, expiresAt time.Time) (*Invitation, error)

	// GetInvitationByCode retrieves an invitation by its code.
	GetInvitationByCode(ctx context.Context, code string) (*Invitation, error)

	// RedeemInvitation marks the code as used by the client.
	RedeemInvitation(ctx context.Context, code string, clientID int64) error

	// LinkClient ties a client to a coach. Idempotent.
	LinkClient(ctx context.Context, coachID, clientID int64) error

	// ListClients lists the clients linked to a coach.
	ListClients(ctx context.Context, coachID int64) ([]*User, error)

	// GetCoachForClient returns the coach a client is linked to.
	GetCoachForClient(ctx context.Context, clientID int64) (*User, error)
}

// SessionStore handles live-session codes.
type SessionStore interface {
	// CreateLiveSession stores a joinable session.
	CreateLiveSession(ctx context.Context, id, code string, routineID, hostID int64) (*LiveSession, error)

	// GetLiveSessionByCode retrieves a session by its join code.
	GetLiveSessionByCode(ctx context.Context, code string) (*LiveSession, error)

	// DeleteLiveSession removes a session.
	DeleteLiveSession(ctx context.Context, id string) error

	// ListLiveSessionsByHost lists the sessions a user hosts.
	ListLiveSessionsByHost(ctx context.Context, hostID int64) ([]*LiveSession, error)
}

// Store composes all persistence concerns.
type Store interface {
	UserStore
	ExerciseStore
	RoutineStore
	InviteStore
	SessionStore

	// Close releases the underlying database resources.
	Close() error
}
