package invites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/gymsync-server/internal/store"
	"github.com/vovakirdan/gymsync-server/internal/utils"
)

// Common errors for invitation operations.
var (
	ErrInviteNotFound = errors.New("invitation not found")
	ErrInviteExpired  = errors.New("invitation expired")
	ErrInviteRedeemed = errors.New("invitation already redeemed")
	ErrCannotSelfLink = errors.New("cannot redeem your own invitation")
	ErrNotACoach      = errors.New("only coaches can issue invitations")
	ErrIssuerNotFound = errors.New("issuing coach not found")
	ErrNoCoachLinked  = errors.New("client has no linked coach")
)

const (
	codePrefix = "FIT"
	codeLength = 6
	defaultTTL = 7 * 24 * time.Hour
)

// Service issues and redeems coach-to-client invitation codes.
type Service struct {
	store store.Store
	ttl   time.Duration
}

// New creates a new invites service with the default code lifetime.
func New(st store.Store) *Service {
	return &Service{store: st, ttl: defaultTTL}
}

// Issue creates a fresh single-use invitation code for the coach.
func (s *Service) Issue(ctx context.Context, coachID int64) (*store.Invitation, error) {
	coach, err := s.store.GetUserByID(ctx, coachID)
	if err != nil {
		return nil, ErrIssuerNotFound
	}
	if coach.Role != store.RoleCoach {
		return nil, ErrNotACoach
	}

	// Retry on the unlikely code collision; the code column is unique.
	var inv *store.Invitation
	for attempt := 0; attempt < 3; attempt++ {
		code := utils.NewCode(codePrefix, codeLength)
		inv, err = s.store.CreateInvitation(ctx, code, coachID, time.Now().Add(s.ttl))
		if err == nil {
			return inv, nil
		}
	}
	return nil, fmt.Errorf("create invitation: %w", err)
}

// Redeem consumes the code and links the client to the issuing coach.
func (s *Service) Redeem(ctx context.Context, code string, clientID int64) (*store.User, error) {
	inv, err := s.store.GetInvitationByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	if inv.RedeemedBy != nil {
		return nil, ErrInviteRedeemed
	}
	if time.Now().After(inv.ExpiresAt) {
		return nil, ErrInviteExpired
	}
	if inv.CoachID == clientID {
		return nil, ErrCannotSelfLink
	}

	if err := s.store.RedeemInvitation(ctx, code, clientID); err != nil {
		// Lost the race to another redeemer.
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteRedeemed
		}
		return nil, fmt.Errorf("redeem invitation: %w", err)
	}

	if err := s.store.LinkClient(ctx, inv.CoachID, clientID); err != nil {
		return nil, fmt.Errorf("link client: %w", err)
	}

	coach, err := s.store.GetUserByID(ctx, inv.CoachID)
	if err != nil {
		return nil, fmt.Errorf("get coach: %w", err)
	}
	return coach, nil
}

// Clients lists the clients linked to a coach.
func (s *Service) Clients(ctx context.Context, coachID int64) ([]*store.User, error) {
	return s.store.ListClients(ctx, coachID)
}

// Coach returns the coach a client is linked to.
func (s *Service) Coach(ctx context.Context, clientID int64) (*store.User, error) {
	coach, err := s.store.GetCoachForClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoCoachLinked
		}
		return nil, err
	}
	return coach, nil
}
