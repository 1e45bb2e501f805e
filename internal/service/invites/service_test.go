package invites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/gymsync-server/internal/store"
	"github.com/vovakirdan/gymsync-server/internal/store/sqlite"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return New(st), st
}

func TestIssueRequiresCoachRole(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	client, _ := st.CreateUser(ctx, "client", "hash", store.RoleClient)
	if _, err := svc.Issue(ctx, client.ID); !errors.Is(err, ErrNotACoach) {
		t.Fatalf("expected ErrNotACoach, got %v", err)
	}

	if _, err := svc.Issue(ctx, 9999); !errors.Is(err, ErrIssuerNotFound) {
		t.Fatalf("expected ErrIssuerNotFound, got %v", err)
	}
}

func TestRedeemLinksClientToCoach(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	coach, _ := st.CreateUser(ctx, "coach", "hash", store.RoleCoach)
	client, _ := st.CreateUser(ctx, "client", "hash", store.RoleClient)

	inv, err := svc.Issue(ctx, coach.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if inv.Code == "" {
		t.Fatal("expected a code")
	}

	linked, err := svc.Redeem(ctx, inv.Code, client.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if linked.ID != coach.ID {
		t.Fatalf("expected link to coach %d, got %d", coach.ID, linked.ID)
	}

	got, err := svc.Coach(ctx, client.ID)
	if err != nil || got.ID != coach.ID {
		t.Fatalf("coach lookup failed: %v", err)
	}

	clients, err := svc.Clients(ctx, coach.ID)
	if err != nil || len(clients) != 1 || clients[0].ID != client.ID {
		t.Fatalf("client listing failed: %v %+v", err, clients)
	}
}

func TestRedeemIsSingleUse(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	coach, _ := st.CreateUser(ctx, "coach", "hash", store.RoleCoach)
	c1, _ := st.CreateUser(ctx, "c1aaa", "hash", store.RoleClient)
	c2, _ := st.CreateUser(ctx, "c2bbb", "hash", store.RoleClient)

	inv, _ := svc.Issue(ctx, coach.ID)
	if _, err := svc.Redeem(ctx, inv.Code, c1.ID); err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if _, err := svc.Redeem(ctx, inv.Code, c2.ID); !errors.Is(err, ErrInviteRedeemed) {
		t.Fatalf("expected ErrInviteRedeemed, got %v", err)
	}
}

func TestRedeemRejectsExpiredAndUnknown(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	coach, _ := st.CreateUser(ctx, "coach", "hash", store.RoleCoach)
	client, _ := st.CreateUser(ctx, "client", "hash", store.RoleClient)

	if _, err := svc.Redeem(ctx, "FIT-NOPE", client.ID); !errors.Is(err, ErrInviteNotFound) {
		t.Fatalf("expected ErrInviteNotFound, got %v", err)
	}

	expired, err := st.CreateInvitation(ctx, "FIT-OLD42", coach.ID, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("seed expired invitation: %v", err)
	}
	if _, err := svc.Redeem(ctx, expired.Code, client.ID); !errors.Is(err, ErrInviteExpired) {
		t.Fatalf("expected ErrInviteExpired, got %v", err)
	}
}

func TestRedeemRejectsSelfLink(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	coach, _ := st.CreateUser(ctx, "coach", "hash", store.RoleCoach)
	inv, _ := svc.Issue(ctx, coach.ID)

	if _, err := svc.Redeem(ctx, inv.Code, coach.ID); !errors.Is(err, ErrCannotSelfLink) {
		t.Fatalf("expected ErrCannotSelfLink, got %v", err)
	}
}
