package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubMerchandiseRepo struct {
	items     map[string]*domain.Merchandise
	nextID    int
	createErr error
	updateErr error
	deleteErr error
}

func newStubMerchandiseRepo() *stubMerchandiseRepo {
	return &stubMerchandiseRepo{items: make(map[string]*domain.Merchandise)}
}

func (r *stubMerchandiseRepo) Create(_ context.Context, m *domain.Merchandise) (*domain.Merchandise, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *m
	clone.ID = fmt.Sprintf("m%d", r.nextID)
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubMerchandiseRepo) FindByID(_ context.Context, id string) (*domain.Merchandise, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMerchandiseNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMerchandiseRepo) FindByName(_ context.Context, name string) (*domain.Merchandise, error) {
	for _, m := range r.items {
		if m.Name == name {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domain.ErrMerchandiseNotFound
}

func (r *stubMerchandiseRepo) List(_ context.Context) ([]*domain.Merchandise, error) {
	out := make([]*domain.Merchandise, 0, len(r.items))
	for _, m := range r.items {
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubMerchandiseRepo) Search(_ context.Context, query string) ([]*domain.Merchandise, error) {
	var out []*domain.Merchandise
	for _, m := range r.items {
		if strings.Contains(m.Name, query) {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMerchandiseRepo) Update(_ context.Context, m *domain.Merchandise) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.items[m.ID]; !ok {
		return domain.ErrMerchandiseNotFound
	}
	clone := *m
	r.items[m.ID] = &clone
	return nil
}

func (r *stubMerchandiseRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.items[id]; !ok {
		return domain.ErrMerchandiseNotFound
	}
	delete(r.items, id)
	return nil
}

type stubAuditRepo struct {
	entries   []*domain.AuditEntry
	appendErr error
}

func (r *stubAuditRepo) Append(_ context.Context, e *domain.AuditEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	clone := *e
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context) ([]*domain.AuditEntry, error) {
	out := make([]*domain.AuditEntry, len(r.entries))
	for i := range r.entries {
		clone := *r.entries[len(r.entries)-1-i]
		out[i] = &clone
	}
	return out, nil
}

// passthroughTx runs fn directly; stubs have no transactional store behind
// them, so rollback semantics are exercised by ordering (audit only appends
// after the mutation succeeded).
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var discardLogger = zerolog.Nop()

func newMerchandiseService() (*MerchandiseService, *stubMerchandiseRepo, *stubAuditRepo) {
	repo := newStubMerchandiseRepo()
	audit := &stubAuditRepo{}
	return NewMerchandiseService(repo, audit, passthroughTx{}, discardLogger), repo, audit
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestMerchandiseService_Create_CanonicalizesName(t *testing.T) {
	svc, repo, _ := newMerchandiseService()

	m, err := svc.Create(context.Background(), "u1", ports.MerchandiseInput{Name: "  Gauze  ", Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "gauze" {
		t.Errorf("expected canonical name %q, got %q", "gauze", m.Name)
	}
	if len(repo.items) != 1 {
		t.Errorf("expected 1 stored item, got %d", len(repo.items))
	}
}

func TestMerchandiseService_Create_DuplicateNameCaseInsensitive(t *testing.T) {
	svc, repo, audit := newMerchandiseService()

	if _, err := svc.Create(context.Background(), "u1", ports.MerchandiseInput{Name: "gauze", Quantity: 5}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(context.Background(), "u1", ports.MerchandiseInput{Name: "GAUZE", Quantity: 2})
	if !errors.Is(err, domain.ErrDuplicateMerchandise) {
		t.Fatalf("expected ErrDuplicateMerchandise, got %v", err)
	}
	if len(repo.items) != 1 {
		t.Errorf("duplicate create must not add a row; have %d", len(repo.items))
	}
	if len(audit.entries) != 1 {
		t.Errorf("rejected create must not log; have %d entries", len(audit.entries))
	}
}

func TestMerchandiseService_Create_WritesOneAuditEntry(t *testing.T) {
	svc, _, audit := newMerchandiseService()

	m, err := svc.Create(context.Background(), "u1", ports.MerchandiseInput{Name: "gauze", Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected exactly 1 audit entry, got %d", len(audit.entries))
	}
	e := audit.entries[0]
	if e.Action != domain.ActionMerchandiseCreated {
		t.Errorf("action = %q, want %q", e.Action, domain.ActionMerchandiseCreated)
	}
	if e.MerchandiseID != m.ID {
		t.Errorf("audit entry references %q, want %q", e.MerchandiseID, m.ID)
	}
	if e.UserID != "u1" {
		t.Errorf("audit entry user = %q, want %q", e.UserID, "u1")
	}
	if e.CreatedAt.IsZero() {
		t.Error("audit entry timestamp must not be zero")
	}
}

func TestMerchandiseService_Create_RepoError_NoAuditEntry(t *testing.T) {
	svc, repo, audit := newMerchandiseService()
	repo.createErr = errors.New("store unavailable")

	_, err := svc.Create(context.Background(), "u1", ports.MerchandiseInput{Name: "gauze"})
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
	if len(audit.entries) != 0 {
		t.Errorf("failed mutation must write zero audit entries, got %d", len(audit.entries))
	}
}

func TestMerchandiseService_UpdateAndDelete_AuditEachMutation(t *testing.T) {
	svc, _, audit := newMerchandiseService()

	m, _ := svc.Create(context.Background(), "u1", ports.MerchandiseInput{Name: "gauze", Quantity: 5})

	if _, err := svc.Update(context.Background(), "u1", m.ID, ports.MerchandiseInput{Name: "gauze", Quantity: 8}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", m.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(audit.entries) != 3 {
		t.Fatalf("expected 3 audit entries (create/update/delete), got %d", len(audit.entries))
	}
	if audit.entries[1].Action != domain.ActionMerchandiseUpdated {
		t.Errorf("second action = %q, want %q", audit.entries[1].Action, domain.ActionMerchandiseUpdated)
	}
	if audit.entries[2].Action != domain.ActionMerchandiseDeleted {
		t.Errorf("third action = %q, want %q", audit.entries[2].Action, domain.ActionMerchandiseDeleted)
	}
}

func TestMerchandiseService_Update_RenameToExistingRejected(t *testing.T) {
	svc, _, _ := newMerchandiseService()

	_, _ = svc.Create(context.Background(), "u1", ports.MerchandiseInput{Name: "gauze"})
	m2, _ := svc.Create(context.Background(), "u1", ports.MerchandiseInput{Name: "gloves"})

	_, err := svc.Update(context.Background(), "u1", m2.ID, ports.MerchandiseInput{Name: "Gauze"})
	if !errors.Is(err, domain.ErrDuplicateMerchandise) {
		t.Fatalf("expected ErrDuplicateMerchandise, got %v", err)
	}
}

func TestMerchandiseService_Delete_NotFound(t *testing.T) {
	svc, _, audit := newMerchandiseService()

	err := svc.Delete(context.Background(), "u1", "missing")
	if !errors.Is(err, domain.ErrMerchandiseNotFound) {
		t.Fatalf("expected ErrMerchandiseNotFound, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Errorf("failed delete must not log; have %d entries", len(audit.entries))
	}
}

func TestMerchandiseService_Search_LowercasesQuery(t *testing.T) {
	svc, _, _ := newMerchandiseService()

	_, _ = svc.Create(context.Background(), "u1", ports.MerchandiseInput{Name: "Surgical Gauze"})

	found, err := svc.Search(context.Background(), "  GAU ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
}
