package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/myapp/catalog-api/internal/core/domain"
	"github.com/myapp/catalog-api/internal/core/ports"
)

func seedCategory(t *testing.T, store *memStore, title string) *domain.Category {
	t.Helper()
	c, err := store.categoryRepo().Create(context.Background(), title, title+" description")
	if err != nil {
		t.Fatalf("seed category %q: %v", title, err)
	}
	return c
}

func seedProduct(t *testing.T, store *memStore, title string, categoryID *int64) *domain.Product {
	t.Helper()
	p, err := store.productRepo().Create(context.Background(), title, title+" description", categoryID)
	if err != nil {
		t.Fatalf("seed product %q: %v", title, err)
	}
	return p
}

func TestCategoryService_Create(t *testing.T) {
	store := newMemStore()
	audit := &recordingAudit{}
	svc := NewCategoryService(store.categoryRepo(), audit, zerolog.Nop())

	ctx := domain.WithAccountID(context.Background(), 7)
	c, err := svc.Create(ctx, ports.CategoryInput{Title: "  Books ", Description: "Paper"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if c.Title != "Books" {
		t.Errorf("expected trimmed title %q, got %q", "Books", c.Title)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Action != domain.AuditCreate || entry.ActorID != 7 || entry.ResourceID != c.ID {
		t.Errorf("unexpected audit entry: %+v", entry)
	}
}

func TestCategoryService_Create_RejectsEmptyFields(t *testing.T) {
	store := newMemStore()
	svc := NewCategoryService(store.categoryRepo(), nil, zerolog.Nop())

	cases := []ports.CategoryInput{
		{Title: "", Description: "x"},
		{Title: "x", Description: "   "},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}

	n, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected nothing persisted, got %d categories", n)
	}
}

func TestCategoryService_Update(t *testing.T) {
	store := newMemStore()
	svc := NewCategoryService(store.categoryRepo(), nil, zerolog.Nop())
	c := seedCategory(t, store, "Books")

	updated, err := svc.Update(context.Background(), c.ID, ports.CategoryInput{Title: "Novels", Description: "Fiction"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Novels" {
		t.Errorf("expected title Novels, got %q", updated.Title)
	}

	_, err = svc.Update(context.Background(), 999, ports.CategoryInput{Title: "a", Description: "b"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = svc.Update(context.Background(), c.ID, ports.CategoryInput{Title: "", Description: "b"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	store := newMemStore()
	svc := NewCategoryService(store.categoryRepo(), nil, zerolog.Nop())
	seedCategory(t, store, "Books")
	seedCategory(t, store, "Music")

	if _, err := svc.Delete(context.Background(), 999); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_Delete_Referenced(t *testing.T) {
	store := newMemStore()
	svc := NewCategoryService(store.categoryRepo(), nil, zerolog.Nop())
	a := seedCategory(t, store, "Books")
	seedCategory(t, store, "Music")
	seedProduct(t, store, "Dune", &a.ID)

	_, err := svc.Delete(context.Background(), a.ID)
	if !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvariantViolation) {
		t.Errorf("expected the error to be an invariant violation")
	}

	if n, _ := svc.Count(context.Background()); n != 2 {
		t.Errorf("expected 2 categories to remain, got %d", n)
	}
}

func TestCategoryService_Delete_LastOneWinsOverReference(t *testing.T) {
	store := newMemStore()
	svc := NewCategoryService(store.categoryRepo(), nil, zerolog.Nop())
	only := seedCategory(t, store, "Books")
	seedProduct(t, store, "Dune", &only.ID)

	if _, err := svc.Delete(context.Background(), only.ID); !errors.Is(err, domain.ErrLastCategory) {
		t.Fatalf("expected ErrLastCategory, got %v", err)
	}
}

func TestCategoryService_Delete_Succeeds(t *testing.T) {
	store := newMemStore()
	audit := &recordingAudit{}
	svc := NewCategoryService(store.categoryRepo(), audit, zerolog.Nop())
	a := seedCategory(t, store, "Books")
	seedCategory(t, store, "Music")

	deleted, err := svc.Delete(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != a.ID {
		t.Errorf("expected deleted id %d, got %d", a.ID, deleted.ID)
	}

	if _, err := svc.Get(context.Background(), a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != domain.AuditDelete {
		t.Errorf("expected one delete audit entry, got %+v", audit.entries)
	}
}

func TestCategoryService_Delete_ReclassifiesConcurrentReference(t *testing.T) {
	store := newMemStore()
	svc := NewCategoryService(store.categoryRepo(), nil, zerolog.Nop())
	a := seedCategory(t, store, "Books")
	seedCategory(t, store, "Music")

	// A product referencing a is inserted between the checks and the delete.
	store.beforeDelete = func() {
		store.beforeDelete = nil
		seedProduct(t, store, "Dune", &a.ID)
	}

	if _, err := svc.Delete(context.Background(), a.ID); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if n, _ := svc.Count(context.Background()); n != 2 {
		t.Errorf("expected 2 categories to remain, got %d", n)
	}
}

func TestCategoryService_AuditFailureDoesNotFailMutation(t *testing.T) {
	store := newMemStore()
	audit := &recordingAudit{err: errors.New("mongo down")}
	svc := NewCategoryService(store.categoryRepo(), audit, zerolog.Nop())

	if _, err := svc.Create(context.Background(), ports.CategoryInput{Title: "Books", Description: "Paper"}); err != nil {
		t.Fatalf("expected audit failure to be ignored, got %v", err)
	}
}

func TestCategoryService_StoreFailure(t *testing.T) {
	store := newMemStore()
	svc := NewCategoryService(store.categoryRepo(), nil, zerolog.Nop())
	store.failWith = errStoreDown

	if _, err := svc.List(context.Background()); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("List: expected ErrUnavailable, got %v", err)
	}
	if _, err := svc.Delete(context.Background(), 1); !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("Delete: expected ErrUnavailable, got %v", err)
	}
}
