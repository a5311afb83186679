package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/myapp/catalog-api/internal/core/domain"
	"github.com/myapp/catalog-api/internal/core/ports"
)

func newProductService(store *memStore, audit ports.AuditRecorder) *ProductService {
	return NewProductService(store.productRepo(), store.categoryRepo(), audit, zerolog.Nop())
}

func TestProductService_Create(t *testing.T) {
	store := newMemStore()
	audit := &recordingAudit{}
	svc := newProductService(store, audit)
	c := seedCategory(t, store, "Books")

	p, err := svc.Create(context.Background(), ports.ProductInput{Title: "Dune", Description: "Sand", CategoryID: &c.ID})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.CategoryTitle == nil || *p.CategoryTitle != "Books" {
		t.Errorf("expected category title Books, got %v", p.CategoryTitle)
	}
	if len(audit.entries) != 1 || audit.entries[0].Resource != "product" {
		t.Errorf("expected one product audit entry, got %+v", audit.entries)
	}
}

func TestProductService_Create_WithoutCategory(t *testing.T) {
	store := newMemStore()
	svc := newProductService(store, nil)

	p, err := svc.Create(context.Background(), ports.ProductInput{Title: "Loose", Description: "No category"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.CategoryID != nil || p.CategoryTitle != nil {
		t.Errorf("expected no category, got id=%v title=%v", p.CategoryID, p.CategoryTitle)
	}
}

func TestProductService_Create_UnknownCategory(t *testing.T) {
	store := newMemStore()
	svc := newProductService(store, nil)
	missing := int64(42)

	_, err := svc.Create(context.Background(), ports.ProductInput{Title: "Dune", Description: "Sand", CategoryID: &missing})
	if !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected the error to be invalid input")
	}

	if n, _ := svc.Count(context.Background()); n != 0 {
		t.Errorf("expected nothing persisted, got %d products", n)
	}
}

func TestProductService_Create_RejectsEmptyFields(t *testing.T) {
	store := newMemStore()
	svc := newProductService(store, nil)

	cases := []ports.ProductInput{
		{Title: " ", Description: "Sand"},
		{Title: "Dune"},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestProductService_Update(t *testing.T) {
	store := newMemStore()
	svc := newProductService(store, nil)
	books := seedCategory(t, store, "Books")
	music := seedCategory(t, store, "Music")
	p := seedProduct(t, store, "Dune", &books.ID)

	updated, err := svc.Update(context.Background(), p.ID, ports.ProductInput{Title: "Dune OST", Description: "Score", CategoryID: &music.ID})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.CategoryID == nil || *updated.CategoryID != music.ID {
		t.Errorf("expected category %d, got %v", music.ID, updated.CategoryID)
	}

	missing := int64(999)
	_, err = svc.Update(context.Background(), p.ID, ports.ProductInput{Title: "x", Description: "y", CategoryID: &missing})
	if !errors.Is(err, domain.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}

	_, err = svc.Update(context.Background(), missing, ports.ProductInput{Title: "x", Description: "y"})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	store := newMemStore()
	svc := newProductService(store, nil)
	a := seedProduct(t, store, "Dune", nil)
	b := seedProduct(t, store, "Emma", nil)

	if _, err := svc.Delete(context.Background(), 999); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	deleted, err := svc.Delete(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != a.ID {
		t.Errorf("expected deleted id %d, got %d", a.ID, deleted.ID)
	}

	if _, err := svc.Delete(context.Background(), b.ID); !errors.Is(err, domain.ErrLastProduct) {
		t.Errorf("expected ErrLastProduct, got %v", err)
	}
	if n, _ := svc.Count(context.Background()); n != 1 {
		t.Errorf("expected 1 product to remain, got %d", n)
	}
}

func TestProductService_Delete_ReclassifiesConcurrentDelete(t *testing.T) {
	store := newMemStore()
	svc := newProductService(store, nil)
	a := seedProduct(t, store, "Dune", nil)
	b := seedProduct(t, store, "Emma", nil)

	// Another request deletes b after our floor check passed.
	store.beforeDelete = func() {
		store.beforeDelete = nil
		store.mu.Lock()
		delete(store.products, b.ID)
		store.mu.Unlock()
	}

	if _, err := svc.Delete(context.Background(), a.ID); !errors.Is(err, domain.ErrLastProduct) {
		t.Fatalf("expected ErrLastProduct, got %v", err)
	}
	if n, _ := svc.Count(context.Background()); n != 1 {
		t.Errorf("expected 1 product to remain, got %d", n)
	}
}

func TestProductService_CategoryOptions(t *testing.T) {
	store := newMemStore()
	svc := newProductService(store, nil)
	seedCategory(t, store, "Music")
	seedCategory(t, store, "Books")

	opts, err := svc.CategoryOptions(context.Background())
	if err != nil {
		t.Fatalf("CategoryOptions returned error: %v", err)
	}
	if len(opts) != 2 || opts[0].Title != "Books" || opts[1].Title != "Music" {
		t.Errorf("expected options ordered by title, got %+v", opts)
	}
}

// Two categories with one product each: the referenced category can only be
// deleted after its product, and the last category can never be deleted.
func TestCatalog_DeleteScenario(t *testing.T) {
	store := newMemStore()
	categories := NewCategoryService(store.categoryRepo(), nil, zerolog.Nop())
	products := newProductService(store, nil)
	ctx := context.Background()

	a := seedCategory(t, store, "A")
	b := seedCategory(t, store, "B")
	pa := seedProduct(t, store, "in A", &a.ID)
	pb := seedProduct(t, store, "in B", &b.ID)

	if _, err := categories.Delete(ctx, a.ID); !errors.Is(err, domain.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if _, err := products.Delete(ctx, pa.ID); err != nil {
		t.Fatalf("deleting the product in A: %v", err)
	}
	if _, err := categories.Delete(ctx, a.ID); err != nil {
		t.Fatalf("deleting category A: %v", err)
	}

	n, err := categories.Count(ctx)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 category, got %d", n)
	}

	if _, err := categories.Delete(ctx, b.ID); !errors.Is(err, domain.ErrLastCategory) {
		t.Errorf("expected ErrLastCategory, got %v", err)
	}
	if _, err := products.Delete(ctx, pb.ID); !errors.Is(err, domain.ErrLastProduct) {
		t.Errorf("expected ErrLastProduct, got %v", err)
	}
}
