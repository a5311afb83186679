package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/myapp/catalog-api/internal/core/domain"
)

// memStore is an in-memory stand-in for the relational store. It backs all
// three repositories so referential checks see the same data.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	accounts   map[int64]*domain.Account
	categories map[int64]*domain.Category
	products   map[int64]*domain.Product

	// failWith, when set, is returned by every call.
	failWith error
	// beforeDelete runs inside DeleteGuarded before the guarded statement.
	beforeDelete func()
}

func newMemStore() *memStore {
	return &memStore{
		accounts:   make(map[int64]*domain.Account),
		categories: make(map[int64]*domain.Category),
		products:   make(map[int64]*domain.Product),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) fail(op string) error {
	if m.failWith != nil {
		return domain.Unavailable(op, m.failWith)
	}
	return nil
}

func (m *memStore) categoryRepo() *memCategoryRepo { return &memCategoryRepo{m} }
func (m *memStore) productRepo() *memProductRepo   { return &memProductRepo{m} }
func (m *memStore) accountRepo() *memAccountRepo   { return &memAccountRepo{m} }

// accounts

type memAccountRepo struct{ *memStore }

func (r *memAccountRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("email exists"); err != nil {
		return false, err
	}
	for _, a := range r.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAccountRepo) Create(_ context.Context, acc *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("create account"); err != nil {
		return nil, err
	}
	for _, a := range r.accounts {
		if a.Email == acc.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	stored := *acc
	stored.ID = r.id()
	stored.CreatedAt = time.Now().UTC()
	r.accounts[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("find account"); err != nil {
		return nil, err
	}
	for _, a := range r.accounts {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("find account"); err != nil {
		return nil, err
	}
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := *a
	return &out, nil
}

// categories

type memCategoryRepo struct{ *memStore }

func (r *memCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("list categories"); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memCategoryRepo) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("find category"); err != nil {
		return nil, err
	}
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	out := *c
	return &out, nil
}

func (r *memCategoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("category exists"); err != nil {
		return false, err
	}
	_, ok := r.categories[id]
	return ok, nil
}

func (r *memCategoryRepo) Create(_ context.Context, title, description string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("create category"); err != nil {
		return nil, err
	}
	c := &domain.Category{ID: r.id(), Title: title, Description: description, CreatedAt: time.Now().UTC()}
	r.categories[c.ID] = c
	out := *c
	return &out, nil
}

func (r *memCategoryRepo) Update(_ context.Context, id int64, title, description string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("update category"); err != nil {
		return nil, err
	}
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	c.Title, c.Description = title, description
	out := *c
	return &out, nil
}

func (r *memCategoryRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("count categories"); err != nil {
		return 0, err
	}
	return int64(len(r.categories)), nil
}

func (r *memCategoryRepo) CountProducts(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("count category products"); err != nil {
		return 0, err
	}
	return r.refs(id), nil
}

func (r *memCategoryRepo) refs(id int64) int64 {
	var n int64
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			n++
		}
	}
	return n
}

func (r *memCategoryRepo) DeleteGuarded(_ context.Context, id int64) (*domain.Category, error) {
	if r.beforeDelete != nil {
		r.beforeDelete()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("delete category"); err != nil {
		return nil, err
	}
	c, ok := r.categories[id]
	if !ok || len(r.categories) <= 1 || r.refs(id) > 0 {
		return nil, domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return c, nil
}

func (r *memCategoryRepo) Options(_ context.Context) ([]domain.CategoryOption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("category options"); err != nil {
		return nil, err
	}
	out := make([]domain.CategoryOption, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, domain.CategoryOption{ID: c.ID, Title: c.Title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// products

type memProductRepo struct{ *memStore }

func (r *memProductRepo) withTitle(p domain.Product) domain.Product {
	if p.CategoryID != nil {
		if c, ok := r.categories[*p.CategoryID]; ok {
			title := c.Title
			p.CategoryTitle = &title
		}
	}
	return p
}

func (r *memProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("list products"); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, r.withTitle(*p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("find product"); err != nil {
		return nil, err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	out := r.withTitle(*p)
	return &out, nil
}

func (r *memProductRepo) Create(_ context.Context, title, description string, categoryID *int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("create product"); err != nil {
		return nil, err
	}
	if categoryID != nil {
		if _, ok := r.categories[*categoryID]; !ok {
			return nil, domain.ErrUnknownCategory
		}
	}
	p := &domain.Product{ID: r.id(), Title: title, Description: description, CategoryID: categoryID, CreatedAt: time.Now().UTC()}
	r.products[p.ID] = p
	out := r.withTitle(*p)
	return &out, nil
}

func (r *memProductRepo) Update(_ context.Context, id int64, title, description string, categoryID *int64) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("update product"); err != nil {
		return nil, err
	}
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if categoryID != nil {
		if _, ok := r.categories[*categoryID]; !ok {
			return nil, domain.ErrUnknownCategory
		}
	}
	p.Title, p.Description, p.CategoryID = title, description, categoryID
	out := r.withTitle(*p)
	return &out, nil
}

func (r *memProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("count products"); err != nil {
		return 0, err
	}
	return int64(len(r.products)), nil
}

func (r *memProductRepo) DeleteGuarded(_ context.Context, id int64) (*domain.Product, error) {
	if r.beforeDelete != nil {
		r.beforeDelete()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("delete product"); err != nil {
		return nil, err
	}
	p, ok := r.products[id]
	if !ok || len(r.products) <= 1 {
		return nil, domain.ErrProductNotFound
	}
	delete(r.products, id)
	return p, nil
}

// recordingAudit captures audit entries in memory.
type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (a *recordingAudit) Record(_ context.Context, e domain.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, e)
	return nil
}

var errStoreDown = errors.New("connection refused")
