package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }

func (plainHasher) Compare(hash, pw string) bool { return hash == "hashed:"+pw }

type stubAdminRepo struct {
	mu     sync.Mutex
	seq    int
	admins map[string]*domain.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if existing.Email == a.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	c := *a
	if c.ID == "" {
		c.ID = fmt.Sprintf("admin-%d", r.seq)
	}
	r.admins[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	c := *a
	return &c, nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) FindByCompanyName(_ context.Context, name string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if strings.EqualFold(a.CompanyName, name) {
			c := *a
			return &c, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

type stubEmployeeRepo struct {
	mu        sync.Mutex
	seq       int
	employees map[string]*domain.Employee
	writes    int
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.employees {
		if existing.Email == e.Email {
			return nil, domain.ErrEmployeeExists
		}
	}
	r.seq++
	r.writes++
	c := *e
	if c.ID == "" {
		c.ID = fmt.Sprintf("emp-%d", r.seq)
	}
	r.employees[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	c := *e
	return &c, nil
}

func (r *stubEmployeeRepo) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.Email == email {
			c := *e
			return &c, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (r *stubEmployeeRepo) ListByAdmin(_ context.Context, adminID string) ([]*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Employee{}
	for _, e := range r.employees {
		if e.AdminID == adminID {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubEmployeeRepo) UpdateProfile(_ context.Context, id, username, email string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	r.writes++
	e.Username, e.Email = username, email
	c := *e
	return &c, nil
}

func (r *stubEmployeeRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return domain.ErrEmployeeNotFound
	}
	r.writes++
	e.PasswordHash = hash
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	r.writes++
	delete(r.employees, id)
	return nil
}

func (r *stubEmployeeRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

type stubCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*domain.Company
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (r *stubCompanyRepo) FindByAdmin(_ context.Context, adminID string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[adminID]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	out := *c
	return &out, nil
}

func (r *stubCompanyRepo) FindByName(_ context.Context, name string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if strings.EqualFold(c.Name, name) {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

func (r *stubCompanyRepo) Upsert(_ context.Context, c *domain.Company) (*domain.Company, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.companies[c.AdminID]
	stored := *c
	if stored.ID == "" {
		stored.ID = "company-" + c.AdminID
	}
	r.companies[c.AdminID] = &stored
	out := stored
	return &out, !exists, nil
}

func (r *stubCompanyRepo) ClearLogo(_ context.Context, adminID string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[adminID]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	c.Logo = ""
	out := *c
	return &out, nil
}

type stubFeedbackRepo struct {
	mu       sync.Mutex
	seq      int
	feedback map[string]*domain.Feedback
}

func newStubFeedbackRepo() *stubFeedbackRepo {
	return &stubFeedbackRepo{feedback: make(map[string]*domain.Feedback)}
}

func (r *stubFeedbackRepo) Create(_ context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := *f
	c.ID = fmt.Sprintf("fb-%d", r.seq)
	r.feedback[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubFeedbackRepo) FindByID(_ context.Context, id string) (*domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.feedback[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	c := *f
	return &c, nil
}

func (r *stubFeedbackRepo) list(match func(*domain.Feedback) bool) []*domain.Feedback {
	out := []*domain.Feedback{}
	for _, f := range r.feedback {
		if match(f) {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *stubFeedbackRepo) ListByAdmin(_ context.Context, adminID string) ([]*domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(f *domain.Feedback) bool { return f.AdminID == adminID }), nil
}

func (r *stubFeedbackRepo) ListByParticipant(_ context.Context, email, adminID string) ([]*domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(f *domain.Feedback) bool {
		return f.Involves(email) && (adminID == "" || f.AdminID == adminID)
	}), nil
}

func (r *stubFeedbackRepo) Update(_ context.Context, f *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.feedback[f.ID]; !ok {
		return domain.ErrFeedbackNotFound
	}
	c := *f
	r.feedback[f.ID] = &c
	return nil
}

type stubPropertyRepo struct {
	mu         sync.Mutex
	seq        int
	properties map[string]*domain.Property
	lastFilter ports.PropertyFilter
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{properties: make(map[string]*domain.Property)}
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := *p
	c.ID = fmt.Sprintf("prop-%d", r.seq)
	r.properties[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	c := *p
	return &c, nil
}

func (r *stubPropertyRepo) List(_ context.Context, f ports.PropertyFilter) ([]*domain.Property, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	var matched []*domain.Property
	for _, p := range r.properties {
		if p.AdminID != f.AdminID {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.Type != "" && string(p.Type) != f.Type {
			continue
		}
		c := *p
		matched = append(matched, &c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	start := (f.Page - 1) * f.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubPropertyRepo) Update(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *p
	r.properties[p.ID] = &c
	return nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.properties, id)
	return nil
}

type stubBookmarkRepo struct {
	mu        sync.Mutex
	seq       int
	bookmarks map[string]*domain.Bookmark
}

func newStubBookmarkRepo() *stubBookmarkRepo {
	return &stubBookmarkRepo{bookmarks: make(map[string]*domain.Bookmark)}
}

func (r *stubBookmarkRepo) Create(_ context.Context, b *domain.Bookmark) (*domain.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookmarks {
		if existing.OwnerKind == b.OwnerKind && existing.OwnerID == b.OwnerID && existing.PropertyID == b.PropertyID {
			return nil, domain.ErrAlreadyBookmarked
		}
	}
	r.seq++
	c := *b
	c.ID = fmt.Sprintf("bm-%d", r.seq)
	r.bookmarks[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubBookmarkRepo) FindByID(_ context.Context, id string) (*domain.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookmarks[id]
	if !ok {
		return nil, domain.ErrBookmarkNotFound
	}
	c := *b
	return &c, nil
}

func (r *stubBookmarkRepo) ListByOwner(_ context.Context, kind domain.PrincipalKind, ownerID string) ([]*domain.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Bookmark{}
	for _, b := range r.bookmarks {
		if b.OwnerKind == kind && b.OwnerID == ownerID {
			c := *b
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubBookmarkRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookmarks, id)
	return nil
}

type stubRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Time)}
}

func (s *stubRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.revoked[id] = until
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[id]
	return ok, nil
}

type stubQueue struct {
	mu     sync.Mutex
	queued []ports.Notification
	full   bool
}

func (q *stubQueue) Enqueue(n ports.Notification) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.full {
		return false
	}
	q.queued = append(q.queued, n)
	return true
}

func (q *stubQueue) items() []ports.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]ports.Notification(nil), q.queued...)
}

func seedAdmin(t interface{ Fatalf(string, ...any) }, repo *stubAdminRepo, email, company string) *domain.Admin {
	a, err := repo.Create(context.Background(), &domain.Admin{
		Username:     strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: "hashed:adminpass",
		CompanyName:  company,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return a
}

func seedEmployee(t interface{ Fatalf(string, ...any) }, repo *stubEmployeeRepo, admin *domain.Admin, email, pw string) *domain.Employee {
	e, err := repo.Create(context.Background(), &domain.Employee{
		Username:     strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: "hashed:" + pw,
		Role:         domain.RoleEmployee,
		CompanyName:  admin.CompanyName,
		AdminID:      admin.ID,
	})
	if err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return e
}
