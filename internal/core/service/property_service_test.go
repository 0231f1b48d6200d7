package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

type propertyFixture struct {
	properties *PropertyService
	bookmarks  *BookmarkService
	propRepo   *stubPropertyRepo
	admins     *stubAdminRepo
	employees  *stubEmployeeRepo
}

func newPropertyFixture() *propertyFixture {
	f := &propertyFixture{
		propRepo:  newStubPropertyRepo(),
		admins:    newStubAdminRepo(),
		employees: newStubEmployeeRepo(),
	}
	f.properties = NewPropertyService(f.propRepo, f.employees, zerolog.Nop())
	f.bookmarks = NewBookmarkService(newStubBookmarkRepo(), f.properties, zerolog.Nop())
	return f
}

func TestPropertyService_CreateDefaultsAndValidation(t *testing.T) {
	f := newPropertyFixture()
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")
	ctx := context.Background()

	p, err := f.properties.Create(ctx, admin.Principal(), ports.PropertyInput{Title: "Loft", Price: 1200})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Type != domain.PropertyOther || p.Status != domain.PropertyAvailable || p.AdminID != admin.ID {
		t.Fatalf("unexpected property: %+v", p)
	}

	if _, err := f.properties.Create(ctx, admin.Principal(), ports.PropertyInput{Title: "X", Type: "castle"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad type, got %v", err)
	}
	if _, err := f.properties.Create(ctx, admin.Principal(), ports.PropertyInput{Title: "X", Price: -1}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for negative price, got %v", err)
	}

	emp := seedEmployee(t, f.employees, admin, "erin@example.com", "pw")
	if _, err := f.properties.Create(ctx, emp.Principal(), ports.PropertyInput{Title: "X"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employee, got %v", err)
	}
}

func TestPropertyService_Tenancy(t *testing.T) {
	f := newPropertyFixture()
	owner := seedAdmin(t, f.admins, "owner@example.com", "Acme")
	other := seedAdmin(t, f.admins, "other@example.com", "Globex")
	emp := seedEmployee(t, f.employees, owner, "erin@example.com", "pw")
	ctx := context.Background()

	p, _ := f.properties.Create(ctx, owner.Principal(), ports.PropertyInput{Title: "Loft"})

	if _, err := f.properties.Get(ctx, emp.Principal(), p.ID); err != nil {
		t.Fatalf("employee of owner should see property: %v", err)
	}
	if _, err := f.properties.Get(ctx, other.Principal(), p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other admin, got %v", err)
	}
	if _, err := f.properties.Update(ctx, other.Principal(), p.ID, ports.PropertyInput{Title: "Mine"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other admin update, got %v", err)
	}
	if err := f.properties.Delete(ctx, other.Principal(), p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other admin delete, got %v", err)
	}
	if err := f.properties.Delete(ctx, owner.Principal(), "prop-missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	updated, err := f.properties.Update(ctx, owner.Principal(), p.ID, ports.PropertyInput{Status: string(domain.PropertyRented)})
	if err != nil || updated.Status != domain.PropertyRented || updated.Title != "Loft" {
		t.Fatalf("unexpected update result: %+v, %v", updated, err)
	}
}

func TestPropertyService_ListPaging(t *testing.T) {
	f := newPropertyFixture()
	owner := seedAdmin(t, f.admins, "owner@example.com", "Acme")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = f.properties.Create(ctx, owner.Principal(), ports.PropertyInput{Title: fmt.Sprintf("P%d", i)})
	}

	res, err := f.properties.List(ctx, owner.Principal(), ports.ListPropertiesInput{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 5 || res.TotalPages != 3 || len(res.Items) != 2 || res.Page != 2 {
		t.Fatalf("unexpected page: %+v", res)
	}

	if _, err := f.properties.List(ctx, owner.Principal(), ports.ListPropertiesInput{Limit: 1000}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if f.propRepo.lastFilter.Limit != maxPageSize || f.propRepo.lastFilter.Page != 1 {
		t.Fatalf("expected limit capped at %d, got %+v", maxPageSize, f.propRepo.lastFilter)
	}

	if _, err := f.properties.List(ctx, owner.Principal(), ports.ListPropertiesInput{Status: "haunted"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	f.propRepo.lastFilter = ports.PropertyFilter{}
	if _, err := f.properties.List(ctx, owner.Principal(), ports.ListPropertiesInput{Page: math.MaxInt}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for huge page, got %v", err)
	}
	if f.propRepo.lastFilter.Page != 0 {
		t.Fatalf("store must not be queried for an out-of-range page, got %+v", f.propRepo.lastFilter)
	}
}

func TestBookmarkService(t *testing.T) {
	f := newPropertyFixture()
	owner := seedAdmin(t, f.admins, "owner@example.com", "Acme")
	other := seedAdmin(t, f.admins, "other@example.com", "Globex")
	erin := seedEmployee(t, f.employees, owner, "erin@example.com", "pw")
	finn := seedEmployee(t, f.employees, owner, "finn@example.com", "pw")
	ctx := context.Background()

	p, _ := f.properties.Create(ctx, owner.Principal(), ports.PropertyInput{Title: "Loft"})

	b, err := f.bookmarks.Add(ctx, erin.Principal(), p.ID, "shortlist")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := f.bookmarks.Add(ctx, erin.Principal(), p.ID, ""); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate, got %v", err)
	}
	if _, err := f.bookmarks.Add(ctx, other.Principal(), p.ID, ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for invisible property, got %v", err)
	}
	if _, err := f.bookmarks.Add(ctx, erin.Principal(), "prop-missing", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	list, _ := f.bookmarks.List(ctx, erin.Principal())
	if len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("unexpected bookmarks: %+v", list)
	}

	if err := f.bookmarks.Remove(ctx, finn.Principal(), b.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := f.bookmarks.Remove(ctx, erin.Principal(), b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := f.bookmarks.Remove(ctx, erin.Principal(), b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}
}
