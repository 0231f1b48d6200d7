package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

type employeeFixture struct {
	svc       *EmployeeService
	admins    *stubAdminRepo
	employees *stubEmployeeRepo
	companies *stubCompanyRepo
	queue     *stubQueue
}

func newEmployeeFixture() *employeeFixture {
	f := &employeeFixture{
		admins:    newStubAdminRepo(),
		employees: newStubEmployeeRepo(),
		companies: newStubCompanyRepo(),
		queue:     &stubQueue{},
	}
	f.svc = NewEmployeeService(f.employees, f.admins, f.companies, plainHasher{}, f.queue, zerolog.Nop())
	f.svc.generatePassword = func() (string, error) { return "generated-pass", nil }
	return f
}

func TestEmployeeService_Add(t *testing.T) {
	f := newEmployeeFixture()
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")

	res, err := f.svc.Add(context.Background(), admin.Principal(), ports.AddEmployeeInput{Username: "erin", Email: "Erin@Example.com"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if res.TemporaryPassword != "generated-pass" {
		t.Fatalf("unexpected temporary password %q", res.TemporaryPassword)
	}
	emp := res.Employee
	if emp.Email != "erin@example.com" || emp.AdminID != admin.ID || emp.CompanyName != "Acme" || emp.Role != domain.RoleEmployee {
		t.Fatalf("unexpected employee: %+v", emp)
	}
	if emp.PasswordHash != "hashed:generated-pass" {
		t.Fatalf("expected generated password to be hashed, got %q", emp.PasswordHash)
	}

	queued := f.queue.items()
	if !res.NotificationQueued || len(queued) != 1 {
		t.Fatalf("expected one notification, got %d", len(queued))
	}
	if queued[0].Type != ports.NotificationEmployeeProvisioned || queued[0].Recipient != emp.Email {
		t.Fatalf("unexpected notification: %+v", queued[0])
	}
}

func TestEmployeeService_Add_Duplicate(t *testing.T) {
	f := newEmployeeFixture()
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")
	seedEmployee(t, f.employees, admin, "erin@example.com", "pw")

	_, err := f.svc.Add(context.Background(), admin.Principal(), ports.AddEmployeeInput{Username: "erin2", Email: "erin@example.com"})
	if !errors.Is(err, domain.ErrEmployeeExists) {
		t.Fatalf("expected ErrEmployeeExists, got %v", err)
	}
}

func TestEmployeeService_Add_RejectsNonAdmin(t *testing.T) {
	f := newEmployeeFixture()
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")
	writesBefore := f.employees.writeCount()

	callers := []domain.Principal{
		{Kind: domain.KindEmployee, ID: "emp-x", Role: domain.RoleEmployee},
		{Kind: domain.KindAdministrator, ID: admin.ID, Role: domain.RoleManager},
	}
	for _, p := range callers {
		_, err := f.svc.Add(context.Background(), p, ports.AddEmployeeInput{Username: "mallory", Email: "mallory@example.com"})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden for %+v, got %v", p, err)
		}
	}

	if f.employees.writeCount() != writesBefore {
		t.Fatalf("rejected add must not write")
	}
	if len(f.queue.items()) != 0 {
		t.Fatalf("rejected add must not notify")
	}
}

func TestEmployeeService_Add_InvalidRole(t *testing.T) {
	f := newEmployeeFixture()
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")

	_, err := f.svc.Add(context.Background(), admin.Principal(), ports.AddEmployeeInput{Username: "x", Email: "x@example.com", Role: domain.RoleAdmin})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEmployeeService_Add_FullQueueStillSucceeds(t *testing.T) {
	f := newEmployeeFixture()
	f.queue.full = true
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")

	res, err := f.svc.Add(context.Background(), admin.Principal(), ports.AddEmployeeInput{Username: "erin", Email: "erin@example.com"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if res.NotificationQueued {
		t.Fatalf("expected NotificationQueued=false when queue is full")
	}
}

func TestEmployeeService_Delete_CrossAdmin(t *testing.T) {
	f := newEmployeeFixture()
	owner := seedAdmin(t, f.admins, "owner@example.com", "Acme")
	other := seedAdmin(t, f.admins, "other@example.com", "Globex")
	emp := seedEmployee(t, f.employees, owner, "erin@example.com", "pw")

	if err := f.svc.Delete(context.Background(), other.Principal(), emp.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.employees.FindByID(context.Background(), emp.ID); err != nil {
		t.Fatalf("employee should still exist: %v", err)
	}

	if err := f.svc.Delete(context.Background(), owner.Principal(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), owner.Principal(), emp.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestEmployeeService_Get(t *testing.T) {
	f := newEmployeeFixture()
	owner := seedAdmin(t, f.admins, "owner@example.com", "Acme")
	other := seedAdmin(t, f.admins, "other@example.com", "Globex")
	erin := seedEmployee(t, f.employees, owner, "erin@example.com", "pw")
	finn := seedEmployee(t, f.employees, owner, "finn@example.com", "pw")

	if _, err := f.svc.Get(context.Background(), owner.Principal(), erin.ID); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), erin.Principal(), erin.ID); err != nil {
		t.Fatalf("self get failed: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), finn.Principal(), erin.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for peer, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), other.Principal(), erin.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other admin, got %v", err)
	}
}

func TestEmployeeService_List_ScopedToAdmin(t *testing.T) {
	f := newEmployeeFixture()
	owner := seedAdmin(t, f.admins, "owner@example.com", "Acme")
	other := seedAdmin(t, f.admins, "other@example.com", "Globex")
	seedEmployee(t, f.employees, owner, "a@example.com", "pw")
	seedEmployee(t, f.employees, other, "b@example.com", "pw")

	list, err := f.svc.List(context.Background(), owner.Principal())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Email != "a@example.com" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestEmployeeService_ChangePassword(t *testing.T) {
	f := newEmployeeFixture()
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")
	emp := seedEmployee(t, f.employees, admin, "erin@example.com", "old")

	if err := f.svc.ChangePassword(context.Background(), emp.Principal(), "nope", "new"); !errors.Is(err, domain.ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}
	if err := f.svc.ChangePassword(context.Background(), emp.Principal(), "old", "new"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	stored, _ := f.employees.FindByID(context.Background(), emp.ID)
	if (plainHasher{}).Compare(stored.PasswordHash, "old") {
		t.Fatalf("old password must no longer match")
	}
	if !(plainHasher{}).Compare(stored.PasswordHash, "new") {
		t.Fatalf("new password must match")
	}
}

func TestEmployeeService_ChangePassword_ConcurrentLastWriteWins(t *testing.T) {
	f := newEmployeeFixture()
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")
	emp := seedEmployee(t, f.employees, admin, "erin@example.com", "old")

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = f.svc.ChangePassword(context.Background(), emp.Principal(), "old", fmt.Sprintf("new-%d", i))
		}(i)
	}
	wg.Wait()

	stored, _ := f.employees.FindByID(context.Background(), emp.ID)
	matches := 0
	for i := 0; i < n; i++ {
		if (plainHasher{}).Compare(stored.PasswordHash, fmt.Sprintf("new-%d", i)) {
			matches++
			if errs[i] != nil {
				t.Fatalf("winning change %d reported error: %v", i, errs[i])
			}
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one winning password, got %d", matches)
	}
}

func TestEmployeeService_UpdateProfile(t *testing.T) {
	f := newEmployeeFixture()
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")
	erin := seedEmployee(t, f.employees, admin, "erin@example.com", "pw")
	seedEmployee(t, f.employees, admin, "finn@example.com", "pw")

	if _, err := f.svc.UpdateProfile(context.Background(), erin.Principal(), "erin", "finn@example.com"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	updated, err := f.svc.UpdateProfile(context.Background(), erin.Principal(), "erin.s", "Erin.S@example.com")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Username != "erin.s" || updated.Email != "erin.s@example.com" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	if _, err := f.svc.UpdateProfile(context.Background(), admin.Principal(), "x", "x@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin, got %v", err)
	}
}

func TestEmployeeService_CompanyDetails(t *testing.T) {
	f := newEmployeeFixture()
	admin := seedAdmin(t, f.admins, "boss@example.com", "Acme")
	emp := seedEmployee(t, f.employees, admin, "erin@example.com", "pw")

	if _, err := f.svc.CompanyDetails(context.Background(), emp.Principal()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before company exists, got %v", err)
	}

	_, _, _ = f.companies.Upsert(context.Background(), &domain.Company{AdminID: admin.ID, Name: "Acme"})
	company, err := f.svc.CompanyDetails(context.Background(), emp.Principal())
	if err != nil || company.Name != "Acme" {
		t.Fatalf("unexpected result: %+v, %v", company, err)
	}

	byName, err := f.svc.CompanyByName(context.Background(), "acme")
	if err != nil || byName.AdminID != admin.ID {
		t.Fatalf("unexpected CompanyByName result: %+v, %v", byName, err)
	}
}
