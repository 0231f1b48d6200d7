package service

import (
	"context"
	"strings"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

func requireAdmin(p domain.Principal) error {
	if !p.IsAdmin() {
		return domain.ErrAdminRoleRequired
	}
	return nil
}

func requireEmployee(p domain.Principal) error {
	if !p.IsEmployee() {
		return domain.ErrEmployeeRequired
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// tenancy resolves which admin's data a principal may see. Admins own their
// data directly; employees see the data of the admin who provisioned them.
type tenancy struct {
	employees ports.EmployeeRepository
}

func (t tenancy) adminID(ctx context.Context, p domain.Principal) (string, error) {
	switch p.Kind {
	case domain.KindAdministrator:
		return p.ID, nil
	case domain.KindEmployee:
		emp, err := t.employees.FindByID(ctx, p.ID)
		if err != nil {
			return "", err
		}
		if emp.AdminID == "" {
			return "", domain.ErrNotResourceOwner
		}
		return emp.AdminID, nil
	default:
		return "", domain.ErrMalformedPrincipal
	}
}

// employeeEmail returns the principal's current e-mail from the store. The token copy
// may be stale after a profile update.
func (t tenancy) employeeEmail(ctx context.Context, p domain.Principal) (string, error) {
	emp, err := t.employees.FindByID(ctx, p.ID)
	if err != nil {
		return "", err
	}
	return emp.Email, nil
}

func queueNotification(q ports.NotificationQueue, n ports.Notification) bool {
	if q == nil {
		return false
	}
	return q.Enqueue(n)
}
