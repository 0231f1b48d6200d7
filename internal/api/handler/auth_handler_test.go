package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hrdesk/feedback-api/internal/api/middleware"
	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn      func(ctx context.Context, in ports.RegisterAdminInput) (string, *domain.Admin, error)
	loginAdminFn    func(ctx context.Context, email, password string) (string, *domain.Admin, error)
	loginEmployeeFn func(ctx context.Context, email, password string) (string, *domain.Employee, error)
	currentAdminFn  func(ctx context.Context, p domain.Principal) (*domain.Admin, error)
	logoutFn        func(ctx context.Context, s *domain.Session) error
}

func (s *stubAuthService) RegisterAdmin(ctx context.Context, in ports.RegisterAdminInput) (string, *domain.Admin, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) LoginAdmin(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	return s.loginAdminFn(ctx, email, password)
}

func (s *stubAuthService) LoginEmployee(ctx context.Context, email, password string) (string, *domain.Employee, error) {
	return s.loginEmployeeFn(ctx, email, password)
}

func (s *stubAuthService) CurrentAdmin(ctx context.Context, p domain.Principal) (*domain.Admin, error) {
	return s.currentAdminFn(ctx, p)
}

func (s *stubAuthService) Logout(ctx context.Context, session *domain.Session) error {
	return s.logoutFn(ctx, session)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// withPrincipal mimics what the Auth middleware stores on the context.
func withPrincipal(c echo.Context, p domain.Principal) {
	c.Set(middleware.PrincipalKey, p)
	c.Set(middleware.SessionKey, &domain.Session{Principal: p, TokenID: "jti-1"})
}

func TestAuthHandler_RegisterAdmin_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterAdminInput) (string, *domain.Admin, error) {
			if in.Username != "alice" || in.CompanyName != "Acme" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "token123", &domain.Admin{ID: "a1", Username: in.Username, Email: in.Email, CompanyName: in.CompanyName, Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/admins/register",
		`{"username":"alice","email":"alice@acme.io","password":"secret1","companyName":"Acme"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.RegisterAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	admin, ok := resp["admin"].(map[string]any)
	if !ok || admin["username"] != "alice" || admin["companyName"] != "Acme" {
		t.Fatalf("unexpected admin payload: %+v", resp["admin"])
	}
	if _, leaked := admin["PasswordHash"]; leaked {
		t.Fatal("password hash must not be serialized")
	}
}

func TestAuthHandler_RegisterAdmin_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterAdminInput) (string, *domain.Admin, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/admins/register", `{"username":"bob"}`), rec)

	err := handler.RegisterAdmin(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_RegisterAdmin_EmailTaken(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterAdminInput) (string, *domain.Admin, error) {
			return "", nil, domain.ErrEmailTaken
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/admins/register",
		`{"username":"bob","email":"bob@acme.io","password":"secret1","companyName":"Acme"}`), rec)

	if err := handler.RegisterAdmin(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthHandler_LoginAdmin_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginAdminFn: func(ctx context.Context, email, password string) (string, *domain.Admin, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/admins/login", "{"), rec)

	if err := handler.LoginAdmin(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_LoginAdmin_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginAdminFn: func(ctx context.Context, email, password string) (string, *domain.Admin, error) {
			return "", nil, domain.ErrBadCredentials
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/admins/login", `{"email":"a@acme.io","password":"bad"}`), rec)

	if err := handler.LoginAdmin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthHandler_LoginEmployee_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginEmployeeFn: func(ctx context.Context, email, password string) (string, *domain.Employee, error) {
			if email != "eve@acme.io" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "tok", &domain.Employee{ID: "e1", Username: "eve", Email: email, Role: domain.RoleEmployee}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/employees/login", `{"email":"eve@acme.io","password":"secret"}`), rec)

	if err := handler.LoginEmployee(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	employee, ok := resp["employee"].(map[string]any)
	if !ok || employee["username"] != "eve" || resp["token"] != "tok" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Me_RequiresPrincipal(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/admins/me", nil), rec)

	if err := handler.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestAuthHandler_Logout_RevokesSession(t *testing.T) {
	e := newTestEcho()
	var revoked string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, s *domain.Session) error {
			revoked = s.TokenID
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/admins/logout", nil), rec)
	withPrincipal(c, domain.Principal{Kind: domain.KindAdministrator, ID: "a1", Role: domain.RoleAdmin})

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if revoked != "jti-1" {
		t.Fatalf("expected jti-1 to be revoked, got %q", revoked)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
