package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rateMenu/business/user"
	"rateMenu/domain"

	"github.com/labstack/echo/v4"
)

type fakeUserService struct {
	err error
}

func (f *fakeUserService) Signup(ctx context.Context, u *domain.User) (string, domain.User, error) {
	if f.err != nil {
		return "", domain.User{}, f.err
	}
	return "tok", domain.User{ID: 1, Name: u.Name, Email: u.Email}, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	if f.err != nil {
		return "", domain.User{}, f.err
	}
	return "tok", domain.User{ID: 1, Email: email}, nil
}

func TestUserHandler(t *testing.T) {
	tests := []struct {
		name       string
		login      bool
		body       string
		svcErr     error
		wantStatus int
	}{
		{"signup ok", false, `{"name":"Ana","email":"ana@example.com","password":"pa55word"}`, nil, http.StatusCreated},
		{"signup short password", false, `{"name":"Ana","email":"ana@example.com","password":"123"}`, nil, http.StatusBadRequest},
		{"signup bad email", false, `{"name":"Ana","email":"ana","password":"pa55word"}`, nil, http.StatusBadRequest},
		{"signup taken", false, `{"name":"Ana","email":"ana@example.com","password":"pa55word"}`, user.ErrEmailTaken, http.StatusConflict},
		{"login ok", true, `{"email":"ana@example.com","password":"pa55word"}`, nil, http.StatusOK},
		{"login bad credentials", true, `{"email":"ana@example.com","password":"x"}`, user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"login store failure", true, `{"email":"ana@example.com","password":"x"}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&fakeUserService{err: tt.svcErr})

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var err error
			if tt.login {
				err = h.Login(c)
			} else {
				err = h.Signup(c)
			}
			if err != nil {
				t.Fatal(err)
			}

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if rec.Code < 300 {
				if !strings.Contains(rec.Body.String(), `"token":"tok"`) {
					t.Errorf("body = %s, want token", rec.Body.String())
				}
				if strings.Contains(rec.Body.String(), "password") {
					t.Errorf("body leaks password field: %s", rec.Body.String())
				}
			}
		})
	}
}
