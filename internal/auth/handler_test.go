package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/oceanix/incident-platform/internal"
)

type mockAuthService struct {
	tokens AuthTokens
	err    error

	lastLabel        string
	lastLabelPresent bool
}

func (m *mockAuthService) Authenticate(_ context.Context, dto LoginDTO, tenantLabel string, labelPresent bool) (AuthTokens, error) {
	m.lastLabel = tenantLabel
	m.lastLabelPresent = labelPresent
	if m.err != nil {
		return AuthTokens{}, m.err
	}
	return m.tokens, nil
}

func (m *mockAuthService) RefreshTokens(_ context.Context, refreshToken string) (AuthTokens, error) {
	if m.err != nil {
		return AuthTokens{}, m.err
	}
	return m.tokens, nil
}

func (m *mockAuthService) ValidateAccessToken(tokenString string) (*Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &Claims{UserID: "1"}, nil
}

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		handler *Handler
		service *mockAuthService
	)

	ginkgo.BeforeEach(func() {
		service = &mockAuthService{tokens: AuthTokens{AccessToken: "access", RefreshToken: "refresh"}}
		handler = NewHandler(service, "X-Subdomain")
	})

	postLogin := func(body string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		handler.Login(rec, req)
		return rec
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should pass the inferred tenant label to the service", func() {
			rec := postLogin(`{"email":"client@techcorp.test","password":"secret"}`,
				map[string]string{"X-Subdomain": "techcorp"})

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(service.lastLabel).To(gomega.Equal("techcorp"))
			gomega.Expect(service.lastLabelPresent).To(gomega.BeTrue())

			var tokens AuthTokens
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &tokens)).To(gomega.Succeed())
			gomega.Expect(tokens.AccessToken).To(gomega.Equal("access"))
		})

		ginkgo.It("should infer the label from Origin when no header is sent", func() {
			rec := postLogin(`{"email":"client@techcorp.test","password":"secret"}`,
				map[string]string{"Origin": "https://techcorp.oceanix.space"})

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(service.lastLabel).To(gomega.Equal("techcorp"))
		})

		ginkgo.It("should report label absence instead of inventing one", func() {
			rec := postLogin(`{"email":"root@oceanix.space","password":"secret"}`, nil)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(service.lastLabelPresent).To(gomega.BeFalse())
			gomega.Expect(service.lastLabel).To(gomega.BeEmpty())
		})

		ginkgo.It("should map invalid credentials to a 401 with the generic code", func() {
			service.err = internal.ErrInvalidCredentials

			rec := postLogin(`{"email":"client@techcorp.test","password":"wrong"}`,
				map[string]string{"X-Subdomain": "techcorp"})

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))

			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.Error.Code).To(gomega.Equal("INVALID_CREDENTIALS"))
		})

		ginkgo.It("should reject a malformed body", func() {
			rec := postLogin(`{not json`, nil)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("RefreshToken", func() {
		ginkgo.It("should return a rotated token pair", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
				bytes.NewBufferString(`{"refresh_token":"some.refresh.token"}`))
			rec := httptest.NewRecorder()

			handler.RefreshToken(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject an empty refresh token", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
				bytes.NewBufferString(`{}`))
			rec := httptest.NewRecorder()

			handler.RefreshToken(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should require a bearer token", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
			rec := httptest.NewRecorder()

			handler.Logout(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should accept a valid token", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
			req.Header.Set("Authorization", "Bearer some.valid.token")
			rec := httptest.NewRecorder()

			handler.Logout(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		})
	})
})
