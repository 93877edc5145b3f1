package authz_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oceanix/incident-platform/internal"
	"github.com/oceanix/incident-platform/internal/authz"
)

type stubResolver struct {
	identities map[string]*authz.CallerIdentity
}

func (s *stubResolver) Resolve(_ context.Context, credential string) (*authz.CallerIdentity, error) {
	if identity, ok := s.identities[credential]; ok {
		return identity, nil
	}
	return nil, internal.ErrInvalidToken
}

type capturedRequest struct {
	identity         *authz.CallerIdentity
	identityOK       bool
	tenant           *authz.TenantContext
	tenantOK         bool
	allowAnyResource bool
}

func errorCodeFromBody(rec *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
	return body.Error.Code
}

var _ = Describe("Pipeline", func() {
	var (
		pipeline *authz.Pipeline
		resolver *stubResolver
		captured *capturedRequest
		handler  http.Handler
	)

	requireEdit := authz.Requirement{Permissions: []string{"edit_incidents"}}

	BeforeEach(func() {
		resolver = &stubResolver{identities: map[string]*authz.CallerIdentity{
			"employee-token": identityWithPermissions(authz.UserTypeEmployee, tenantID("ent-1"), "view_incidents", "edit_incidents"),
			"client-token":   identityWithPermissions(authz.UserTypeClient, tenantID("ent-1"), "view_incidents"),
			"orphan-token":   identityWithPermissions(authz.UserTypeClient, nil, "view_incidents", "edit_incidents"),
			"root-token": {
				ID:       99,
				Email:    "root@oceanix.space",
				UserType: authz.UserTypeSuperAdmin,
			},
		}}
		pipeline = authz.NewPipeline(resolver, nil)

		captured = &capturedRequest{}
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured.identity, captured.identityOK = authz.IdentityFromContext(r.Context())
			captured.tenant, captured.tenantOK = authz.TenantFromContext(r.Context())
			captured.allowAnyResource = authz.AllowAnyResourceFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	})

	serve := func(guarded http.Handler, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		return rec
	}

	Describe("Authenticate", func() {
		Context("when no credential is sent", func() {
			It("should reject with 401 unauthenticated", func() {
				rec := serve(pipeline.Guard(requireEdit)(handler), "")

				Expect(rec.Code).To(Equal(http.StatusUnauthorized))
				Expect(errorCodeFromBody(rec)).To(Equal("UNAUTHENTICATED"))
			})
		})

		Context("when the credential does not verify", func() {
			It("should reject with 401 unauthenticated", func() {
				rec := serve(pipeline.Guard(requireEdit)(handler), "forged-token")

				Expect(rec.Code).To(Equal(http.StatusUnauthorized))
				Expect(errorCodeFromBody(rec)).To(Equal("UNAUTHENTICATED"))
			})
		})

		Context("when the Authorization header is not a bearer scheme", func() {
			It("should reject with 401 unauthenticated", func() {
				req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents", nil)
				req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
				rec := httptest.NewRecorder()

				pipeline.Guard(requireEdit)(handler).ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			})
		})
	})

	Describe("RequireTenant", func() {
		Context("when the caller has no enterprise", func() {
			It("should reject with 403 invalid tenant before the permission gate", func() {
				// orphan-token holds edit_incidents, so a pass here would
				// prove the stages ran out of order.
				rec := serve(pipeline.Guard(requireEdit)(handler), "orphan-token")

				Expect(rec.Code).To(Equal(http.StatusForbidden))
				Expect(errorCodeFromBody(rec)).To(Equal("INVALID_TENANT"))
			})
		})

		Context("when the caller is SUPER_ADMIN", func() {
			It("should pass through without a tenant context", func() {
				rec := serve(pipeline.Guard(requireEdit)(handler), "root-token")

				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(captured.tenantOK).To(BeFalse())
				Expect(captured.tenant).To(BeNil())
			})
		})

		Context("when it runs without a preceding Authenticate", func() {
			It("should reject with identity missing", func() {
				rec := serve(pipeline.RequireTenant(handler), "")

				Expect(rec.Code).To(Equal(http.StatusUnauthorized))
				Expect(errorCodeFromBody(rec)).To(Equal("IDENTITY_MISSING"))
			})
		})
	})

	Describe("Authorize", func() {
		Context("when the caller holds a required permission", func() {
			It("should invoke the handler with identity and tenant attached", func() {
				rec := serve(pipeline.Guard(requireEdit)(handler), "employee-token")

				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(captured.identityOK).To(BeTrue())
				Expect(captured.identity.Email).To(Equal("caller@techcorp.test"))
				Expect(captured.tenantOK).To(BeTrue())
				Expect(captured.tenant.TenantID).To(Equal("ent-1"))
			})
		})

		Context("when the caller lacks every required permission", func() {
			It("should reject with 403 insufficient permissions", func() {
				rec := serve(pipeline.Guard(requireEdit)(handler), "client-token")

				Expect(rec.Code).To(Equal(http.StatusForbidden))
				Expect(errorCodeFromBody(rec)).To(Equal("INSUFFICIENT_PERMISSIONS"))
			})
		})

		Context("when the requirement is empty", func() {
			It("should admit any authenticated tenant-valid caller", func() {
				rec := serve(pipeline.Guard(authz.Requirement{})(handler), "client-token")

				Expect(rec.Code).To(Equal(http.StatusOK))
			})
		})

		Context("allow-any-resource flag", func() {
			It("should be visible downstream when declared", func() {
				req := authz.Requirement{Permissions: []string{"view_incidents"}, AllowAnyResource: true}

				rec := serve(pipeline.Guard(req)(handler), "client-token")

				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(captured.allowAnyResource).To(BeTrue())
			})

			It("should default to false", func() {
				req := authz.Requirement{Permissions: []string{"view_incidents"}}

				rec := serve(pipeline.Guard(req)(handler), "client-token")

				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(captured.allowAnyResource).To(BeFalse())
			})
		})
	})

	Describe("stage ordering", func() {
		It("should not call the resolver when the credential is absent", func() {
			calls := 0
			counting := resolverFunc(func(ctx context.Context, credential string) (*authz.CallerIdentity, error) {
				calls++
				return nil, internal.ErrInvalidToken
			})

			p := authz.NewPipeline(counting, nil)
			rec := serve(p.Guard(requireEdit)(handler), "")

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(calls).To(BeZero())
		})
	})
})

type resolverFunc func(ctx context.Context, credential string) (*authz.CallerIdentity, error)

func (f resolverFunc) Resolve(ctx context.Context, credential string) (*authz.CallerIdentity, error) {
	return f(ctx, credential)
}
