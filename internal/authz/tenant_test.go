package authz_test

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oceanix/incident-platform/internal"
	"github.com/oceanix/incident-platform/internal/authz"
)

var _ = Describe("ExtractTenantLabel", func() {
	newRequest := func(headers map[string]string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req
	}

	Context("when the subdomain header is present", func() {
		It("should return the header value verbatim", func() {
			req := newRequest(map[string]string{"X-Subdomain": "techcorp"})

			label, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("techcorp"))
		})

		It("should win over Origin and Referer", func() {
			req := newRequest(map[string]string{
				"X-Subdomain": "techcorp",
				"Origin":      "https://other.oceanix.space",
				"Referer":     "https://another.oceanix.space/login",
			})

			label, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("techcorp"))
		})

		It("should not second-guess the header value", func() {
			// Header values skip the hostname heuristics entirely.
			req := newRequest(map[string]string{"X-Subdomain": "www"})

			label, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("www"))
		})

		It("should honor a configured header name", func() {
			req := newRequest(map[string]string{"X-Tenant": "techcorp"})

			_, defaultOK := authz.ExtractTenantLabel(req, "")
			label, ok := authz.ExtractTenantLabel(req, "X-Tenant")

			Expect(defaultOK).To(BeFalse())
			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("techcorp"))
		})
	})

	Context("when only Origin is present", func() {
		It("should use the first hostname label", func() {
			req := newRequest(map[string]string{"Origin": "https://techcorp.oceanix.space"})

			label, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("techcorp"))
		})

		It("should ignore an apex hostname with too few labels", func() {
			req := newRequest(map[string]string{"Origin": "https://oceanix.space"})

			_, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeFalse())
		})

		It("should ignore a www hostname", func() {
			req := newRequest(map[string]string{"Origin": "https://www.oceanix.space"})

			_, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeFalse())
		})

		It("should strip the port before counting labels", func() {
			req := newRequest(map[string]string{"Origin": "https://techcorp.oceanix.space:8443"})

			label, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("techcorp"))
		})
	})

	Context("when only Referer is present", func() {
		It("should fall back to the Referer hostname", func() {
			req := newRequest(map[string]string{"Referer": "https://techcorp.oceanix.space/incidents/42"})

			label, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("techcorp"))
		})

		It("should prefer Origin when both are present", func() {
			req := newRequest(map[string]string{
				"Origin":  "https://techcorp.oceanix.space",
				"Referer": "https://other.oceanix.space/login",
			})

			label, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("techcorp"))
		})

		It("should skip an unusable Origin and still read Referer", func() {
			req := newRequest(map[string]string{
				"Origin":  "https://oceanix.space",
				"Referer": "https://techcorp.oceanix.space/login",
			})

			label, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeTrue())
			Expect(label).To(Equal("techcorp"))
		})
	})

	Context("when no signal resolves", func() {
		It("should report absence without error", func() {
			req := newRequest(nil)

			label, ok := authz.ExtractTenantLabel(req, "")

			Expect(ok).To(BeFalse())
			Expect(label).To(BeEmpty())
		})
	})
})

var _ = Describe("ResolveTenant", func() {
	Context("when the identity is missing", func() {
		It("should return the identity-missing error", func() {
			tenant, err := authz.ResolveTenant(nil)

			Expect(tenant).To(BeNil())
			Expect(err).To(Equal(internal.ErrIdentityMissing))
		})
	})

	Context("when the caller is SUPER_ADMIN", func() {
		It("should bypass tenancy with a nil tenant context", func() {
			identity := &authz.CallerIdentity{ID: 1, UserType: authz.UserTypeSuperAdmin}

			tenant, err := authz.ResolveTenant(identity)

			Expect(err).ToNot(HaveOccurred())
			Expect(tenant).To(BeNil())
		})
	})

	Context("when the caller has no enterprise", func() {
		It("should reject a nil enterprise id", func() {
			identity := &authz.CallerIdentity{ID: 2, UserType: authz.UserTypeClient}

			tenant, err := authz.ResolveTenant(identity)

			Expect(tenant).To(BeNil())
			Expect(err).To(Equal(internal.ErrInvalidTenant))
		})

		It("should reject an empty enterprise id", func() {
			empty := ""
			identity := &authz.CallerIdentity{ID: 2, UserType: authz.UserTypeEmployee, EnterpriseID: &empty}

			tenant, err := authz.ResolveTenant(identity)

			Expect(tenant).To(BeNil())
			Expect(err).To(Equal(internal.ErrInvalidTenant))
		})
	})

	Context("when the caller belongs to an enterprise", func() {
		It("should return the tenant scope", func() {
			identity := &authz.CallerIdentity{ID: 3, UserType: authz.UserTypeAdmin, EnterpriseID: tenantID("ent-42")}

			tenant, err := authz.ResolveTenant(identity)

			Expect(err).ToNot(HaveOccurred())
			Expect(tenant).ToNot(BeNil())
			Expect(tenant.TenantID).To(Equal("ent-42"))
		})
	})
})
