package authz_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oceanix/incident-platform/internal/authz"
)

var _ = Describe("EffectivePermissions", func() {
	Context("when the caller has multiple roles", func() {
		It("should union active grants and collapse duplicates", func() {
			identity := &authz.CallerIdentity{
				ID:       7,
				UserType: authz.UserTypeAdmin,
				Roles: []authz.RoleAssignment{
					{Role: authz.Role{ID: 1, Name: "incident_viewer", Permissions: []authz.PermissionGrant{
						{Permission: authz.Permission{Name: "view_incidents", IsActive: true}},
					}}},
					{Role: authz.Role{ID: 2, Name: "incident_manager", Permissions: []authz.PermissionGrant{
						{Permission: authz.Permission{Name: "view_incidents", IsActive: true}},
						{Permission: authz.Permission{Name: "edit_incidents", IsActive: true}},
					}}},
				},
			}

			set := authz.EffectivePermissions(identity)

			Expect(set.Names()).To(Equal([]string{"edit_incidents", "view_incidents"}))
		})

		It("should produce the same set regardless of role order", func() {
			viewer := authz.RoleAssignment{Role: authz.Role{ID: 1, Name: "incident_viewer", Permissions: []authz.PermissionGrant{
				{Permission: authz.Permission{Name: "view_incidents", IsActive: true}},
			}}}
			admin := authz.RoleAssignment{Role: authz.Role{ID: 2, Name: "tenant_admin", Permissions: []authz.PermissionGrant{
				{Permission: authz.Permission{Name: "delete_users", IsActive: true}},
				{Permission: authz.Permission{Name: "view_incidents", IsActive: true}},
			}}}

			forward := authz.EffectivePermissions(&authz.CallerIdentity{Roles: []authz.RoleAssignment{viewer, admin}})
			reversed := authz.EffectivePermissions(&authz.CallerIdentity{Roles: []authz.RoleAssignment{admin, viewer}})

			Expect(forward.Names()).To(Equal(reversed.Names()))
		})
	})

	Context("when grants are inactive or unnamed", func() {
		It("should skip them", func() {
			identity := &authz.CallerIdentity{
				Roles: []authz.RoleAssignment{
					{Role: authz.Role{ID: 1, Name: "mixed", Permissions: []authz.PermissionGrant{
						{Permission: authz.Permission{Name: "view_incidents", IsActive: true}},
						{Permission: authz.Permission{Name: "edit_incidents", IsActive: false}},
						{Permission: authz.Permission{Name: "", IsActive: true}},
					}}},
				},
			}

			set := authz.EffectivePermissions(identity)

			Expect(set.Has("view_incidents")).To(BeTrue())
			Expect(set.Has("edit_incidents")).To(BeFalse())
			Expect(set.Names()).To(HaveLen(1))
		})
	})

	Context("when the caller has no roles", func() {
		It("should return an empty set", func() {
			set := authz.EffectivePermissions(&authz.CallerIdentity{ID: 1})

			Expect(set).To(BeEmpty())
			Expect(set.Intersects([]string{"view_incidents"})).To(BeFalse())
		})
	})

	Context("when the identity is nil", func() {
		It("should return an empty set instead of panicking", func() {
			Expect(authz.EffectivePermissions(nil)).To(BeEmpty())
		})
	})

	It("should not mutate the caller's role data", func() {
		identity := &authz.CallerIdentity{
			Roles: []authz.RoleAssignment{
				{Role: authz.Role{ID: 1, Name: "incident_viewer", Permissions: []authz.PermissionGrant{
					{Permission: authz.Permission{Name: "view_incidents", IsActive: true}},
				}}},
			},
		}

		_ = authz.EffectivePermissions(identity)

		Expect(identity.Roles).To(HaveLen(1))
		Expect(identity.Roles[0].Role.Permissions).To(HaveLen(1))
		Expect(identity.Roles[0].Role.Permissions[0].Permission.Name).To(Equal("view_incidents"))
	})
})

var _ = Describe("PermissionSet", func() {
	It("should report intersection with any of the given names", func() {
		set := authz.PermissionSet{"view_incidents": {}}

		Expect(set.Intersects([]string{"edit_incidents", "view_incidents"})).To(BeTrue())
		Expect(set.Intersects([]string{"edit_incidents"})).To(BeFalse())
		Expect(set.Intersects(nil)).To(BeFalse())
	})
})

var _ = Describe("CallerIdentity", func() {
	It("should classify only SUPER_ADMIN as super admin", func() {
		Expect((&authz.CallerIdentity{UserType: authz.UserTypeSuperAdmin}).IsSuperAdmin()).To(BeTrue())
		Expect((&authz.CallerIdentity{UserType: authz.UserTypeAdmin}).IsSuperAdmin()).To(BeFalse())
		Expect((&authz.CallerIdentity{UserType: authz.UserTypeClient}).IsSuperAdmin()).To(BeFalse())

		var nilIdentity *authz.CallerIdentity
		Expect(nilIdentity.IsSuperAdmin()).To(BeFalse())
	})
})
