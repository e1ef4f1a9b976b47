package identity

import (
	"strings"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Role is the closed set of account roles
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// AllRoles lists every valid role
var AllRoles = []Role{RoleCustomer, RoleSeller, RoleAdmin}

// ErrInvalidRole is returned for role strings outside the enumeration
var ErrInvalidRole = shared.NewDomainError("INVALID_ROLE", "Role must be one of: customer, seller, admin")

// ParseRole converts a string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// String returns the role string
func (r Role) String() string {
	return string(r)
}

// Capability names an action an endpoint performs.
type Capability string

const (
	CapProfileManage   Capability = "profile:manage"
	CapBecomeSeller    Capability = "account:become_seller"
	CapOrderPlace      Capability = "order:place"
	CapReviewWrite     Capability = "review:write"
	CapFavoriteManage  Capability = "favorite:manage"
	CapProductManage   Capability = "product:manage"
	CapImageManage     Capability = "image:manage"
	CapSellerOrders    Capability = "seller_order:manage"
	CapSellerAnalytics Capability = "seller:analytics"
	CapCategoryManage  Capability = "category:manage"
	CapUserAdmin       Capability = "user:admin"
	CapOrderAdmin      Capability = "order:admin"
)

// buyerCapabilities are granted to every authenticated account.
var buyerCapabilities = []Capability{
	CapProfileManage,
	CapOrderPlace,
	CapReviewWrite,
	CapFavoriteManage,
}

// capabilityTable maps each role to the capabilities it holds.
var capabilityTable = map[Role]map[Capability]struct{}{
	RoleCustomer: capabilitySet(buyerCapabilities, CapBecomeSeller),
	RoleSeller: capabilitySet(buyerCapabilities,
		CapBecomeSeller,
		CapProductManage,
		CapImageManage,
		CapSellerOrders,
		CapSellerAnalytics,
	),
	RoleAdmin: capabilitySet(buyerCapabilities,
		CapCategoryManage,
		CapUserAdmin,
		CapOrderAdmin,
	),
}

func capabilitySet(base []Capability, extra ...Capability) map[Capability]struct{} {
	set := make(map[Capability]struct{}, len(base)+len(extra))
	for _, c := range base {
		set[c] = struct{}{}
	}
	for _, c := range extra {
		set[c] = struct{}{}
	}
	return set
}

// Can reports whether the role holds the capability
func (r Role) Can(c Capability) bool {
	caps, ok := capabilityTable[r]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}

// Capabilities returns the role's capabilities
func (r Role) Capabilities() []Capability {
	caps := capabilityTable[r]
	out := make([]Capability, 0, len(caps))
	for c := range caps {
		out = append(out, c)
	}
	return out
}
