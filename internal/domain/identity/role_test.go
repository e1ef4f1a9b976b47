package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Seller ")
	require.NoError(t, err)
	assert.Equal(t, RoleSeller, r)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRole_Can(t *testing.T) {
	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleCustomer, CapOrderPlace, true},
		{RoleCustomer, CapBecomeSeller, true},
		{RoleCustomer, CapProductManage, false},
		{RoleCustomer, CapSellerAnalytics, false},
		{RoleSeller, CapProductManage, true},
		{RoleSeller, CapSellerOrders, true},
		{RoleSeller, CapOrderPlace, true},
		{RoleSeller, CapUserAdmin, false},
		{RoleAdmin, CapUserAdmin, true},
		{RoleAdmin, CapOrderAdmin, true},
		{RoleAdmin, CapCategoryManage, true},
		{RoleAdmin, CapProductManage, false},
		{RoleAdmin, CapBecomeSeller, false},
		{Role("ghost"), CapOrderPlace, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cap), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Can(tt.cap))
		})
	}
}

func TestRole_Capabilities(t *testing.T) {
	assert.ElementsMatch(t, []Capability{
		CapProfileManage, CapOrderPlace, CapReviewWrite, CapFavoriteManage, CapBecomeSeller,
	}, RoleCustomer.Capabilities())
}
