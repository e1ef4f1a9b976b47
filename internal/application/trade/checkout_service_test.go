package trade

import (
	"context"
	"testing"

	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutService_Checkout(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	lamp := f.product(t, f.seller, "Lamp", "12.5")
	shade := f.product(t, f.other, "Shade", "3.10")
	f.image(t, lamp, "products/lamp.png")

	c := f.fillCart(t, f.buyer, map[*catalog.Product]int{lamp: 2, shade: 1})
	cartTotal := c.TotalPrice()
	require.NoError(t, f.checkout.EnsureCartReady(ctx, f.buyer.ID))

	resp, err := f.checkout.Checkout(ctx, f.buyer.ID, validCheckout())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "28.10", resp.TotalPrice)
	assert.Equal(t, cartTotal.StringFixed(2), resp.TotalPrice)
	assert.Equal(t, "Anna", resp.ContactName)
	assert.Equal(t, "+79991234567", resp.ContactPhone)
	assert.Equal(t, f.buyer.ID, resp.BuyerID)
	require.Len(t, resp.Items, 2)

	bySeller := map[string]OrderItemResponse{}
	for _, item := range resp.Items {
		bySeller[item.SellerID.String()] = item
	}
	lampLine := bySeller[f.seller.ID.String()]
	assert.Equal(t, 2, lampLine.Quantity)
	assert.Equal(t, "25.00", lampLine.Subtotal)
	assert.Equal(t, "/media/products/lamp.png", lampLine.ProductImage)
	assert.Equal(t, "Lamp", lampLine.Product.Name)
	assert.Empty(t, bySeller[f.other.ID.String()].ProductImage)

	kept, err := f.carts.FindByOwner(ctx, cart.ForUser(f.buyer.ID))
	require.NoError(t, err, "cart row persists after checkout")
	assert.Equal(t, c.ID, kept.ID)
	assert.True(t, kept.IsEmpty())

	require.Len(t, f.metrics.placed, 1)
	assert.True(t, f.metrics.placed[0].Equal(decimal.RequireFromString("28.10")))
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()

	_, err := f.checkout.Checkout(ctx, f.buyer.ID, validCheckout())
	assert.ErrorIs(t, err, ErrEmptyCart, "no cart yet")
	assert.ErrorIs(t, f.checkout.EnsureCartReady(ctx, f.buyer.ID), ErrEmptyCart)

	f.fillCart(t, f.buyer, nil)
	_, err = f.checkout.Checkout(ctx, f.buyer.ID, validCheckout())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.ErrorIs(t, f.checkout.EnsureCartReady(ctx, f.buyer.ID), ErrEmptyCart)

	badPhone := validCheckout()
	badPhone.ContactPhone = "123"
	_, err = f.checkout.Checkout(ctx, f.buyer.ID, badPhone)
	assert.ErrorIs(t, err, ErrEmptyCart, "empty cart wins over an invalid phone")

	assert.Zero(t, f.countOrders(t))
	assert.Empty(t, f.metrics.placed)
}

func TestCheckoutService_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CheckoutRequest)
		wantCode string
	}{
		{name: "short phone", mutate: func(r *CheckoutRequest) { r.ContactPhone = "123" }, wantCode: "INVALID_PHONE"},
		{name: "missing phone", mutate: func(r *CheckoutRequest) { r.ContactPhone = "" }, wantCode: "PHONE_REQUIRED"},
		{name: "blank name", mutate: func(r *CheckoutRequest) { r.ContactName = "  " }, wantCode: "INVALID_CONTACT_NAME"},
		{name: "blank address", mutate: func(r *CheckoutRequest) { r.DeliveryAddress = "" }, wantCode: "INVALID_DELIVERY_ADDRESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTradeFixture(t)
			lamp := f.product(t, f.seller, "Lamp", "10")
			f.fillCart(t, f.buyer, map[*catalog.Product]int{lamp: 1})

			req := validCheckout()
			tt.mutate(&req)
			_, err := f.checkout.Checkout(context.Background(), f.buyer.ID, req)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
			assert.Zero(t, f.countOrders(t))

			c, err := f.carts.FindByOwner(context.Background(), cart.ForUser(f.buyer.ID))
			require.NoError(t, err)
			assert.Len(t, c.Items, 1, "cart is untouched")
		})
	}
}

func TestCheckoutService_PhoneFormats(t *testing.T) {
	for _, raw := range []string{"89991234567", "9991234567", "+7 999 123 45 67"} {
		t.Run(raw, func(t *testing.T) {
			f := newTradeFixture(t)
			lamp := f.product(t, f.seller, "Lamp", "10")
			f.fillCart(t, f.buyer, map[*catalog.Product]int{lamp: 1})

			req := validCheckout()
			req.ContactPhone = raw
			resp, err := f.checkout.Checkout(context.Background(), f.buyer.ID, req)

			require.NoError(t, err)
			assert.Equal(t, "+79991234567", resp.ContactPhone)
		})
	}
}
