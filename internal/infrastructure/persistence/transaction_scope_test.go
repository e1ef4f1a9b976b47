package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/domain/shared/valueobject"
	"github.com/marketplace/backend/internal/domain/trade"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormTransactionScope_Execute(t *testing.T) {
	ctx := context.Background()

	prepare := func(t *testing.T) (*seed, *cart.Cart) {
		s := newSeed(t)
		lamp := s.product(t, "Lamp", "12.5")
		carts := NewGormCartRepository(s.db)
		c, err := cart.New(cart.ForUser(s.buyer.ID))
		require.NoError(t, err)
		require.NoError(t, carts.Create(ctx, c))
		item, err := c.Add(lamp.ID, 2, lamp.Price)
		require.NoError(t, err)
		require.NoError(t, carts.SaveItem(ctx, item))
		return s, c
	}

	placeOrder := func(repos trade.CheckoutRepos, s *seed, c *cart.Cart) error {
		phone, _ := valueobject.ParsePhone("89991234567")
		order, err := trade.NewOrder(s.buyer.ID, trade.Delivery{
			ContactName: "Buyer", ContactPhone: phone, Method: "pickup", Address: "Main st 1",
		})
		if err != nil {
			return err
		}
		for _, item := range c.Items {
			product, err := repos.Products.FindByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if _, err := order.AddItem(item.ProductID, product.SellerID, item.Quantity, item.Price); err != nil {
				return err
			}
		}
		order.RecalculateTotal()
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		return repos.Carts.ClearItems(ctx, c.ID)
	}

	t.Run("commits", func(t *testing.T) {
		s, c := prepare(t)
		scope := NewGormTransactionScope(s.db)

		require.NoError(t, scope.Execute(ctx, func(repos trade.CheckoutRepos) error {
			return placeOrder(repos, s, c)
		}))

		var orders, items int64
		require.NoError(t, s.db.Model(&models.OrderModel{}).Count(&orders).Error)
		require.NoError(t, s.db.Model(&models.CartItemModel{}).Count(&items).Error)
		assert.Equal(t, int64(1), orders)
		assert.Zero(t, items)

		kept, err := NewGormCartRepository(s.db).FindByOwner(ctx, cart.ForUser(s.buyer.ID))
		require.NoError(t, err)
		assert.Equal(t, c.ID, kept.ID)
	})

	t.Run("rolls back and returns the error untouched", func(t *testing.T) {
		s, c := prepare(t)
		scope := NewGormTransactionScope(s.db)
		boom := errors.New("boom")

		err := scope.Execute(ctx, func(repos trade.CheckoutRepos) error {
			if err := placeOrder(repos, s, c); err != nil {
				return err
			}
			return boom
		})
		assert.Equal(t, boom, err)

		var orders, orderItems, items int64
		require.NoError(t, s.db.Model(&models.OrderModel{}).Count(&orders).Error)
		require.NoError(t, s.db.Model(&models.OrderItemModel{}).Count(&orderItems).Error)
		require.NoError(t, s.db.Model(&models.CartItemModel{}).Count(&items).Error)
		assert.Zero(t, orders)
		assert.Zero(t, orderItems)
		assert.Equal(t, int64(1), items)
	})
}
