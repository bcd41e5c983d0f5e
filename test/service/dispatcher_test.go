package service_test

import (
	"context"
	"errors"
	"testing"

	"distributor-service/internal/models"
	"distributor-service/internal/service"

	"github.com/google/uuid"
)

func TestDispatcher_RoleMatrix(t *testing.T) {
	env := newTestEnv(false)
	d := service.NewDispatcher(env.engine)

	orderID := uuid.New()
	env.orders.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
		return &models.Order{ID: orderID, ProductName: "candy", Quantity: 1, Status: models.OrderStatusConfirmed}, nil
	}

	cases := []struct {
		name string
		role models.Role
		call func(ctx context.Context) error
		ok   bool
	}{
		{"shopkeeper places", models.RoleShopkeeper, func(ctx context.Context) error {
			_, err := d.PlaceOrder(ctx, service.PlaceOrderInput{ProductName: "candy", Quantity: 1})
			return err
		}, true},
		{"salesman cannot place", models.RoleSalesman, func(ctx context.Context) error {
			_, err := d.PlaceOrder(ctx, service.PlaceOrderInput{ProductName: "candy", Quantity: 1})
			return err
		}, false},
		{"warehouse dispatches", models.RoleWarehouseManager, func(ctx context.Context) error {
			_, err := d.Dispatch(ctx, orderID)
			return err
		}, true},
		{"manufacturer cannot dispatch", models.RoleManufacturer, func(ctx context.Context) error {
			_, err := d.Dispatch(ctx, orderID)
			return err
		}, false},
		{"shopkeeper cannot list placed", models.RoleShopkeeper, func(ctx context.Context) error {
			_, err := d.ListPlacedOrders(ctx)
			return err
		}, false},
		{"salesman lists placed", models.RoleSalesman, func(ctx context.Context) error {
			_, err := d.ListPlacedOrders(ctx)
			return err
		}, true},
		{"warehouse lists stock requests", models.RoleWarehouseManager, func(ctx context.Context) error {
			_, err := d.ListStockRequests(ctx)
			return err
		}, true},
		{"manufacturer lists stock requests", models.RoleManufacturer, func(ctx context.Context) error {
			_, err := d.ListStockRequests(ctx)
			return err
		}, true},
		{"salesman cannot list stock requests", models.RoleSalesman, func(ctx context.Context) error {
			_, err := d.ListStockRequests(ctx)
			return err
		}, false},
		{"manufacturer ships stock", models.RoleManufacturer, func(ctx context.Context) error {
			_, err := d.ShipStock(ctx, orderID)
			return err
		}, true},
		{"shopkeeper cannot pay manufacturer", models.RoleShopkeeper, func(ctx context.Context) error {
			_, err := d.PayManufacturer(ctx, service.PayManufacturerInput{OrderID: orderID})
			return err
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := authCtx(tc.role)
			err := tc.call(ctx)
			if tc.ok {
				if errors.Is(err, service.ErrForbidden) {
					t.Fatalf("role %s must be allowed, got forbidden", tc.role)
				}
			} else {
				if !errors.Is(err, service.ErrForbidden) {
					t.Fatalf("role %s must be forbidden, got %v", tc.role, err)
				}
			}
		})
	}
}

func TestDispatcher_ForbiddenBeforeEngine(t *testing.T) {
	env := newTestEnv(false)
	d := service.NewDispatcher(env.engine)

	engineTouched := false
	env.orders.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
		engineTouched = true
		return nil, nil
	}

	ctx, _ := authCtx(models.RoleShopkeeper)
	_, err := d.Dispatch(ctx, uuid.New())
	if !errors.Is(err, service.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if engineTouched {
		t.Errorf("forbidden command must not reach the engine")
	}
}

func TestDispatcher_Unauthenticated(t *testing.T) {
	env := newTestEnv(false)
	d := service.NewDispatcher(env.engine)

	_, err := d.ListMyOrders(context.Background())
	if !errors.Is(err, service.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
