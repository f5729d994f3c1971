package main

import (
	"fmt"

	"github.com/prakashthakuri/Happy-Hours/internal/cart"
	"github.com/prakashthakuri/Happy-Hours/internal/catalog"
	"github.com/prakashthakuri/Happy-Hours/internal/checkout"
	"github.com/prakashthakuri/Happy-Hours/internal/orders"
	"github.com/prakashthakuri/Happy-Hours/pkg/db"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
	"github.com/prakashthakuri/Happy-Hours/pkg/outbox"
)

type serviceDeps struct {
	DB      *db.Client
	Locker  cart.UserLocker
	Charger orders.Charger
	Logger  *logger.Logger
}

type services struct {
	catalog  catalog.Service
	cart     cart.Service
	checkout checkout.Service
	orders   orders.Service
}

func newServices(deps serviceDeps) (*services, error) {
	catalogService, err := catalog.NewService(catalog.NewRepository(deps.DB.DB()))
	if err != nil {
		return nil, fmt.Errorf("catalog service: %w", err)
	}

	cartService, err := cart.NewService(cart.NewRepository(deps.DB.DB()), deps.DB, catalogService, deps.Locker, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("cart service: %w", err)
	}

	checkoutService, err := checkout.NewService(checkout.NewRepository(deps.DB.DB()), deps.DB, deps.Locker, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("checkout service: %w", err)
	}

	ordersService, err := orders.NewService(orders.Deps{
		Repo:    orders.NewRepository(deps.DB.DB()),
		Tx:      deps.DB,
		Outbox:  outbox.NewService(outbox.NewRepository(deps.DB.DB()), deps.Logger),
		Carts:   cartService,
		Charger: deps.Charger,
		Locker:  deps.Locker,
		Logger:  deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("orders service: %w", err)
	}

	return &services{
		catalog:  catalogService,
		cart:     cartService,
		checkout: checkoutService,
		orders:   ordersService,
	}, nil
}
