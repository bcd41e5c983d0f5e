package service

import (
	"context"

	"distributor-service/internal/models"

	"github.com/google/uuid"
)

type Command string

const (
	CmdPlaceOrder      Command = "place_order"
	CmdConfirmOrder    Command = "confirm_order"
	CmdDispatch        Command = "dispatch"
	CmdRequestStock    Command = "request_stock"
	CmdDeliverOrder    Command = "deliver_order"
	CmdRequestPayment  Command = "request_payment"
	CmdPayManufacturer Command = "pay_manufacturer"
	CmdShipStock       Command = "ship_stock"

	CmdListMyOrders        Command = "list_my_orders"
	CmdListPlaced          Command = "list_placed_orders"
	CmdListDispatched      Command = "list_dispatched_orders"
	CmdListConfirmed       Command = "list_confirmed_orders"
	CmdListStockRequests   Command = "list_stock_requests"
	CmdListPaymentRequests Command = "list_payment_requests"
	CmdListPaidOrders      Command = "list_paid_orders"
	CmdListPayments        Command = "list_order_payments"
	CmdExportOrder         Command = "export_order"
)

// Dispatcher проверяет право роли на команду до обращения к движку.
// Таблица команда→роли статична, собирается один раз в конструкторе —
// ровно колонка Role таблицы переходов.
type Dispatcher struct {
	engine  WorkflowService
	allowed map[Command][]models.Role
}

func NewDispatcher(engine WorkflowService) *Dispatcher {
	return &Dispatcher{
		engine: engine,
		allowed: map[Command][]models.Role{
			CmdPlaceOrder:      {models.RoleShopkeeper},
			CmdConfirmOrder:    {models.RoleSalesman},
			CmdDispatch:        {models.RoleWarehouseManager},
			CmdRequestStock:    {models.RoleWarehouseManager},
			CmdDeliverOrder:    {models.RoleSalesman},
			CmdRequestPayment:  {models.RoleManufacturer},
			CmdPayManufacturer: {models.RoleWarehouseManager},
			CmdShipStock:       {models.RoleManufacturer},

			CmdListMyOrders:        {models.RoleShopkeeper},
			CmdListPlaced:          {models.RoleSalesman},
			CmdListDispatched:      {models.RoleSalesman},
			CmdListConfirmed:       {models.RoleWarehouseManager},
			CmdListStockRequests:   {models.RoleWarehouseManager, models.RoleManufacturer},
			CmdListPaymentRequests: {models.RoleWarehouseManager, models.RoleManufacturer},
			CmdListPaidOrders:      {models.RoleWarehouseManager, models.RoleManufacturer},
			CmdListPayments:        {models.RoleShopkeeper},
			CmdExportOrder:         {models.RoleShopkeeper},
		},
	}
}

// authorize возвращает ErrUnauthorized без идентификации и ErrForbidden,
// если роль не входит в разрешённый набор. До движка дело не доходит.
func (d *Dispatcher) authorize(ctx context.Context, cmd Command) error {
	role, ok := RoleFromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}
	for _, allowed := range d.allowed[cmd] {
		if role == allowed {
			return nil
		}
	}
	return ErrForbidden
}

func (d *Dispatcher) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if err := d.authorize(ctx, CmdPlaceOrder); err != nil {
		return nil, err
	}
	return d.engine.PlaceOrder(ctx, in)
}

func (d *Dispatcher) ConfirmOrder(ctx context.Context, in ConfirmOrderInput) (*models.Order, error) {
	if err := d.authorize(ctx, CmdConfirmOrder); err != nil {
		return nil, err
	}
	return d.engine.ConfirmOrder(ctx, in)
}

func (d *Dispatcher) Dispatch(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if err := d.authorize(ctx, CmdDispatch); err != nil {
		return nil, err
	}
	return d.engine.Dispatch(ctx, orderID)
}

func (d *Dispatcher) RequestStock(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if err := d.authorize(ctx, CmdRequestStock); err != nil {
		return nil, err
	}
	return d.engine.RequestStock(ctx, orderID)
}

func (d *Dispatcher) DeliverOrder(ctx context.Context, in DeliverOrderInput) (*models.Order, error) {
	if err := d.authorize(ctx, CmdDeliverOrder); err != nil {
		return nil, err
	}
	return d.engine.DeliverOrder(ctx, in)
}

func (d *Dispatcher) RequestPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if err := d.authorize(ctx, CmdRequestPayment); err != nil {
		return nil, err
	}
	return d.engine.RequestPayment(ctx, orderID)
}

func (d *Dispatcher) PayManufacturer(ctx context.Context, in PayManufacturerInput) (*models.Order, error) {
	if err := d.authorize(ctx, CmdPayManufacturer); err != nil {
		return nil, err
	}
	return d.engine.PayManufacturer(ctx, in)
}

func (d *Dispatcher) ShipStock(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if err := d.authorize(ctx, CmdShipStock); err != nil {
		return nil, err
	}
	return d.engine.ShipStock(ctx, orderID)
}

func (d *Dispatcher) ListMyOrders(ctx context.Context) ([]OrderView, error) {
	if err := d.authorize(ctx, CmdListMyOrders); err != nil {
		return nil, err
	}
	return d.engine.ListMyOrders(ctx)
}

func (d *Dispatcher) ListPlacedOrders(ctx context.Context) ([]OrderView, error) {
	if err := d.authorize(ctx, CmdListPlaced); err != nil {
		return nil, err
	}
	return d.engine.ListOrdersByStatus(ctx, models.OrderStatusPlaced)
}

func (d *Dispatcher) ListDispatchedOrders(ctx context.Context) ([]OrderView, error) {
	if err := d.authorize(ctx, CmdListDispatched); err != nil {
		return nil, err
	}
	return d.engine.ListOrdersByStatus(ctx, models.OrderStatusDispatched)
}

func (d *Dispatcher) ListConfirmedOrders(ctx context.Context) ([]OrderView, error) {
	if err := d.authorize(ctx, CmdListConfirmed); err != nil {
		return nil, err
	}
	return d.engine.ListOrdersByStatus(ctx, models.OrderStatusConfirmed)
}

func (d *Dispatcher) ListStockRequests(ctx context.Context) ([]OrderView, error) {
	if err := d.authorize(ctx, CmdListStockRequests); err != nil {
		return nil, err
	}
	return d.engine.ListOrdersByStatus(ctx, models.OrderStatusStockRequested)
}

func (d *Dispatcher) ListPaymentRequests(ctx context.Context) ([]OrderView, error) {
	if err := d.authorize(ctx, CmdListPaymentRequests); err != nil {
		return nil, err
	}
	return d.engine.ListOrdersByStatus(ctx, models.OrderStatusPaymentRequested)
}

func (d *Dispatcher) ListPaidOrders(ctx context.Context) ([]OrderView, error) {
	if err := d.authorize(ctx, CmdListPaidOrders); err != nil {
		return nil, err
	}
	return d.engine.ListOrdersByStatus(ctx, models.OrderStatusPaidToManufacturer)
}

func (d *Dispatcher) OrderPayments(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	if err := d.authorize(ctx, CmdListPayments); err != nil {
		return nil, err
	}
	return d.engine.OrderPayments(ctx, orderID)
}

func (d *Dispatcher) ExportOrder(ctx context.Context, orderID uuid.UUID) (*OrderView, error) {
	if err := d.authorize(ctx, CmdExportOrder); err != nil {
		return nil, err
	}
	return d.engine.GetOrderView(ctx, orderID)
}
