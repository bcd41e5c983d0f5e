package service

import (
	"context"
	"time"

	"distributor-service/internal/catalog"
	"distributor-service/internal/models"
	"distributor-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// workflowService — машина состояний заказа. Каждый переход проверяет
// предусловия до каких-либо мутаций и применяет статус, склад и платёж
// одной транзакцией: либо всё, либо ничего.
type workflowService struct {
	repo    *repository.Repository
	catalog *catalog.Catalog
	events  EventBus

	// collectOnConfirm: собирать остаток при подтверждении заказа.
	// false — остаток собирается при доставке.
	collectOnConfirm bool

	now func() time.Time
	log *zap.Logger
}

func NewWorkflowService(repo *repository.Repository, cat *catalog.Catalog, events EventBus, collectOnConfirm bool, log *zap.Logger) WorkflowService {
	return &workflowService{
		repo:             repo,
		catalog:          cat,
		events:           events,
		collectOnConfirm: collectOnConfirm,
		now:              time.Now,
		log:              log,
	}
}

func requireAuth(ctx context.Context) (uuid.UUID, models.Role, error) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, "", ErrUnauthorized
	}
	role, ok := RoleFromContext(ctx)
	if !ok {
		return uuid.Nil, "", ErrUnauthorized
	}
	return uid, role, nil
}

// advanceLimitCents — потолок аванса: 60% от вычисленной сервером суммы.
func advanceLimitCents(totalCents int64) int64 {
	return totalCents * 60 / 100
}

func (s *workflowService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if in.Quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	if in.AdvanceCents < 0 {
		return nil, ErrAmountNegative
	}

	// Сервер — единственный источник цен: total считается из каталога,
	// клиентская сумма не принимается.
	unitPrice, ok := s.catalog.RetailPrice(in.ProductName)
	if !ok {
		return nil, ErrUnknownProduct
	}

	total := int64(in.Quantity) * unitPrice
	if limit := advanceLimitCents(total); in.AdvanceCents > limit {
		return nil, &AdvanceLimitError{LimitCents: limit, GivenCents: in.AdvanceCents}
	}

	now := s.now()
	order := &models.Order{
		UserID:           userID,
		ProductName:      in.ProductName,
		Quantity:         in.Quantity,
		TotalAmountCents: total,
		AdvanceCents:     in.AdvanceCents,
		RemainingCents:   total - in.AdvanceCents,
		Status:           models.OrderStatusPlaced,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.repo.Orders.WithTx(ctx, func(orders repository.OrderRepo, payments repository.PaymentRepo, _ repository.StockRepo) error {
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		if in.AdvanceCents > 0 {
			return payments.Append(ctx, &models.Payment{
				OrderID:     order.ID,
				AmountCents: in.AdvanceCents,
				PaymentType: models.PaymentTypeAdvance,
				CreatedAt:   now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
			OrderID:          order.ID,
			UserID:           order.UserID,
			ProductName:      order.ProductName,
			Quantity:         order.Quantity,
			TotalAmountCents: order.TotalAmountCents,
			AdvanceCents:     order.AdvanceCents,
			CreatedAt:        order.CreatedAt,
		})
	}

	return order, nil
}

func (s *workflowService) ConfirmOrder(ctx context.Context, in ConfirmOrderInput) (*models.Order, error) {
	if _, _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status != models.OrderStatusPlaced {
		return nil, &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdConfirmOrder}
	}

	// Требуем точную сумму: либо весь остаток (режим сбора на confirm),
	// либо ноль. Частичные платежи не принимаются и не применяются.
	var expected int64
	if s.collectOnConfirm {
		expected = ord.RemainingCents
	}
	if in.CollectedCents != expected {
		return nil, &AmountMismatchError{ExpectedCents: expected, GivenCents: in.CollectedCents}
	}

	err = s.repo.Orders.WithTx(ctx, func(orders repository.OrderRepo, payments repository.PaymentRepo, _ repository.StockRepo) error {
		ok, err := orders.UpdateStatusFrom(ctx, ord.ID, models.OrderStatusPlaced, models.OrderStatusConfirmed)
		if err != nil {
			return err
		}
		if !ok {
			return &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdConfirmOrder}
		}
		if expected > 0 {
			if err := payments.Append(ctx, &models.Payment{
				OrderID:     ord.ID,
				AmountCents: expected,
				PaymentType: models.PaymentTypeRemaining,
				CreatedAt:   s.now(),
			}); err != nil {
				return err
			}
			return orders.ZeroRemaining(ctx, ord.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reloadAndPublish(ctx, ord, models.OrderStatusPlaced)
}

func (s *workflowService) Dispatch(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if _, _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status != models.OrderStatusConfirmed {
		return nil, &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdDispatch}
	}

	err = s.repo.Orders.WithTx(ctx, func(orders repository.OrderRepo, _ repository.PaymentRepo, stock repository.StockRepo) error {
		ok, err := orders.UpdateStatusFrom(ctx, ord.ID, models.OrderStatusConfirmed, models.OrderStatusDispatched)
		if err != nil {
			return err
		}
		if !ok {
			return &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdDispatch}
		}
		// Условное списание: проверка достаточности и декремент — один
		// UPDATE, параллельные dispatch по одному товару не передерут
		// остаток. Откат транзакции вернёт и статус.
		decremented, err := stock.TryDecrement(ctx, ord.ProductName, ord.Quantity)
		if err != nil {
			return err
		}
		if !decremented {
			have, qerr := stock.Quantity(ctx, ord.ProductName)
			if qerr != nil {
				return qerr
			}
			return &InsufficientStockError{Product: ord.ProductName, Have: have, Need: ord.Quantity}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reloadAndPublish(ctx, ord, models.OrderStatusConfirmed)
}

func (s *workflowService) RequestStock(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.simpleTransition(ctx, orderID, models.OrderStatusConfirmed, models.OrderStatusStockRequested, CmdRequestStock)
}

func (s *workflowService) DeliverOrder(ctx context.Context, in DeliverOrderInput) (*models.Order, error) {
	if _, _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status != models.OrderStatusDispatched {
		return nil, &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdDeliverOrder}
	}

	// Финальный расчёт принимает только точную сумму остатка.
	if in.CollectedCents != ord.RemainingCents {
		return nil, &AmountMismatchError{ExpectedCents: ord.RemainingCents, GivenCents: in.CollectedCents}
	}

	err = s.repo.Orders.WithTx(ctx, func(orders repository.OrderRepo, payments repository.PaymentRepo, _ repository.StockRepo) error {
		ok, err := orders.UpdateStatusFrom(ctx, ord.ID, models.OrderStatusDispatched, models.OrderStatusDelivered)
		if err != nil {
			return err
		}
		if !ok {
			return &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdDeliverOrder}
		}
		if ord.RemainingCents > 0 {
			if err := payments.Append(ctx, &models.Payment{
				OrderID:     ord.ID,
				AmountCents: ord.RemainingCents,
				PaymentType: models.PaymentTypeRemaining,
				CreatedAt:   s.now(),
			}); err != nil {
				return err
			}
			return orders.ZeroRemaining(ctx, ord.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reloadAndPublish(ctx, ord, models.OrderStatusDispatched)
}

func (s *workflowService) RequestPayment(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.simpleTransition(ctx, orderID, models.OrderStatusStockRequested, models.OrderStatusPaymentRequested, CmdRequestPayment)
}

func (s *workflowService) PayManufacturer(ctx context.Context, in PayManufacturerInput) (*models.Order, error) {
	if _, _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status != models.OrderStatusPaymentRequested {
		return nil, &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdPayManufacturer}
	}

	// Производителю платят по оптовому прейскуранту, не по розничному.
	wholesale, ok := s.catalog.WholesalePrice(ord.ProductName)
	if !ok {
		return nil, ErrUnknownProduct
	}
	due := int64(ord.Quantity) * wholesale
	if in.PaidCents != due {
		return nil, &AmountMismatchError{ExpectedCents: due, GivenCents: in.PaidCents}
	}

	err = s.repo.Orders.WithTx(ctx, func(orders repository.OrderRepo, payments repository.PaymentRepo, _ repository.StockRepo) error {
		ok, err := orders.UpdateStatusFrom(ctx, ord.ID, models.OrderStatusPaymentRequested, models.OrderStatusPaidToManufacturer)
		if err != nil {
			return err
		}
		if !ok {
			return &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdPayManufacturer}
		}
		return payments.Append(ctx, &models.Payment{
			OrderID:     ord.ID,
			AmountCents: due,
			PaymentType: models.PaymentTypeStockSupply,
			CreatedAt:   s.now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.reloadAndPublish(ctx, ord, models.OrderStatusPaymentRequested)
}

func (s *workflowService) ShipStock(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if _, _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status != models.OrderStatusPaidToManufacturer {
		return nil, &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdShipStock}
	}

	err = s.repo.Orders.WithTx(ctx, func(orders repository.OrderRepo, _ repository.PaymentRepo, stock repository.StockRepo) error {
		ok, err := orders.UpdateStatusFrom(ctx, ord.ID, models.OrderStatusPaidToManufacturer, models.OrderStatusConfirmed)
		if err != nil {
			return err
		}
		if !ok {
			return &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: CmdShipStock}
		}
		// Оприходование создаёт строку товара с нулевой базой, если её нет.
		return stock.Increment(ctx, ord.ProductName, ord.Quantity)
	})
	if err != nil {
		return nil, err
	}

	// Заказ вернулся в confirmed: финальную отгрузку делает склад.
	return s.reloadAndPublish(ctx, ord, models.OrderStatusPaidToManufacturer)
}

// simpleTransition — переход без денежных и складских эффектов.
func (s *workflowService) simpleTransition(ctx context.Context, orderID uuid.UUID, from, to models.OrderStatus, cmd Command) (*models.Order, error) {
	if _, _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if ord.Status != from {
		return nil, &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: cmd}
	}

	ok, err := s.repo.Orders.UpdateStatusFrom(ctx, ord.ID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &InvalidStateError{OrderID: ord.ID, Status: ord.Status, Command: cmd}
	}

	return s.reloadAndPublish(ctx, ord, from)
}

func (s *workflowService) reloadAndPublish(ctx context.Context, ord *models.Order, from models.OrderStatus) (*models.Order, error) {
	updated, err := s.repo.Orders.GetByID(ctx, ord.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}

	if s.events != nil && updated.Status != from {
		if err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
			OrderID:     updated.ID,
			UserID:      updated.UserID,
			ProductName: updated.ProductName,
			Quantity:    updated.Quantity,
			From:        from,
			To:          updated.Status,
			ChangedAt:   s.now(),
		}); err != nil {
			s.log.Warn("failed to publish order event",
				zap.String("order_id", updated.ID.String()),
				zap.Error(err))
		}
	}

	return updated, nil
}

func (s *workflowService) ListMyOrders(ctx context.Context) ([]OrderView, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.Orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, orders)
}

func (s *workflowService) ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]OrderView, error) {
	if _, _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	orders, err := s.repo.Orders.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, orders)
}

func (s *workflowService) OrderPayments(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return s.repo.Payments.ListByOrder(ctx, orderID)
}

func (s *workflowService) GetOrderView(ctx context.Context, orderID uuid.UUID) (*OrderView, error) {
	userID, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	view, err := s.buildViews(ctx, []models.Order{*ord})
	if err != nil {
		return nil, err
	}
	return &view[0], nil
}

// buildViews дочитывает username и платежи для каждого заказа явными
// вызовами репозиториев.
func (s *workflowService) buildViews(ctx context.Context, orders []models.Order) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	usernames := make(map[uuid.UUID]string, len(orders))

	for i := range orders {
		ord := orders[i]

		username, ok := usernames[ord.UserID]
		if !ok {
			u, err := s.repo.Users.GetByID(ctx, ord.UserID)
			if err != nil {
				return nil, err
			}
			if u != nil {
				username = u.Username
			}
			usernames[ord.UserID] = username
		}

		pays, err := s.repo.Payments.ListByOrder(ctx, ord.ID)
		if err != nil {
			return nil, err
		}

		views = append(views, OrderView{
			Order:     ord,
			Username:  username,
			Payments:  pays,
			FullyPaid: ord.RemainingCents == 0,
		})
	}
	return views, nil
}
