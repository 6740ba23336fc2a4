package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	createCourierHandler   commands.CreateCourierCommandHandler
	assignCourierHandler   commands.AssignCourierCommandHandler
	acceptOfferHandler     commands.AcceptOfferCommandHandler
	rejectOfferHandler     commands.RejectOfferCommandHandler
	expireOfferHandler     commands.ExpireOfferCommandHandler
	reportMilestoneHandler commands.ReportMilestoneCommandHandler
	requeueOrderHandler    commands.RequeueOrderCommandHandler

	// Query handlers
	getOrderStatusHandler        queries.GetOrderStatusQueryHandler
	getUnassignableOrdersHandler queries.GetUnassignableOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	acceptOfferHandler commands.AcceptOfferCommandHandler,
	rejectOfferHandler commands.RejectOfferCommandHandler,
	expireOfferHandler commands.ExpireOfferCommandHandler,
	reportMilestoneHandler commands.ReportMilestoneCommandHandler,
	requeueOrderHandler commands.RequeueOrderCommandHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
	getUnassignableOrdersHandler queries.GetUnassignableOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		createCourierHandler:         createCourierHandler,
		assignCourierHandler:         assignCourierHandler,
		acceptOfferHandler:           acceptOfferHandler,
		rejectOfferHandler:           rejectOfferHandler,
		expireOfferHandler:           expireOfferHandler,
		reportMilestoneHandler:       reportMilestoneHandler,
		requeueOrderHandler:          requeueOrderHandler,
		getOrderStatusHandler:        getOrderStatusHandler,
		getUnassignableOrdersHandler: getUnassignableOrdersHandler,
	}
}

// RegisterRoutes attaches all fulfillment endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.GET("/api/v1/orders/unassignable", s.GetUnassignableOrders)
	e.GET("/api/v1/orders/:id/status", s.GetOrderStatus)
	e.POST("/api/v1/orders/:id/assign-courier", s.AssignCourier)
	e.POST("/api/v1/orders/:id/requeue", s.RequeueOrder)
	e.POST("/api/v1/couriers", s.CreateCourier)
	e.PUT("/api/v1/couriers/orders/:id/status", s.UpdateCourierOrderStatus)
	e.POST("/api/v1/couriers/orders/:id/timeout", s.TimeoutOffer)
	e.PUT("/api/v1/vendors/orders/:id/status", s.UpdateVendorOrderStatus)
}

type newOrderRequest struct {
	OrderID     string `json:"order_id"`
	VendorID    string `json:"vendor_id"`
	ServiceArea string `json:"service_area"`
}

type orderCreatedResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder handles POST /api/v1/orders - registers a paid order for fulfillment.
// The order ID may be supplied by the caller; one is generated otherwise.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body newOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	if body.OrderID != "" {
		parsed, err := kernel.UUIDFromString(body.OrderID)
		if err != nil {
			return badRequest(ctx, "Invalid order_id: "+err.Error())
		}
		orderID = parsed
	}

	vendorID, err := kernel.UUIDFromString(body.VendorID)
	if err != nil {
		return badRequest(ctx, "Invalid vendor_id: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, vendorID, body.ServiceArea)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderCreatedResponse{OrderID: orderID.String()})
}

type newCourierRequest struct {
	Name         string   `json:"name"`
	Rank         int      `json:"rank"`
	ServiceAreas []string `json:"service_areas"`
}

type courierCreatedResponse struct {
	CourierID string `json:"courier_id"`
}

// CreateCourier handles POST /api/v1/couriers - registers a new courier.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body newCourierRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name, body.Rank, body.ServiceAreas)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, courierCreatedResponse{CourierID: cmd.CourierID().String()})
}

type assignCourierRequest struct {
	CourierID string `json:"courier_id"`
}

// AssignCourier handles POST /api/v1/orders/:id/assign-courier - dispatcher
// override that offers the order to a chosen courier ahead of the scheduler.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body assignCourierRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier_id: "+err.Error())
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequeueOrder handles POST /api/v1/orders/:id/requeue - returns an
// unassignable order to the offer loop with a clean exclusion slate.
func (s *Server) RequeueOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewRequeueOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid requeue data: "+err.Error())
	}

	if err := s.requeueOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type courierStatusRequest struct {
	CourierID string `json:"courier_id"`
	Status    string `json:"status"`
}

// UpdateCourierOrderStatus handles PUT /api/v1/couriers/orders/:id/status.
// Status "accept" and "reject" answer the pending offer; any delivery
// milestone name records courier progress on an assigned order.
func (s *Server) UpdateCourierOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body courierStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier_id: "+err.Error())
	}

	switch body.Status {
	case "accept":
		cmd, err := commands.NewAcceptOfferCommand(orderID, courierID)
		if err != nil {
			return badRequest(ctx, "Invalid offer response: "+err.Error())
		}
		if err := s.acceptOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return domainError(ctx, err)
		}
		return ctx.NoContent(http.StatusNoContent)
	case "reject":
		cmd, err := commands.NewRejectOfferCommand(orderID, courierID)
		if err != nil {
			return badRequest(ctx, "Invalid offer response: "+err.Error())
		}
		if err := s.rejectOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return domainError(ctx, err)
		}
		return ctx.NoContent(http.StatusNoContent)
	default:
		return s.reportMilestone(ctx, orderID, body.Status, order.ActorCourier, "")
	}
}

type vendorStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
}

// UpdateVendorOrderStatus handles PUT /api/v1/vendors/orders/:id/status.
// Vendors report preparation progress: ready_for_pickup and dispatched,
// the latter optionally carrying a tracking number.
func (s *Server) UpdateVendorOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body vendorStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.reportMilestone(ctx, orderID, body.Status, order.ActorVendor, body.TrackingNumber)
}

// TimeoutOffer handles POST /api/v1/couriers/orders/:id/timeout - settles the
// order's pending offer as expired once its acceptance window has elapsed.
func (s *Server) TimeoutOffer(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewExpireOfferCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid timeout data: "+err.Error())
	}

	if err := s.expireOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type statusEventResponse struct {
	OrderID    string    `json:"order_id"`
	Milestone  string    `json:"milestone"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (s *Server) reportMilestone(
	ctx echo.Context,
	orderID kernel.UUID,
	status string,
	actor order.Actor,
	trackingNumber string,
) error {
	milestone, err := order.MilestoneFromString(status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+status)
	}

	cmd, err := commands.NewReportMilestoneCommand(orderID, milestone, actor, trackingNumber)
	if err != nil {
		return badRequest(ctx, "Invalid status report: "+err.Error())
	}

	event, err := s.reportMilestoneHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, statusEventResponse{
		OrderID:    event.OrderID().String(),
		Milestone:  event.Milestone().String(),
		Actor:      event.Actor().String(),
		OccurredAt: event.OccurredAt(),
	})
}

type statusHistoryEntry struct {
	Milestone  string    `json:"milestone"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}

type orderStatusResponse struct {
	OrderID                 string               `json:"order_id"`
	Milestone               string               `json:"milestone"`
	CourierID               *string              `json:"courier_id,omitempty"`
	TrackingNumber          *string              `json:"tracking_number,omitempty"`
	AwaitingCourierResponse bool                 `json:"awaiting_courier_response"`
	Unassignable            bool                 `json:"unassignable"`
	History                 []statusHistoryEntry `json:"history"`
}

// GetOrderStatus handles GET /api/v1/orders/:id/status - returns the order's
// current milestone and its status history.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid status query: "+err.Error())
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := orderStatusResponse{
		OrderID:                 status.OrderID.String(),
		Milestone:               status.Milestone,
		TrackingNumber:          status.TrackingNumber,
		AwaitingCourierResponse: status.AwaitingCourierResponse,
		Unassignable:            status.Unassignable,
		History:                 make([]statusHistoryEntry, len(status.History)),
	}
	if status.CourierID != nil {
		courierID := status.CourierID.String()
		response.CourierID = &courierID
	}
	for i, entry := range status.History {
		response.History[i] = statusHistoryEntry{
			Milestone:  entry.Milestone,
			Actor:      entry.Actor,
			OccurredAt: entry.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type unassignableOrderResponse struct {
	OrderID      string    `json:"order_id"`
	ServiceArea  string    `json:"service_area"`
	CreatedAt    time.Time `json:"created_at"`
	AttemptCount int       `json:"attempt_count"`
}

// GetUnassignableOrders handles GET /api/v1/orders/unassignable - lists
// orders parked for dispatcher review, oldest first.
func (s *Server) GetUnassignableOrders(ctx echo.Context) error {
	query := queries.NewGetUnassignableOrdersQuery()

	parked, err := s.getUnassignableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve unassignable orders",
		})
	}

	response := make([]unassignableOrderResponse, len(parked))
	for i, row := range parked {
		response[i] = unassignableOrderResponse{
			OrderID:      row.OrderID.String(),
			ServiceArea:  row.ServiceArea,
			CreatedAt:    row.CreatedAt,
			AttemptCount: row.AttemptCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps use case failures onto HTTP statuses: unknown objects
// are 404, settled or out-of-order state changes are 409, bad input is
// 400 and everything else is a 500.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, assignment.ErrAlreadySettled),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrDuplicateTransition),
		errors.Is(err, commands.ErrOfferCourierMismatch),
		errors.Is(err, commands.ErrOfferWindowElapsed),
		errors.Is(err, commands.ErrOfferWindowStillOpen),
		errors.Is(err, commands.ErrOrderNotAwaitingAssignment),
		errors.Is(err, commands.ErrCourierNotEligible),
		errors.Is(err, commands.ErrActorNotPermitted):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
