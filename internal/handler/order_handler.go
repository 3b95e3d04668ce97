package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zolovio/Classy-backend/internal/config"
	"github.com/zolovio/Classy-backend/internal/middleware"
	"github.com/zolovio/Classy-backend/internal/usecase"
)

// /order のHTTP（認証必須）
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type CreateOrderRequest struct {
	LocationID  int64 `json:"location_id"`
	ShippingFee int64 `json:"shipping_fee"`
}

type UpdateOrderLineRequest struct {
	LineID   int64 `json:"line_id"`
	Quantity int64 `json:"quantity"`
}

type UpdateOrderRequest struct {
	LocationID  *int64                   `json:"location_id"`
	ShippingFee *int64                   `json:"shipping_fee"`
	Lines       []UpdateOrderLineRequest `json:"lines"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/order")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/create", h.create)
	g.GET("/get", h.listMine)
	g.GET("/get/:id", h.get)
	g.GET("/coupons", h.myCoupons)
	g.PATCH("/update/:id", h.update)
	g.PUT("/status/:id", h.updateStatus)
	g.DELETE("/delete/:id", h.delete)

	admin := g.Group("", middleware.AdminRoleGuard())
	admin.GET("/list", h.listAll)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 冪等キーはヘッダ優先。無ければ新規採番（再送保護なしの1回限り扱い）。
	key := c.Request().Header.Get("Idempotency-Key")
	if key == "" {
		key = uuid.NewString()
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		LocationID:     req.LocationID,
		ShippingFee:    req.ShippingFee,
		IdempotencyKey: key,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listAll(c echo.Context) error {
	out, err := h.uc.ListAllOrders(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) get(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), userID, getIsAdminFromContext(c), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) myCoupons(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.MyCoupons(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	lines := make([]usecase.UpdateOrderLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, usecase.UpdateOrderLineInput{LineID: l.LineID, Quantity: l.Quantity})
	}

	out, err := h.uc.UpdateOrder(c.Request().Context(), userID, getIsAdminFromContext(c), orderID, usecase.UpdateOrderInput{
		LocationID:  req.LocationID,
		ShippingFee: req.ShippingFee,
		Lines:       lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.TransitionStatus(c.Request().Context(), userID, getIsAdminFromContext(c), orderID, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), userID, getIsAdminFromContext(c), orderID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
