package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zolovio/Classy-backend/internal/config"
	"github.com/zolovio/Classy-backend/internal/middleware"
	"github.com/zolovio/Classy-backend/internal/usecase"
)

// /prize のHTTP（景品と抽選の公開面）
type PrizeHandler struct {
	prizeUC *usecase.PrizeUsecase
	drawUC  *usecase.DrawUsecase
}

// DI
func NewPrizeHandler(prizeUC *usecase.PrizeUsecase, drawUC *usecase.DrawUsecase) *PrizeHandler {
	return &PrizeHandler{prizeUC: prizeUC, drawUC: drawUC}
}

type RedeemCouponRequest struct {
	Code string `json:"code"`
}

func (h *PrizeHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// 抽選結果は公開
	e.GET("/prize/list", h.list)
	e.GET("/prize/get/:id", h.get)
	e.GET("/prize/upcoming-draws", h.upcomingDraws)
	e.GET("/prize/past-draws", h.pastDraws)
	e.GET("/prize/winners", h.winners)

	g := e.Group("/prize")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/register", h.register)
	g.PATCH("/update/:id", h.update)
	g.DELETE("/delete/:id", h.delete)
	g.POST("/redeem-coupon", h.redeemCoupon)

	// 期限切れ抽選の当選確定。ワーカーと同じ処理を手動で叩ける。
	admin := g.Group("", middleware.AdminRoleGuard())
	admin.POST("/resolve-draws", h.resolveDraws)
}

func (h *PrizeHandler) list(c echo.Context) error {
	out, err := h.prizeUC.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PrizeHandler) get(c echo.Context) error {
	prizeID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.prizeUC.Get(c.Request().Context(), prizeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PrizeHandler) upcomingDraws(c echo.Context) error {
	out, err := h.drawUC.UpcomingDraws(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PrizeHandler) pastDraws(c echo.Context) error {
	out, err := h.drawUC.PastDraws(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PrizeHandler) winners(c echo.Context) error {
	out, err := h.drawUC.Winners(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PrizeHandler) register(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.RegisterPrizeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.prizeUC.Register(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PrizeHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	prizeID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.UpdatePrizeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.prizeUC.Update(c.Request().Context(), userID, prizeID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PrizeHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	prizeID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.prizeUC.Delete(c.Request().Context(), userID, getIsAdminFromContext(c), prizeID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PrizeHandler) redeemCoupon(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RedeemCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.drawUC.RedeemCoupon(c.Request().Context(), userID, req.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PrizeHandler) resolveDraws(c echo.Context) error {
	if err := h.drawUC.ResolveDraws(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "draws resolved"})
}
