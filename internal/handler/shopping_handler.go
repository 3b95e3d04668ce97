package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zolovio/Classy-backend/internal/config"
	"github.com/zolovio/Classy-backend/internal/middleware"
	"github.com/zolovio/Classy-backend/internal/usecase"
)

// /shopping のHTTP（認証必須）
type ShoppingHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewShoppingHandler(uc *usecase.CartUsecase) *ShoppingHandler {
	return &ShoppingHandler{uc: uc}
}

type AddToCartRequest struct {
	CampaignID  int64 `json:"campaign_id"`
	SkuStockID  int64 `json:"sku_stock_id"`
	SkuImagesID int64 `json:"sku_images_id"`
	Quantity    int64 `json:"quantity"`
}

type UpdateCartRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *ShoppingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/shopping")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/cart", h.getCart)
	g.POST("/add_to_cart", h.addToCart)
	g.PUT("/update_cart/:id", h.updateCart)
	g.DELETE("/remove_from_cart/:id", h.removeFromCart)
	g.POST("/checkout", h.checkout)
}

func (h *ShoppingHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShoppingHandler) addToCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddCartInput{
		CampaignID:  req.CampaignID,
		SkuStockID:  req.SkuStockID,
		SkuImagesID: req.SkuImagesID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShoppingHandler) updateCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateCartItem(c.Request().Context(), userID, itemID, usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShoppingHandler) removeFromCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.RemoveCartItem(c.Request().Context(), userID, itemID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShoppingHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Checkout(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
