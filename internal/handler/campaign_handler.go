package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zolovio/Classy-backend/internal/config"
	"github.com/zolovio/Classy-backend/internal/middleware"
	"github.com/zolovio/Classy-backend/internal/usecase"
)

// /campaign のHTTP
type CampaignHandler struct {
	uc *usecase.CampaignUsecase
}

// DI
func NewCampaignHandler(uc *usecase.CampaignUsecase) *CampaignHandler {
	return &CampaignHandler{uc: uc}
}

type RegisterCampaignRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Threshold   int        `json:"threshold"`
	SkuID       int64      `json:"sku_id"`
	PrizeID     int64      `json:"prize_id"`
	VideoURL    string     `json:"video_url"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateCampaignRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Image       *string    `json:"image"`
	Threshold   *int       `json:"threshold"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func (h *CampaignHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// 一覧・詳細・クロージングは公開
	e.GET("/campaign/list", h.list)
	e.GET("/campaign/closing", h.closing)
	e.GET("/campaign/get/:id", h.get)

	g := e.Group("/campaign")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/get", h.listMine)
	g.GET("/status/:id", h.status)
	g.POST("/register", h.register)
	g.PATCH("/update/:id", h.update)
	g.DELETE("/delete/:id", h.delete)

	// 全キャンペーンの再計算。ワーカーと同じ処理を手動で叩ける。
	admin := g.Group("", middleware.AdminRoleGuard())
	admin.POST("/refresh", h.refresh)
}

func (h *CampaignHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CampaignHandler) closing(c echo.Context) error {
	out, err := h.uc.Closing(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CampaignHandler) get(c echo.Context) error {
	campaignID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), campaignID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CampaignHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CampaignHandler) status(c echo.Context) error {
	campaignID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Status(c.Request().Context(), campaignID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CampaignHandler) register(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RegisterCampaignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), userID, usecase.RegisterCampaignInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Threshold:   req.Threshold,
		SkuID:       req.SkuID,
		PrizeID:     req.PrizeID,
		VideoURL:    req.VideoURL,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CampaignHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	campaignID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), userID, campaignID, usecase.UpdateCampaignInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Threshold:   req.Threshold,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CampaignHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	campaignID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), userID, getIsAdminFromContext(c), campaignID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CampaignHandler) refresh(c echo.Context) error {
	if err := h.uc.RefreshCampaigns(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "campaigns refreshed"})
}
