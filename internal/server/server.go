package server

import (
	"github.com/labstack/echo/v4"

	"github.com/zolovio/Classy-backend/internal/config"
	"github.com/zolovio/Classy-backend/internal/handler"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Sku      *handler.SkuHandler
	Campaign *handler.CampaignHandler
	Shopping *handler.ShoppingHandler
	Order    *handler.OrderHandler
	Prize    *handler.PrizeHandler
}

// New は全ルートを登録したechoを返す。起動は呼び出し側で。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	h.Auth.RegisterRoutes(e)
	h.User.RegisterRoutes(e, cfg)
	h.Sku.RegisterRoutes(e, cfg)
	h.Campaign.RegisterRoutes(e, cfg)
	h.Shopping.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Prize.RegisterRoutes(e, cfg)

	return e
}
