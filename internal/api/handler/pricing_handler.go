package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-system/internal/core/service"
)

// PricingHandler exposes the procedure pricing calculator.
type PricingHandler struct{}

func NewPricingHandler() *PricingHandler {
	return &PricingHandler{}
}

type quoteRequest struct {
	MaterialCost  float64 `json:"material_cost" validate:"gte=0"`
	LaborCost     float64 `json:"labor_cost" validate:"gte=0"`
	MarginPercent float64 `json:"margin_percent" validate:"gte=0"`
	OtherCosts    float64 `json:"other_costs" validate:"gte=0"`
}

type quoteResponse struct {
	FinalPrice float64 `json:"final_price"`
}

// Quote handles POST /pricing/quote.
func (h *PricingHandler) Quote(c echo.Context) error {
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	price := service.Quote(req.MaterialCost, req.LaborCost, req.MarginPercent, req.OtherCosts)
	return c.JSON(http.StatusOK, quoteResponse{FinalPrice: price})
}
