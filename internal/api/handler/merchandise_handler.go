package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// MerchandiseHandler handles HTTP requests for stock items.
type MerchandiseHandler struct {
	service ports.MerchandiseService
}

func NewMerchandiseHandler(service ports.MerchandiseService) *MerchandiseHandler {
	return &MerchandiseHandler{service: service}
}

type merchandiseRequest struct {
	Name        string  `json:"name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// searchItemResponse keeps the legacy field names the stock search widget
// consumes.
type searchItemResponse struct {
	ID         string  `json:"id"`
	Nome       string  `json:"nome"`
	Quantidade int     `json:"quantidade"`
	Descricao  string  `json:"descricao"`
	Preco      float64 `json:"preco"`
}

func toSearchItem(m *domain.Merchandise) searchItemResponse {
	return searchItemResponse{
		ID:         m.ID,
		Nome:       m.Name,
		Quantidade: m.Quantity,
		Descricao:  m.Description,
		Preco:      m.Price,
	}
}

// List handles GET /merchandise.
func (h *MerchandiseHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Merchandise{}
	}
	return c.JSON(http.StatusOK, items)
}

// Search handles GET /merchandise/search?query=.
func (h *MerchandiseHandler) Search(c echo.Context) error {
	items, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}

	out := make([]searchItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toSearchItem(m))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /merchandise.
func (h *MerchandiseHandler) Create(c echo.Context) error {
	var req merchandiseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.Create(c.Request().Context(), ctxUserID(c), ports.MerchandiseInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /merchandise/:id.
func (h *MerchandiseHandler) Update(c echo.Context) error {
	var req merchandiseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.Update(c.Request().Context(), ctxUserID(c), c.Param("id"), ports.MerchandiseInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /merchandise/:id.
func (h *MerchandiseHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
