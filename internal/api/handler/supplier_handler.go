package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

// SupplierHandler handles HTTP requests for suppliers, their invoices, and
// invoice line items.
type SupplierHandler struct {
	service ports.SupplierService
}

func NewSupplierHandler(service ports.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

type supplierRequest struct {
	TaxID   string `json:"tax_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type invoiceRequest struct {
	Number       string `json:"number" validate:"required"`
	IssueDate    string `json:"issue_date" validate:"required"`
	DeliveryDate string `json:"delivery_date" validate:"required"`
}

type invoiceItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Group       string  `json:"group"`
}

type invoiceDetailResponse struct {
	Invoice *domain.Invoice       `json:"invoice"`
	Items   []*domain.InvoiceItem `json:"items"`
}

const invoiceDateLayout = "2006-01-02"

func (r invoiceRequest) toInput() (ports.InvoiceInput, error) {
	issue, err := time.Parse(invoiceDateLayout, r.IssueDate)
	if err != nil {
		return ports.InvoiceInput{}, echo.NewHTTPError(http.StatusBadRequest, "issue_date must be YYYY-MM-DD")
	}
	delivery, err := time.Parse(invoiceDateLayout, r.DeliveryDate)
	if err != nil {
		return ports.InvoiceInput{}, echo.NewHTTPError(http.StatusBadRequest, "delivery_date must be YYYY-MM-DD")
	}
	return ports.InvoiceInput{Number: r.Number, IssueDate: issue, DeliveryDate: delivery}, nil
}

// List handles GET /suppliers.
func (h *SupplierHandler) List(c echo.Context) error {
	suppliers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if suppliers == nil {
		suppliers = []*domain.Supplier{}
	}
	return c.JSON(http.StatusOK, suppliers)
}

// Create handles POST /suppliers.
func (h *SupplierHandler) Create(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	supplier, err := h.service.Create(c.Request().Context(), ctxUserID(c), ports.SupplierInput{
		TaxID:   req.TaxID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, supplier)
}

// Update handles PUT /suppliers/:id.
func (h *SupplierHandler) Update(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	supplier, err := h.service.Update(c.Request().Context(), ctxUserID(c), c.Param("id"), ports.SupplierInput{
		TaxID:   req.TaxID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

// Delete handles DELETE /suppliers/:id. Deletion is refused while invoices
// still reference the supplier.
func (h *SupplierHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListInvoices handles GET /suppliers/:id/invoices.
func (h *SupplierHandler) ListInvoices(c echo.Context) error {
	invoices, err := h.service.ListInvoices(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if invoices == nil {
		invoices = []*domain.Invoice{}
	}
	return c.JSON(http.StatusOK, invoices)
}

// CreateInvoice handles POST /suppliers/:id/invoices.
func (h *SupplierHandler) CreateInvoice(c echo.Context) error {
	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	invoice, err := h.service.CreateInvoice(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, invoice)
}

// GetInvoice handles GET /invoices/:id with its line items.
func (h *SupplierHandler) GetInvoice(c echo.Context) error {
	invoice, items, err := h.service.GetInvoice(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.InvoiceItem{}
	}
	return c.JSON(http.StatusOK, invoiceDetailResponse{Invoice: invoice, Items: items})
}

// UpdateInvoice handles PUT /invoices/:id.
func (h *SupplierHandler) UpdateInvoice(c echo.Context) error {
	var req invoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	invoice, err := h.service.UpdateInvoice(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice handles DELETE /invoices/:id.
func (h *SupplierHandler) DeleteInvoice(c echo.Context) error {
	if err := h.service.DeleteInvoice(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddInvoiceItem handles POST /invoices/:id/items.
func (h *SupplierHandler) AddInvoiceItem(c echo.Context) error {
	var req invoiceItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.AddInvoiceItem(c.Request().Context(), c.Param("id"), ports.InvoiceItemInput{
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Group:       req.Group,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateInvoiceItem handles PUT /invoice-items/:id.
func (h *SupplierHandler) UpdateInvoiceItem(c echo.Context) error {
	var req invoiceItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.UpdateInvoiceItem(c.Request().Context(), c.Param("id"), ports.InvoiceItemInput{
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Group:       req.Group,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteInvoiceItem handles DELETE /invoice-items/:id.
func (h *SupplierHandler) DeleteInvoiceItem(c echo.Context) error {
	if err := h.service.DeleteInvoiceItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
