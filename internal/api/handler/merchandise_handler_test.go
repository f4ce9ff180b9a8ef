package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

type stubMerchandiseService struct {
	searchFn func(ctx context.Context, query string) ([]*domain.Merchandise, error)
}

func (s *stubMerchandiseService) List(ctx context.Context) ([]*domain.Merchandise, error) {
	return nil, nil
}

func (s *stubMerchandiseService) Search(ctx context.Context, query string) ([]*domain.Merchandise, error) {
	return s.searchFn(ctx, query)
}

func (s *stubMerchandiseService) Create(ctx context.Context, userID string, input ports.MerchandiseInput) (*domain.Merchandise, error) {
	return nil, nil
}

func (s *stubMerchandiseService) Update(ctx context.Context, userID, id string, input ports.MerchandiseInput) (*domain.Merchandise, error) {
	return nil, nil
}

func (s *stubMerchandiseService) Delete(ctx context.Context, userID, id string) error {
	return nil
}

func TestMerchandiseHandler_Search_LegacyFieldNames(t *testing.T) {
	e := echo.New()
	stub := &stubMerchandiseService{
		searchFn: func(ctx context.Context, query string) ([]*domain.Merchandise, error) {
			if query != "gauze" {
				t.Fatalf("query not forwarded: %q", query)
			}
			return []*domain.Merchandise{
				{ID: "m1", Name: "sterile gauze", Quantity: 40, Description: "10x10 pads", Price: 12.5},
			}, nil
		},
	}
	handler := NewMerchandiseHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/merchandise/search?query=gauze", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	it := items[0]
	for _, key := range []string{"id", "nome", "quantidade", "descricao", "preco"} {
		if _, present := it[key]; !present {
			t.Fatalf("missing legacy field %q: %v", key, it)
		}
	}
	if it["nome"] != "sterile gauze" {
		t.Fatalf("unexpected nome: %v", it["nome"])
	}
	if it["quantidade"] != float64(40) {
		t.Fatalf("unexpected quantidade: %v", it["quantidade"])
	}
}

func TestMerchandiseHandler_Search_EmptyResult(t *testing.T) {
	e := echo.New()
	stub := &stubMerchandiseService{
		searchFn: func(ctx context.Context, query string) ([]*domain.Merchandise, error) {
			return nil, nil
		},
	}
	handler := NewMerchandiseHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/merchandise/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty array, got %v", items)
	}
}
