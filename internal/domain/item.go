package domain

import (
	"strings"
	"time"
)

// StockTimeLayout é o formato de date_of_stock nos registros de estoque.
const StockTimeLayout = "2006-01-02 15:04:05"

// Item representa uma unidade física em estoque (a Entidade).
// Um Item pertence a exatamente um Warehouse; só sai dele quando é pedido.
type Item struct {
	ID          string `json:"id"`
	State       string `json:"state"`    // Condição, e.g. "New", "Second hand"
	Category    string `json:"category"` // Tipo de produto, e.g. "printer"
	DateOfStock string `json:"date_of_stock"`
	WarehouseID string `json:"warehouse"`
}

// DisplayName retorna "{state} {category}" ou "" se algum dos dois não estiver definido.
func (i Item) DisplayName() string {
	if i.State == "" || i.Category == "" {
		return ""
	}
	return i.State + " " + i.Category
}

// LowerName é o nome usado em buscas e listagens.
func (i Item) LowerName() string {
	return strings.ToLower(i.DisplayName())
}

// StockedAt interpreta DateOfStock. Aceita também RFC3339.
func (i Item) StockedAt() (time.Time, error) {
	t, err := time.Parse(StockTimeLayout, i.DateOfStock)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, i.DateOfStock)
}
