package catalogservice

import (
	"fmt"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/pkg/logger"
)

// WarehouseListing é o conteúdo de um armazém para exibição.
type WarehouseListing struct {
	Warehouse *domain.Warehouse
	ItemNames []string // nomes em minúsculas, na ordem do estoque
}

// Listing é a listagem completa por armazém.
type Listing struct {
	Warehouses []WarehouseListing
	Total      int
}

// Action é o texto registrado no log da sessão.
func (l Listing) Action() string {
	return fmt.Sprintf("Listed %d items from %d Warehouses", l.Total, len(l.Warehouses))
}

// CategoryCount é uma categoria e quantos itens ela tem em todos os armazéns.
type CategoryCount struct {
	Category string
	Count    int
}

// Placement é um item e o armazém onde está.
type Placement struct {
	Item      *domain.Item
	Warehouse *domain.Warehouse
}

// Service implementa as consultas de leitura sobre o catálogo.
type Service struct {
	warehouses []*domain.Warehouse
	logger     logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Catálogo.
func NewService(warehouses []*domain.Warehouse, logger logger.Logger) *Service {
	return &Service{warehouses: warehouses, logger: logger}
}

// ListByWarehouse lista os itens de cada armazém e o total geral.
func (s *Service) ListByWarehouse() Listing {
	var listing Listing
	for _, warehouse := range s.warehouses {
		names := make([]string, 0, warehouse.Occupancy())
		for _, item := range warehouse.Stock {
			names = append(names, item.LowerName())
		}
		listing.Warehouses = append(listing.Warehouses, WarehouseListing{Warehouse: warehouse, ItemNames: names})
		listing.Total += warehouse.Occupancy()
	}
	s.logger.Debug("Listagem por armazém gerada.", map[string]interface{}{"warehouses": len(listing.Warehouses), "total": listing.Total})
	return listing
}

// Categories conta os itens por categoria, na ordem em que cada categoria aparece.
func (s *Service) Categories() []CategoryCount {
	var counts []CategoryCount
	index := make(map[string]int)
	for _, warehouse := range s.warehouses {
		for _, item := range warehouse.Stock {
			pos, ok := index[item.Category]
			if !ok {
				index[item.Category] = len(counts)
				counts = append(counts, CategoryCount{Category: item.Category, Count: 1})
				continue
			}
			counts[pos].Count++
		}
	}
	return counts
}

// ItemsInCategory retorna os itens da categoria (comparação exata), armazém por armazém.
func (s *Service) ItemsInCategory(category string) []Placement {
	var out []Placement
	for _, warehouse := range s.warehouses {
		for _, item := range warehouse.Stock {
			if item.Category == category {
				out = append(out, Placement{Item: item, Warehouse: warehouse})
			}
		}
	}
	s.logger.Debug("Categoria consultada.", map[string]interface{}{"category": category, "count": len(out)})
	return out
}
