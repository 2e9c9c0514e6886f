package orderservice

import (
	"fmt"
	"strconv"
	"strings"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// Console define o contrato de entrada/saída interativa que o motor de pedidos espera do Shell.
type Console interface {
	Ask(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
	Println(a ...interface{})
}

// Match é um item encontrado e o armazém que o possui.
type Match struct {
	Item      *domain.Item
	Warehouse *domain.Warehouse
}

// WarehouseCount é a quantidade de matches de um armazém.
type WarehouseCount struct {
	WarehouseID string
	Count       int
}

// Tally mantém as contagens por armazém na ordem em que cada armazém apareceu.
type Tally []WarehouseCount

// Total soma as contagens de todos os armazéns.
func (t Tally) Total() int {
	total := 0
	for _, wc := range t {
		total += wc.Count
	}
	return total
}

// Removal identifica uma unidade retirada do estoque.
type Removal struct {
	WarehouseID string
	ItemID      string
}

// OrderResult descreve o desfecho de PlaceOrder.
type OrderResult struct {
	Query      string
	Requested  int
	Ordered    int
	Capped     bool
	Cancelled  bool
	NotInStock bool
	Removed    []Removal
}

// Action é o texto registrado no log da sessão ("" quando nada foi pedido nem recusado).
func (r OrderResult) Action() string {
	switch {
	case r.NotInStock:
		return ""
	case r.Cancelled:
		return fmt.Sprintf("Cancelled order of %s", r.Query)
	default:
		return fmt.Sprintf("Ordered %d of %s", r.Ordered, r.Query)
	}
}

// Service implementa busca e pedidos sobre o catálogo em memória.
type Service struct {
	warehouses []*domain.Warehouse
	logger     logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Pedidos.
func NewService(warehouses []*domain.Warehouse, logger logger.Logger) *Service {
	return &Service{warehouses: warehouses, logger: logger}
}

// Search retorna todos os pares (item, armazém) cujo nome contém a busca, sem diferenciar maiúsculas.
// Ordem: armazém, depois estoque.
func (s *Service) Search(query string) []Match {
	q := strings.ToLower(query)
	var matches []Match
	for _, warehouse := range s.warehouses {
		for _, item := range warehouse.Stock {
			name := item.LowerName()
			if name == "" {
				continue
			}
			if strings.Contains(name, q) {
				matches = append(matches, Match{Item: item, Warehouse: warehouse})
			}
		}
	}
	s.logger.Debug("Busca executada.", map[string]interface{}{"query": q, "matches": len(matches)})
	return matches
}

// TallyByWarehouse conta os matches por armazém.
func TallyByWarehouse(matches []Match) Tally {
	var tally Tally
	index := make(map[string]int)
	for _, m := range matches {
		id := m.Warehouse.ID
		pos, ok := index[id]
		if !ok {
			index[id] = len(tally)
			tally = append(tally, WarehouseCount{WarehouseID: id, Count: 1})
			continue
		}
		tally[pos].Count++
	}
	return tally
}

// MaxAvailability retorna o armazém com mais unidades. Empates ficam com o primeiro da contagem.
func MaxAvailability(tally Tally) (WarehouseCount, bool) {
	if len(tally) == 0 {
		return WarehouseCount{}, false
	}
	best := tally[0]
	for _, wc := range tally[1:] {
		if wc.Count > best.Count {
			best = wc
		}
	}
	return best, true
}

// PlaceOrder pede ao console a quantidade e retira as unidades do estoque.
// Só funcionários autenticados podem pedir. Retira a quantidade combinada ou nada.
func (s *Service) PlaceOrder(identity domain.Identity, query string, console Console) (OrderResult, error) {
	q := strings.ToLower(query)
	result := OrderResult{Query: q}

	// 1. Permissão antes de qualquer mutação
	if identity == nil || identity.Kind() != domain.KindEmployee || !identity.IsAuthenticated() {
		s.logger.Warn("Pedido negado: identidade sem privilégio de funcionário.", map[string]interface{}{"query": q})
		return result, apperror.NewPermissionDeniedError("only authenticated employees can place orders")
	}

	matches := s.Search(q)
	if len(matches) == 0 {
		result.NotInStock = true
		return result, nil
	}
	total := len(matches)

	// 2. Quantidade (interativa, repetida até ser válida)
	qty, err := askQuantity(q, console)
	if err != nil {
		return result, err
	}
	result.Requested = qty

	// 3. Limite: oferece pedir o máximo disponível
	if qty > total {
		console.Println(fmt.Sprintf("There are not this many available. The maximum quantity that can be ordered is %d.", total))
		accept, err := console.Confirm(fmt.Sprintf("Do you want to order the %s in maximum quantity of %d? (y/n) - ", q, total))
		if err != nil {
			return result, err
		}
		if !accept {
			result.Cancelled = true
			s.logger.Info("Pedido cancelado pelo usuário.", map[string]interface{}{"query": q, "requested": qty, "available": total})
			return result, nil
		}
		qty = total
		result.Capped = true
	}

	// 4. Planeja toda a retirada antes de tocar no estoque
	plan := planRemoval(matches, qty)
	if len(plan) != qty {
		return result, apperror.NewInternalError(fmt.Sprintf("removal plan has %d units, expected %d", len(plan), qty), nil)
	}
	removed, err := s.apply(plan)
	if err != nil {
		s.logger.Error("Falha ao aplicar retirada de estoque.", err)
		return result, err
	}

	result.Ordered = qty
	result.Removed = removed
	s.logger.Info("Pedido realizado.", map[string]interface{}{
		"employee": identity.Name(),
		"query":    q,
		"ordered":  qty,
		"capped":   result.Capped,
	})
	return result, nil
}

func askQuantity(query string, console Console) (int, error) {
	for {
		text, err := console.Ask(fmt.Sprintf("How much quantity of %s do you want to order? ", query))
		if err != nil {
			return 0, err
		}
		text = strings.TrimSpace(text)
		qty, convErr := strconv.Atoi(text)
		if convErr != nil || qty <= 0 {
			console.Println(apperror.NewInvalidQuantityError(text).Error())
			continue
		}
		return qty, nil
	}
}

// planRemoval escolhe as unidades: primeiro o armazém de maior disponibilidade,
// depois os demais na ordem da contagem, parando ao atingir qty.
func planRemoval(matches []Match, qty int) []Match {
	tally := TallyByWarehouse(matches)
	best, _ := MaxAvailability(tally)

	order := make([]string, 0, len(tally))
	order = append(order, best.WarehouseID)
	for _, wc := range tally {
		if wc.WarehouseID != best.WarehouseID {
			order = append(order, wc.WarehouseID)
		}
	}

	byWarehouse := make(map[string][]Match, len(tally))
	for _, m := range matches {
		byWarehouse[m.Warehouse.ID] = append(byWarehouse[m.Warehouse.ID], m)
	}

	plan := make([]Match, 0, qty)
	for _, id := range order {
		for _, m := range byWarehouse[id] {
			if len(plan) == qty {
				return plan
			}
			plan = append(plan, m)
		}
	}
	return plan
}

// apply retira as unidades planejadas; se alguma falhar, devolve as já retiradas.
func (s *Service) apply(plan []Match) ([]Removal, error) {
	removed := make([]Removal, 0, len(plan))
	for idx, m := range plan {
		if m.Warehouse.RemoveItem(m.Item.ID) {
			removed = append(removed, Removal{WarehouseID: m.Warehouse.ID, ItemID: m.Item.ID})
			continue
		}
		for _, done := range plan[:idx] {
			done.Warehouse.AddItem(done.Item)
		}
		return nil, apperror.NewInternalError(fmt.Sprintf("item %s no longer in %s", m.Item.ID, m.Warehouse), nil)
	}
	return removed, nil
}
