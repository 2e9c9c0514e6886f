package domain

// Warehouse representa um armazém: um balde nomeado de Items.
// Todo Item em Stock tem WarehouseID igual ao ID do armazém (garantido pelo loader).
type Warehouse struct {
	ID    string  `json:"warehouse_id"`
	Stock []*Item `json:"stock"`
}

// NewWarehouse cria um armazém vazio.
func NewWarehouse(id string) *Warehouse {
	return &Warehouse{ID: id}
}

// Occupancy retorna a quantidade de itens atualmente no armazém.
func (w *Warehouse) Occupancy() int {
	return len(w.Stock)
}

// AddItem acrescenta o item ao estoque. Duplicatas não são verificadas.
func (w *Warehouse) AddItem(item *Item) {
	w.Stock = append(w.Stock, item)
}

// RemoveItem retira o item com o ID informado, preservando a ordem dos demais.
func (w *Warehouse) RemoveItem(id string) bool {
	for idx, item := range w.Stock {
		if item.ID == id {
			w.Stock = append(w.Stock[:idx], w.Stock[idx+1:]...)
			return true
		}
	}
	return false
}

func (w *Warehouse) String() string {
	return "Warehouse " + w.ID
}
