package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PersonnelRecord é o registro plano de um funcionário, como vem do arquivo de dados.
type PersonnelRecord struct {
	Name     string            `json:"name"`
	Password string            `json:"password"`
	HeadOf   []PersonnelRecord `json:"head_of,omitempty"`
}

// UnmarshalJSON aceita também a chave legada "user_name" no lugar de "name".
func (p *PersonnelRecord) UnmarshalJSON(data []byte) error {
	type plain PersonnelRecord
	var raw struct {
		plain
		UserName string `json:"user_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PersonnelRecord(raw.plain)
	if p.Name == "" {
		p.Name = raw.UserName
	}
	return nil
}

// StockRecord é o registro plano de um item em estoque.
type StockRecord struct {
	State       string       `json:"state"`
	Category    string       `json:"category"`
	DateOfStock string       `json:"date_of_stock"`
	Warehouse   WarehouseRef `json:"warehouse"`
}

// WarehouseRef aceita o identificador do armazém como número ou texto.
type WarehouseRef string

// UnmarshalJSON normaliza números e strings para texto.
func (w *WarehouseRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*w = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = WarehouseRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("warehouse must be a number or string: %w", err)
	}
	*w = WarehouseRef(n.String())
	return nil
}
