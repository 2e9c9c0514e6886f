package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gowarehouse/internal/domain"
)

// SummarySheet é a primeira aba: um armazém por linha.
const SummarySheet = "Summary"

var (
	summaryHeader = []interface{}{"warehouse_id", "items", "sheet"}
	stockHeader   = []interface{}{"item_id", "state", "category", "date_of_stock"}
)

// WriteStockReport grava o relatório XLSX em path, criando o diretório se preciso.
func WriteStockReport(path string, warehouses []*domain.Warehouse) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteStock(out, warehouses); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WriteStock monta a planilha: aba de resumo e uma aba por armazém.
// As abas dos armazéns são nomeadas pela posição (W1, W2, ...) porque o Excel
// limita nomes a 31 caracteres, proíbe :\/?*[] e ignora maiúsculas; o id real
// fica na célula B1 da aba e na linha do resumo.
func WriteStock(w io.Writer, warehouses []*domain.Warehouse) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// A aba padrão vira o resumo
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SummarySheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return fmt.Errorf("report: summary header: %w", err)
	}

	total := 0
	for idx, warehouse := range warehouses {
		sheet := SheetName(idx)
		row := []interface{}{warehouse.ID, warehouse.Occupancy(), sheet}
		if err := setRow(f, SummarySheet, idx+2, row); err != nil {
			return err
		}
		total += warehouse.Occupancy()

		if err := writeWarehouseSheet(f, sheet, warehouse); err != nil {
			return err
		}
	}
	totalRow := []interface{}{"total", total}
	if err := setRow(f, SummarySheet, len(warehouses)+2, totalRow); err != nil {
		return err
	}

	return f.Write(w)
}

// SheetName devolve o nome da aba do armazém na posição idx (base zero).
func SheetName(idx int) string {
	return fmt.Sprintf("W%d", idx+1)
}

func writeWarehouseSheet(f *excelize.File, sheet string, warehouse *domain.Warehouse) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("report: sheet %s: %w", sheet, err)
	}
	if err := setRow(f, sheet, 1, []interface{}{"warehouse_id", warehouse.ID}); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A2", &stockHeader); err != nil {
		return fmt.Errorf("report: %s header: %w", sheet, err)
	}
	for idx, item := range warehouse.Stock {
		row := []interface{}{item.ID, item.State, item.Category, item.DateOfStock}
		if err := setRow(f, sheet, idx+3, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("report: %s row %d: %w", sheet, row, err)
	}
	return nil
}
