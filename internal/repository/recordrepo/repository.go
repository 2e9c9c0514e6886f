package recordrepo

import (
	"encoding/json"
	"fmt"
	"os"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// RecordRepository lê os registros planos de funcionários e estoque de arquivos JSON.
type RecordRepository struct {
	logger logger.Logger
}

// NewRecordRepository cria e retorna uma nova instância do Repositório de Registros.
func NewRecordRepository(logger logger.Logger) *RecordRepository {
	return &RecordRepository{logger: logger}
}

// ReadPersonnel lê uma lista JSON de registros de funcionários.
func (r *RecordRepository) ReadPersonnel(path string) ([]domain.PersonnelRecord, error) {
	var records []domain.PersonnelRecord
	if err := r.readJSON(path, &records); err != nil {
		return nil, err
	}
	r.logger.Info("Registros de funcionários carregados.", map[string]interface{}{"path": path, "count": len(records)})
	return records, nil
}

// ReadStock lê uma lista JSON de registros de estoque.
func (r *RecordRepository) ReadStock(path string) ([]domain.StockRecord, error) {
	var records []domain.StockRecord
	if err := r.readJSON(path, &records); err != nil {
		return nil, err
	}
	r.logger.Info("Registros de estoque carregados.", map[string]interface{}{"path": path, "count": len(records)})
	return records, nil
}

func (r *RecordRepository) readJSON(path string, dst interface{}) error {
	r.logger.Debug("Lendo arquivo de dados.", map[string]interface{}{"path": path})

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Error("Falha ao ler arquivo de dados.", err)
		return errors.NewInternalError(fmt.Sprintf("failed to read %s", path), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Error("Falha ao decodificar JSON.", err)
		return errors.NewInternalError(fmt.Sprintf("failed to decode %s", path), err)
	}
	return nil
}
