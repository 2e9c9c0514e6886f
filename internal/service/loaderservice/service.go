package loaderservice

import (
	"github.com/google/uuid"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// Modelos suportados pelo loader.
const (
	ModelPersonnel = "personnel"
	ModelStock     = "stock"
)

// RecordReader define o contrato que o Loader espera da camada de Persistência.
type RecordReader interface {
	ReadPersonnel(path string) ([]domain.PersonnelRecord, error)
	ReadStock(path string) ([]domain.StockRecord, error)
}

// Result carrega o que foi construído. Só o campo do modelo pedido é preenchido.
type Result struct {
	Employees  []*domain.Employee
	Warehouses []*domain.Warehouse
}

// Service constrói o Catalog Model a partir dos registros planos.
type Service struct {
	reader RecordReader
	logger logger.Logger
	newID  func() string
}

// NewService cria e retorna uma nova instância do Loader.
func NewService(reader RecordReader, logger logger.Logger) *Service {
	return &Service{reader: reader, logger: logger, newID: uuid.NewString}
}

// Load lê o arquivo do modelo indicado e constrói os objetos correspondentes.
func (s *Service) Load(model, path string) (Result, error) {
	s.logger.Debug("Iniciando carga de modelo.", map[string]interface{}{"model": model, "path": path})

	switch model {
	case ModelPersonnel:
		records, err := s.reader.ReadPersonnel(path)
		if err != nil {
			return Result{}, err
		}
		employees, err := BuildRoster(records)
		if err != nil {
			s.logger.Error("Registro de funcionário inválido.", err)
			return Result{}, err
		}
		s.logger.Info("Roster construído.", map[string]interface{}{"employees": len(employees)})
		return Result{Employees: employees}, nil

	case ModelStock:
		records, err := s.reader.ReadStock(path)
		if err != nil {
			return Result{}, err
		}
		warehouses := BuildCatalog(records, s.newID)
		s.logger.Info("Catálogo construído.", map[string]interface{}{"warehouses": len(warehouses), "items": len(records)})
		return Result{Warehouses: warehouses}, nil

	default:
		s.logger.Warn("Modelo desconhecido solicitado ao loader.", map[string]interface{}{"model": model})
		return Result{}, apperror.NewUnknownModelError(model)
	}
}

// LoadAll carrega o roster e o catálogo, nessa ordem. Qualquer erro é fatal para o chamador.
func (s *Service) LoadAll(personnelPath, stockPath string) ([]*domain.Employee, []*domain.Warehouse, error) {
	personnel, err := s.Load(ModelPersonnel, personnelPath)
	if err != nil {
		return nil, nil, err
	}
	stock, err := s.Load(ModelStock, stockPath)
	if err != nil {
		return nil, nil, err
	}
	return personnel.Employees, stock.Warehouses, nil
}

// BuildRoster cria um Employee por registro, materializando head_of recursivamente.
func BuildRoster(records []domain.PersonnelRecord) ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0, len(records))
	for _, rec := range records {
		employee, err := buildEmployee(rec)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, nil
}

func buildEmployee(rec domain.PersonnelRecord) (*domain.Employee, error) {
	var subordinates []*domain.Employee
	if len(rec.HeadOf) > 0 {
		var err error
		subordinates, err = BuildRoster(rec.HeadOf)
		if err != nil {
			return nil, err
		}
	}
	return domain.NewEmployee(rec.Name, rec.Password, subordinates)
}

// BuildCatalog agrupa os registros por armazém, na ordem em que cada id aparece pela primeira vez.
func BuildCatalog(records []domain.StockRecord, newID func() string) []*domain.Warehouse {
	var warehouses []*domain.Warehouse
	byID := make(map[string]*domain.Warehouse)

	for _, rec := range records {
		id := string(rec.Warehouse)
		warehouse, ok := byID[id]
		if !ok {
			warehouse = domain.NewWarehouse(id)
			byID[id] = warehouse
			warehouses = append(warehouses, warehouse)
		}
		warehouse.AddItem(&domain.Item{
			ID:          newID(),
			State:       rec.State,
			Category:    rec.Category,
			DateOfStock: rec.DateOfStock,
			WarehouseID: id,
		})
	}
	return warehouses
}
