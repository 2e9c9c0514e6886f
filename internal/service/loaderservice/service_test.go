package loaderservice_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/service/loaderservice"
)

// MockRecordReader é uma implementação mock da interface RecordReader
type MockRecordReader struct {
	mock.Mock
}

func (m *MockRecordReader) ReadPersonnel(path string) ([]domain.PersonnelRecord, error) {
	args := m.Called(path)
	return args.Get(0).([]domain.PersonnelRecord), args.Error(1)
}

func (m *MockRecordReader) ReadStock(path string) ([]domain.StockRecord, error) {
	args := m.Called(path)
	return args.Get(0).([]domain.StockRecord), args.Error(1)
}

func TestLoad_Personnel_Success(t *testing.T) {
	reader := new(MockRecordReader)
	svc := loaderservice.NewService(reader, logger.NewNopLogger())

	reader.On("ReadPersonnel", "personnel.json").Return([]domain.PersonnelRecord{
		{Name: "Jeremy", Password: "coppers", HeadOf: []domain.PersonnelRecord{
			{Name: "Nicole", Password: "password1"},
		}},
		{Name: "Natalie", Password: "mystery"},
	}, nil)

	result, err := svc.Load(loaderservice.ModelPersonnel, "personnel.json")

	require.NoError(t, err)
	require.Len(t, result.Employees, 2)
	assert.Nil(t, result.Warehouses)
	assert.Equal(t, "Jeremy", result.Employees[0].Name())
	require.Len(t, result.Employees[0].HeadOf, 1)
	assert.Equal(t, "Nicole", result.Employees[0].HeadOf[0].Name())
	reader.AssertExpectations(t)
}

func TestLoad_Personnel_MissingPassword(t *testing.T) {
	reader := new(MockRecordReader)
	svc := loaderservice.NewService(reader, logger.NewNopLogger())

	reader.On("ReadPersonnel", mock.Anything).Return([]domain.PersonnelRecord{
		{Name: "Jeremy", Password: "coppers", HeadOf: []domain.PersonnelRecord{
			{Name: "Nicole"},
		}},
	}, nil)

	_, err := svc.Load(loaderservice.ModelPersonnel, "personnel.json")

	require.Error(t, err)
	var missing *apperror.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "password", missing.Field)
	assert.False(t, apperror.IsRecoverable(err))
}

func TestLoad_Personnel_MissingName(t *testing.T) {
	reader := new(MockRecordReader)
	svc := loaderservice.NewService(reader, logger.NewNopLogger())

	reader.On("ReadPersonnel", mock.Anything).Return([]domain.PersonnelRecord{{Password: "x"}}, nil)

	_, err := svc.Load(loaderservice.ModelPersonnel, "personnel.json")

	assert.IsType(t, &apperror.MissingFieldError{}, err)
	assert.Contains(t, err.Error(), "name is missing")
}

func TestLoad_Stock_GroupsByWarehouseInFirstSeenOrder(t *testing.T) {
	reader := new(MockRecordReader)
	svc := loaderservice.NewService(reader, logger.NewNopLogger())

	reader.On("ReadStock", "stock.json").Return([]domain.StockRecord{
		{State: "Second hand", Category: "printer", Warehouse: "2"},
		{State: "New", Category: "laptop", Warehouse: "1"},
		{State: "Used", Category: "mouse", Warehouse: "2"},
	}, nil)

	result, err := svc.Load(loaderservice.ModelStock, "stock.json")

	require.NoError(t, err)
	require.Len(t, result.Warehouses, 2)
	assert.Equal(t, "2", result.Warehouses[0].ID)
	assert.Equal(t, "1", result.Warehouses[1].ID)
	assert.Equal(t, 2, result.Warehouses[0].Occupancy())
	for _, w := range result.Warehouses {
		for _, item := range w.Stock {
			assert.Equal(t, w.ID, item.WarehouseID)
			_, err := uuid.Parse(item.ID)
			assert.NoError(t, err)
		}
	}
	reader.AssertExpectations(t)
}

func TestLoad_Stock_ReaderError(t *testing.T) {
	reader := new(MockRecordReader)
	svc := loaderservice.NewService(reader, logger.NewNopLogger())

	readErr := apperror.NewInternalError("failed to read stock.json", errors.New("permission denied"))
	reader.On("ReadStock", mock.Anything).Return([]domain.StockRecord(nil), readErr)

	_, err := svc.Load(loaderservice.ModelStock, "stock.json")

	assert.Equal(t, readErr, err)
}

func TestLoad_UnknownModel(t *testing.T) {
	reader := new(MockRecordReader)
	svc := loaderservice.NewService(reader, logger.NewNopLogger())

	_, err := svc.Load("suppliers", "suppliers.json")

	assert.IsType(t, &apperror.UnknownModelError{}, err)
	reader.AssertNotCalled(t, "ReadPersonnel", mock.Anything)
	reader.AssertNotCalled(t, "ReadStock", mock.Anything)
}

func TestBuildCatalog_Empty(t *testing.T) {
	warehouses := loaderservice.BuildCatalog(nil, uuid.NewString)

	assert.Empty(t, warehouses)
}

func TestLoadAll_Success(t *testing.T) {
	reader := new(MockRecordReader)
	svc := loaderservice.NewService(reader, logger.NewNopLogger())

	reader.On("ReadPersonnel", "p.json").Return([]domain.PersonnelRecord{{Name: "Nicole", Password: "password1"}}, nil)
	reader.On("ReadStock", "s.json").Return([]domain.StockRecord{
		{State: "New", Category: "mouse", Warehouse: "1"},
	}, nil)

	roster, warehouses, err := svc.LoadAll("p.json", "s.json")

	require.NoError(t, err)
	require.Len(t, roster, 1)
	require.Len(t, warehouses, 1)
	assert.Equal(t, 1, warehouses[0].Occupancy())
	reader.AssertExpectations(t)
}

func TestLoadAll_InvalidRosterStopsBeforeStock(t *testing.T) {
	reader := new(MockRecordReader)
	svc := loaderservice.NewService(reader, logger.NewNopLogger())

	reader.On("ReadPersonnel", mock.Anything).Return([]domain.PersonnelRecord{{Name: "Nicole"}}, nil)

	_, _, err := svc.LoadAll("p.json", "s.json")

	var missing *apperror.MissingFieldError
	assert.True(t, errors.As(err, &missing))
	reader.AssertNotCalled(t, "ReadStock", mock.Anything)
}
