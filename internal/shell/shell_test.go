package shell_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gowarehouse/internal/domain"
	"gowarehouse/internal/pkg/journal"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/metrics"
	"gowarehouse/internal/service/authservice"
	"gowarehouse/internal/service/catalogservice"
	"gowarehouse/internal/service/orderservice"
	"gowarehouse/internal/shell"
)

// MockJournal é uma implementação mock da interface journal.Journal
type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Append(ctx context.Context, entry journal.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournal) entries() []journal.Entry {
	var out []journal.Entry
	for _, call := range m.Calls {
		out = append(out, call.Arguments.Get(1).(journal.Entry))
	}
	return out
}

type fixture struct {
	shell   *shell.Shell
	out     *bytes.Buffer
	journal *MockJournal
	orders  *orderservice.Service
	metrics *metrics.Session
}

func newFixture(t *testing.T, input string) *fixture {
	t.Helper()

	item := func(id, state, category, wh string) *domain.Item {
		return &domain.Item{ID: id, State: state, Category: category, WarehouseID: wh}
	}
	w1 := domain.NewWarehouse("1")
	w1.AddItem(item("p1", "Second hand", "printer", "1"))
	w1.AddItem(item("p2", "Second hand", "printer", "1"))
	w2 := domain.NewWarehouse("2")
	w2.AddItem(item("p3", "Second hand", "printer", "2"))
	w2.AddItem(item("m1", "New", "mouse", "2"))
	w3 := domain.NewWarehouse("3")
	w3.AddItem(item("p4", "Second hand", "printer", "3"))
	warehouses := []*domain.Warehouse{w1, w2, w3}

	nicole, err := domain.NewEmployee("Nicole", "password1", nil)
	require.NoError(t, err)

	log := logger.NewNopLogger()
	j := new(MockJournal)
	orders := orderservice.NewService(warehouses, log)
	out := &bytes.Buffer{}
	m := metrics.NewSession()
	sh := shell.NewShell(
		strings.NewReader(input),
		out,
		authservice.NewService([]*domain.Employee{nicole}, log),
		catalogservice.NewService(warehouses, log),
		orders,
		j,
		m,
		log,
	)
	return &fixture{shell: sh, out: out, journal: j, orders: orders, metrics: m}
}

func gathered(t *testing.T, m *metrics.Session) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.prom")
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_InvalidMenuChoiceReprintsMenu(t *testing.T) {
	f := newFixture(t, "ana\n1\n5\n4\n")

	err := f.shell.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(f.out.String(), "What would you like to do?"))
	assert.Contains(t, f.out.String(), `Invalid input "5"! Please enter a number between 1 and 4.`)
	assert.Empty(t, f.shell.Actions())
	assert.Contains(t, f.out.String(), "You have not done any action in specific.")
	f.journal.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestRun_NonNumericMenuChoice(t *testing.T) {
	f := newFixture(t, "ana\n1\nabc\n\n4\n")

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Equal(t, 3, strings.Count(f.out.String(), "What would you like to do?"))
	assert.Empty(t, f.shell.Actions())
}

func TestRun_InvalidEntryModeReprompts(t *testing.T) {
	f := newFixture(t, "ana\n3\n1\n4\n")

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Contains(t, f.out.String(), `Invalid input "3"! Please enter a number between 1 and 2.`)
	assert.Equal(t, domain.KindGuest, f.shell.Identity().Kind())
	assert.Equal(t, "Ana", f.shell.Identity().Name())
	assert.Contains(t, f.out.String(), "Welcome to our Warehouse Database.")
}

func TestRun_EmployeeOrdersFromMaxWarehouseFirst(t *testing.T) {
	f := newFixture(t, "nICOLE\n2\npassword1\n2\nPrinter\ny\n3\nn\n")
	f.journal.On("Append", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.shell.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Hello, Nicole!")
	assert.Contains(t, out, "Quantity Availability: 4")
	assert.Contains(t, out, "Second hand printer - Warehouse 3")
	assert.Contains(t, out, "Maximum availability: 2 in Warehouse 1")
	assert.Contains(t, out, "Your order of 3 printer has been placed.")
	assert.Equal(t, []string{"Ordered 3 of printer", "Searched for printer"}, f.shell.Actions())
	assert.Contains(t, out, "    1. Ordered 3 of printer\n    2. Searched for printer")

	remaining := f.orders.Search("printer")
	require.Len(t, remaining, 1)
	assert.Equal(t, "3", remaining[0].Warehouse.ID)

	entries := f.journal.entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Ordered 3 of printer", entries[0].Action)
	assert.Equal(t, "Searched for printer", entries[1].Action)
	assert.Contains(t, gathered(t, f.metrics), `warehouse_orders_total{outcome="placed"} 1`)
	assert.Contains(t, gathered(t, f.metrics), "warehouse_units_ordered_total 3")
	for _, e := range entries {
		assert.Equal(t, "employee", e.Kind)
		assert.Equal(t, "Nicole", e.Username)
		assert.False(t, e.At.IsZero())
	}
}

func TestRun_EmployeeDeclinesCap(t *testing.T) {
	f := newFixture(t, "nicole\n2\npassword1\n2\nprinter\ny\n9\nn\nn\n")
	f.journal.On("Append", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Contains(t, f.out.String(), "The maximum quantity that can be ordered is 4.")
	assert.Equal(t, []string{"Cancelled order of printer", "Searched for printer"}, f.shell.Actions())
	assert.Len(t, f.orders.Search("printer"), 4)
	assert.Contains(t, gathered(t, f.metrics), `warehouse_orders_total{outcome="cancelled"} 1`)
}

func TestRun_EmployeeSkipsOrder(t *testing.T) {
	f := newFixture(t, "nicole\n2\npassword1\n2\nmouse\nn\nn\n")
	f.journal.On("Append", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Equal(t, []string{"Searched for mouse"}, f.shell.Actions())
	assert.NotContains(t, f.out.String(), "How much quantity")
}

func TestRun_GuestCannotOrder(t *testing.T) {
	f := newFixture(t, "ana\n1\n2\nprinter\nn\n")
	f.journal.On("Append", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.shell.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Only authenticated employees can place orders.")
	assert.NotContains(t, out, "Do you want to place an order")
	assert.Len(t, f.orders.Search("printer"), 4)

	entries := f.journal.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "user", entries[0].Kind)
	assert.Equal(t, "Ana", entries[0].Username)
	assert.Equal(t, "Searched for printer", entries[0].Action)
}

func TestRun_NotInStockSkipsOrderPrompt(t *testing.T) {
	f := newFixture(t, "nicole\n2\npassword1\n2\nscanner\nn\n")
	f.journal.On("Append", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.shell.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Quantity Availability: 0")
	assert.Contains(t, out, "Not in stock")
	assert.NotContains(t, out, "Do you want to place an order")
	assert.Equal(t, []string{"Searched for scanner"}, f.shell.Actions())
}

func TestRun_FailedLoginTwiceDowngradesToGuest(t *testing.T) {
	f := newFixture(t, "nicole\n2\nwrong\ny\nstill wrong\n4\n")

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Equal(t, 2, strings.Count(f.out.String(), "Authentication failed"))
	assert.Equal(t, domain.KindGuest, f.shell.Identity().Kind())
	assert.False(t, f.shell.Identity().IsAuthenticated())
	assert.Equal(t, "Nicole", f.shell.Identity().Name())
}

func TestRun_FailedLoginDeclinedRetry(t *testing.T) {
	f := newFixture(t, "nicole\n2\nwrong\nn\n4\n")

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Equal(t, 1, strings.Count(f.out.String(), "Please enter your password"))
	assert.Equal(t, domain.KindGuest, f.shell.Identity().Kind())
}

func TestRun_RetrySucceeds(t *testing.T) {
	f := newFixture(t, "nicole\n2\nwrong\nY\npassword1\n4\n")

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Equal(t, domain.KindEmployee, f.shell.Identity().Kind())
	assert.True(t, f.shell.Identity().IsAuthenticated())
}

func TestRun_ListThenBrowse(t *testing.T) {
	f := newFixture(t, "ana\n1\n1\ny\n3\n1\nn\n")
	f.journal.On("Append", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.shell.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Items in Warehouse 2:")
	assert.Contains(t, out, "  - new mouse")
	assert.Contains(t, out, "Total items in Warehouse 1: 2")
	assert.Contains(t, out, "1. printer (4)")
	assert.Contains(t, out, "2. mouse (1)")
	assert.Contains(t, out, "Total items in this category are: 4")
	assert.Equal(t, []string{"Listed 5 items from 3 Warehouses", "Browsed the category printer"}, f.shell.Actions())
}

func TestRun_BrowseInvalidPick(t *testing.T) {
	f := newFixture(t, "ana\n1\n3\n7\nn\n")

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Contains(t, f.out.String(), "Invalid input!")
	assert.Empty(t, f.shell.Actions())
}

func TestRun_EndOfInputClosesSession(t *testing.T) {
	f := newFixture(t, "ana\n1\n")

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Contains(t, f.out.String(), "Thank you for your visit, Ana.")
}

func TestRun_EndOfInputBeforeLogin(t *testing.T) {
	f := newFixture(t, "")

	err := f.shell.Run(context.Background())

	assert.Error(t, err)
	assert.Nil(t, f.shell.Identity())
}

func TestRun_JournalFailureKeepsSessionGoing(t *testing.T) {
	f := newFixture(t, "ana\n1\n1\nn\n")
	f.journal.On("Append", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Equal(t, []string{"Listed 5 items from 3 Warehouses"}, f.shell.Actions())
	assert.Contains(t, f.out.String(), "Summary of action this session:")
}

func TestConfirm_OnlyLowerOrUpperY(t *testing.T) {
	f := newFixture(t, "y\nY\nyes\n\n")

	for _, want := range []bool{true, true, false, false} {
		got, err := f.shell.Confirm("? ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
