package shell

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/journal"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/metrics"
	"gowarehouse/internal/service/authservice"
	"gowarehouse/internal/service/catalogservice"
	"gowarehouse/internal/service/orderservice"
)

// Opções do menu principal
const (
	OptionList   = 1
	OptionSearch = 2
	OptionBrowse = 3
	OptionQuit   = 4
)

const menuText = `
What would you like to do?
1. List items by warehouse
2. Search an item and place an order
3. Browse by category
4. Quit`

// Shell é a camada de apresentação: conduz a sessão interativa sobre stdin/stdout.
// Também implementa orderservice.Console para o motor de pedidos.
type Shell struct {
	in      *bufio.Reader
	out     io.Writer
	auth    *authservice.Service
	catalog *catalogservice.Service
	orders  *orderservice.Service
	journal journal.Journal
	metrics *metrics.Session
	logger  logger.Logger
	now     func() time.Time

	identity domain.Identity
	actions  []string
}

// NewShell monta o Shell com os serviços já inicializados.
func NewShell(in io.Reader, out io.Writer, auth *authservice.Service, catalog *catalogservice.Service,
	orders *orderservice.Service, j journal.Journal, m *metrics.Session, logger logger.Logger) *Shell {
	return &Shell{
		in:      bufio.NewReader(in),
		out:     out,
		auth:    auth,
		catalog: catalog,
		orders:  orders,
		journal: j,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Identity retorna a identidade da sessão (nil antes do login).
func (s *Shell) Identity() domain.Identity { return s.identity }

// Actions retorna as ações registradas na sessão, em ordem.
func (s *Shell) Actions() []string { return s.actions }

// Ask imprime o prompt e lê uma linha, sem o terminador.
func (s *Shell) Ask(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		// Última linha sem '\n' ainda é uma resposta válida.
		if stderrors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm aceita apenas "y" ou "Y"; qualquer outra resposta (inclusive vazia) é "não".
func (s *Shell) Confirm(prompt string) (bool, error) {
	answer, err := s.Ask(prompt)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(answer) == "y" || strings.TrimSpace(answer) == "Y", nil
}

func (s *Shell) Println(a ...interface{}) {
	fmt.Fprintln(s.out, a...)
}

// Run executa a sessão completa: login, loop do menu e despedida.
// Fim de entrada durante o menu encerra a sessão normalmente.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.login(); err != nil {
		return err
	}
	s.Println(s.identity.Greet())

	err := s.loop(ctx)
	if err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}

	s.Println()
	s.Println(s.identity.Farewell(s.actions))
	s.logger.Info("Sessão encerrada.", map[string]interface{}{
		"name":    s.identity.Name(),
		"kind":    s.identity.Kind(),
		"actions": len(s.actions),
	})
	return nil
}

func (s *Shell) login() error {
	raw, err := s.Ask("What is your user name? ")
	if err != nil {
		return err
	}
	name := authservice.NormalizeName(raw)

	for {
		mode, err := s.Ask("Enter 1 to browse as a guest or 2 to log in as an employee: ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(mode) {
		case "1":
			s.identity = s.auth.Guest(name)
			return nil
		case "2":
			return s.loginEmployee(name)
		default:
			s.Println(apperror.NewInvalidMenuSelectionError(mode, 1, 2).Error())
		}
	}
}

// loginEmployee oferece uma nova tentativa; depois disso a sessão segue como visitante.
func (s *Shell) loginEmployee(name string) error {
	for attempt := 0; attempt < 2; attempt++ {
		password, err := s.Ask("Please enter your password: ")
		if err != nil {
			return err
		}
		employee, authErr := s.auth.Authenticate(name, password)
		if authErr == nil {
			s.identity = employee
			return nil
		}
		s.Println(authErr.Error())
		if attempt > 0 {
			break
		}
		retry, err := s.Confirm("Do you want to try again? (y/n) - ")
		if err != nil {
			return err
		}
		if !retry {
			break
		}
	}
	s.Println("Continuing without authentication. Ordering is disabled for this session.")
	s.identity = s.auth.Guest(name)
	return nil
}

func (s *Shell) loop(ctx context.Context) error {
	for {
		choice, err := s.menu()
		if err != nil {
			return err
		}

		switch choice {
		case OptionList:
			s.listByWarehouse(ctx)
		case OptionSearch:
			if err := s.searchAndOrder(ctx); err != nil {
				return err
			}
		case OptionBrowse:
			if err := s.browseByCategory(ctx); err != nil {
				return err
			}
		case OptionQuit:
			return nil
		}

		again, err := s.Confirm("\nDo you want to perform another action? (y/n) - ")
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

// menu exibe o menu até receber uma opção válida entre 1 e 4.
func (s *Shell) menu() (int, error) {
	for {
		s.Println(menuText)
		text, err := s.Ask("Type the number of the operation: ")
		if err != nil {
			return 0, err
		}
		choice, convErr := strconv.Atoi(strings.TrimSpace(text))
		if convErr != nil || choice < OptionList || choice > OptionQuit {
			selErr := apperror.NewInvalidMenuSelectionError(text, OptionList, OptionQuit)
			s.logger.Debug("Opção de menu inválida.", map[string]interface{}{"input": text})
			s.Println(selErr.Error())
			continue
		}
		return choice, nil
	}
}

func (s *Shell) listByWarehouse(ctx context.Context) {
	listing := s.catalog.ListByWarehouse()
	for _, wl := range listing.Warehouses {
		s.Println(fmt.Sprintf("\nItems in %s:", wl.Warehouse))
		for _, name := range wl.ItemNames {
			s.Println("  - " + name)
		}
		s.Println(fmt.Sprintf("Total items in %s: %d", wl.Warehouse, len(wl.ItemNames)))
	}
	s.Println(fmt.Sprintf("\n%s.", listing.Action()))
	s.record(ctx, listing.Action())
}

func (s *Shell) searchAndOrder(ctx context.Context) error {
	raw, err := s.Ask("What is the name of the item? ")
	if err != nil {
		return err
	}
	query := strings.ToLower(strings.TrimSpace(raw))

	matches := s.orders.Search(query)
	s.metrics.ObserveSearch(len(matches))
	s.Println(fmt.Sprintf("Quantity Availability: %d", len(matches)))
	if len(matches) == 0 {
		s.Println("Not in stock")
		s.record(ctx, "Searched for "+query)
		return nil
	}

	s.Println("Location:")
	for _, m := range matches {
		s.Println(fmt.Sprintf("  %s - %s", m.Item.DisplayName(), m.Warehouse))
	}
	if best, ok := orderservice.MaxAvailability(orderservice.TallyByWarehouse(matches)); ok {
		s.Println(fmt.Sprintf("Maximum availability: %d in Warehouse %s", best.Count, best.WarehouseID))
	}
	// A busca entra no resumo depois da ação do pedido.
	defer s.record(ctx, "Searched for "+query)

	if s.identity.Kind() != domain.KindEmployee || !s.identity.IsAuthenticated() {
		s.Println("Only authenticated employees can place orders.")
		return nil
	}

	place, err := s.Confirm(fmt.Sprintf("Do you want to place an order for the item %s? (y/n) - ", query))
	if err != nil || !place {
		return err
	}

	result, err := s.orders.PlaceOrder(s.identity, query, s)
	if err != nil {
		var denied *apperror.PermissionDeniedError
		if stderrors.As(err, &denied) {
			s.metrics.ObserveOrder(metrics.OutcomeDenied, 0)
		}
		if apperror.IsRecoverable(err) {
			s.Println(err.Error())
			return nil
		}
		return err
	}
	s.metrics.ObserveOrder(outcome(result), result.Ordered)
	if result.Ordered > 0 {
		s.Println(fmt.Sprintf("Your order of %d %s has been placed.", result.Ordered, query))
	}
	if action := result.Action(); action != "" {
		s.record(ctx, action)
	}
	return nil
}

func (s *Shell) browseByCategory(ctx context.Context) error {
	categories := s.catalog.Categories()
	if len(categories) == 0 {
		s.Println("There are no items in stock.")
		return nil
	}
	for idx, c := range categories {
		s.Println(fmt.Sprintf("%d. %s (%d)", idx+1, c.Category, c.Count))
	}

	text, err := s.Ask("Type the number of the category you want to browse: ")
	if err != nil {
		return err
	}
	pick, convErr := strconv.Atoi(strings.TrimSpace(text))
	if convErr != nil || pick < 1 || pick > len(categories) {
		s.Println("Invalid input!")
		return nil
	}

	category := categories[pick-1].Category
	placements := s.catalog.ItemsInCategory(category)
	for _, p := range placements {
		s.Println(fmt.Sprintf("  %s, %s", p.Item.DisplayName(), p.Warehouse))
	}
	s.Println(fmt.Sprintf("Total items in this category are: %d", len(placements)))
	s.record(ctx, "Browsed the category "+category)
	return nil
}

// record guarda a ação para o resumo e a grava no log da sessão imediatamente.
func (s *Shell) record(ctx context.Context, action string) {
	s.actions = append(s.actions, action)
	s.metrics.ObserveAction(string(s.identity.Kind()))
	entry := journal.Entry{
		Kind:     string(s.identity.Kind()),
		Username: s.identity.Name(),
		Action:   action,
		At:       s.now(),
	}
	if err := s.journal.Append(ctx, entry); err != nil {
		s.logger.Error("Falha ao gravar ação no log da sessão.", err)
	}
}

func outcome(r orderservice.OrderResult) string {
	switch {
	case r.Cancelled:
		return metrics.OutcomeCancelled
	case r.Capped:
		return metrics.OutcomeCapped
	default:
		return metrics.OutcomePlaced
	}
}
