package domain

import (
	"fmt"
	"strings"

	apperror "gowarehouse/internal/errors"
)

// IdentityKind distingue as duas variantes de identidade de uma sessão.
type IdentityKind string

// Constantes para os tipos de identidade (também usadas para nomear o log da sessão)
const (
	KindGuest    IdentityKind = "user"
	KindEmployee IdentityKind = "employee"
)

// Identity é a soma {Guest, Employee}. As duas variantes expõem as mesmas capacidades.
type Identity interface {
	Name() string
	Kind() IdentityKind
	IsAuthenticated() bool
	Authenticate(password string) bool
	Greet() string
	Farewell(actions []string) string
}

// Guest é um visitante anônimo. Nunca é autenticado e, portanto, nunca faz pedidos.
type Guest struct {
	name string
}

// NewGuest cria um visitante com o nome informado.
func NewGuest(name string) *Guest {
	if name == "" {
		name = "Anonymous"
	}
	return &Guest{name: name}
}

func (g *Guest) Name() string               { return g.name }
func (g *Guest) Kind() IdentityKind         { return KindGuest }
func (g *Guest) IsAuthenticated() bool      { return false }
func (g *Guest) Authenticate(_ string) bool { return false }
func (g *Guest) Farewell(a []string) string { return farewell(g.name, a) }

func (g *Guest) Greet() string {
	return fmt.Sprintf("Hello, %s!\nWelcome to our Warehouse Database.\n"+
		"If you don't find what you are looking for,\n"+
		"Please ask one of our staff members to assist you.", g.name)
}

// Employee é um funcionário do roster. A senha é comparada literalmente (sem hash).
// HeadOf é uma árvore: os subordinados pertencem ao funcionário, sem referências de volta.
type Employee struct {
	name          string
	password      string
	HeadOf        []*Employee
	authenticated bool
}

// NewEmployee valida os campos obrigatórios e constrói o funcionário.
func NewEmployee(name, password string, headOf []*Employee) (*Employee, error) {
	if name == "" {
		return nil, apperror.NewMissingFieldError("name", "An employee cannot be anonymous")
	}
	if password == "" {
		return nil, apperror.NewMissingFieldError("password", "An employee requires authentication")
	}
	return &Employee{name: name, password: password, HeadOf: headOf}, nil
}

func (e *Employee) Name() string          { return e.name }
func (e *Employee) Kind() IdentityKind    { return KindEmployee }
func (e *Employee) IsAuthenticated() bool { return e.authenticated }
func (e *Employee) Farewell(a []string) string {
	return farewell(e.name, a)
}

// Password é exposta apenas para a exportação relacional.
func (e *Employee) Password() string { return e.password }

// IsNamed compara o nome de forma exata (sensível a maiúsculas).
func (e *Employee) IsNamed(name string) bool { return e.name == name }

// Authenticate compara a senha literalmente e marca o funcionário como autenticado.
func (e *Employee) Authenticate(password string) bool {
	if password != e.password {
		return false
	}
	e.authenticated = true
	return true
}

func (e *Employee) Greet() string {
	return fmt.Sprintf("Hello, %s!\nIf you experience a problem with the system,\n"+
		"please contact technical support.", e.name)
}

func farewell(name string, actions []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  Thank you for your visit, %s.  %s\n", strings.Repeat("-", 30), name, strings.Repeat("-", 30))
	if len(actions) == 0 {
		b.WriteString("\nYou have not done any action in specific.\n")
		return b.String()
	}
	b.WriteString("\nSummary of action this session:\n")
	for idx, action := range actions {
		fmt.Fprintf(&b, "    %d. %s\n", idx+1, action)
	}
	return b.String()
}
