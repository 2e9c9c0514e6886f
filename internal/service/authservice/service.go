package authservice

import (
	"strings"
	"unicode"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// Service valida credenciais contra o roster de funcionários.
type Service struct {
	roster []*domain.Employee
	logger logger.Logger
}

// NewService cria uma nova instância do serviço de autenticação.
func NewService(roster []*domain.Employee, logger logger.Logger) *Service {
	return &Service{roster: roster, logger: logger}
}

// Guest cria uma identidade de visitante. Nenhuma credencial é verificada.
func (s *Service) Guest(name string) domain.Identity {
	s.logger.Info("Sessão de visitante iniciada.", map[string]interface{}{"name": name})
	return domain.NewGuest(name)
}

// Authenticate procura o funcionário pelo nome exato e compara a senha literalmente.
// O chamador é responsável por normalizar o nome (ver NormalizeName) antes da busca.
func (s *Service) Authenticate(name, password string) (*domain.Employee, error) {
	s.logger.Debug("Iniciando autenticação.", map[string]interface{}{"name_attempt": name})

	for _, staff := range s.roster {
		if !staff.IsNamed(name) {
			continue
		}
		if staff.Authenticate(password) {
			s.logger.Info("Funcionário autenticado.", map[string]interface{}{"name": name})
			return staff, nil
		}
	}

	// Não diferenciamos usuário inexistente de senha incorreta.
	s.logger.Warn("Falha de autenticação.", map[string]interface{}{"name_attempt": name})
	return nil, apperror.NewAuthenticationFailedError("incorrect password for the given username")
}

// NormalizeName deixa a primeira letra maiúscula e as demais minúsculas ("nICOLE" -> "Nicole").
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
