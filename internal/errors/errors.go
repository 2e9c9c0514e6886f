package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError é a interface central para todos os erros customizados do GoWarehouse.
// Ela permite que o código externo (Shell, comandos) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string      // Implementa a interface error padrão do Go
	Category() string   // Categoria do erro (e.g., "MISSING_FIELD", "PERMISSION_DENIED")
	Recoverable() bool  // Indica se o Shell pode voltar ao mesmo prompt
	Unwrap() error      // Permite encapsular erros subjacentes (original error)
}

// --- Erros de Carga (fatais) ---

// MissingFieldError representa um registro de entrada sem um campo obrigatório.
type MissingFieldError struct {
	Field string
	Msg   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("MissingField: %s is missing. %s.", e.Field, e.Msg)
}
func (e *MissingFieldError) Category() string  { return "MISSING_FIELD" }
func (e *MissingFieldError) Recoverable() bool { return false }
func (e *MissingFieldError) Unwrap() error     { return nil }

// NewMissingFieldError cria um novo erro de campo ausente.
func NewMissingFieldError(field, msg string) AppError {
	return &MissingFieldError{Field: field, Msg: msg}
}

// UnknownModelError é retornado quando o loader recebe um modelo que não sabe construir.
type UnknownModelError struct {
	Model string
}

func (e *UnknownModelError) Error() string     { return fmt.Sprintf("UnknownModel: %q", e.Model) }
func (e *UnknownModelError) Category() string  { return "UNKNOWN_MODEL" }
func (e *UnknownModelError) Recoverable() bool { return false }
func (e *UnknownModelError) Unwrap() error     { return nil }

// NewUnknownModelError cria um novo erro de modelo desconhecido.
func NewUnknownModelError(model string) AppError {
	return &UnknownModelError{Model: model}
}

// --- Erros de Sessão (recuperáveis) ---

// AuthenticationFailedError indica usuário ou senha inválidos.
type AuthenticationFailedError struct {
	Msg string
}

func (e *AuthenticationFailedError) Error() string     { return fmt.Sprintf("Authentication failed: %s", e.Msg) }
func (e *AuthenticationFailedError) Category() string  { return "AUTHENTICATION_FAILED" }
func (e *AuthenticationFailedError) Recoverable() bool { return true }
func (e *AuthenticationFailedError) Unwrap() error     { return nil }

// NewAuthenticationFailedError cria um novo erro de autenticação.
func NewAuthenticationFailedError(msg string) AppError {
	return &AuthenticationFailedError{Msg: msg}
}

// PermissionDeniedError indica uma operação reservada a funcionários autenticados.
type PermissionDeniedError struct {
	Msg string
}

func (e *PermissionDeniedError) Error() string     { return fmt.Sprintf("Permission denied: %s", e.Msg) }
func (e *PermissionDeniedError) Category() string  { return "PERMISSION_DENIED" }
func (e *PermissionDeniedError) Recoverable() bool { return true }
func (e *PermissionDeniedError) Unwrap() error     { return nil }

// NewPermissionDeniedError cria um novo erro de permissão.
func NewPermissionDeniedError(msg string) AppError {
	return &PermissionDeniedError{Msg: msg}
}

// InvalidQuantityError representa uma quantidade de pedido não positiva ou não numérica.
type InvalidQuantityError struct {
	Input string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("Invalid quantity %q: please enter a positive integer", e.Input)
}
func (e *InvalidQuantityError) Category() string  { return "INVALID_QUANTITY" }
func (e *InvalidQuantityError) Recoverable() bool { return true }
func (e *InvalidQuantityError) Unwrap() error     { return nil }

// NewInvalidQuantityError cria um novo erro de quantidade inválida.
func NewInvalidQuantityError(input string) AppError {
	return &InvalidQuantityError{Input: input}
}

// InvalidMenuSelectionError representa uma opção de menu fora do intervalo ou não numérica.
type InvalidMenuSelectionError struct {
	Input string
	Min   int
	Max   int
}

func (e *InvalidMenuSelectionError) Error() string {
	return fmt.Sprintf("Invalid input %q! Please enter a number between %d and %d.", e.Input, e.Min, e.Max)
}
func (e *InvalidMenuSelectionError) Category() string  { return "INVALID_MENU_SELECTION" }
func (e *InvalidMenuSelectionError) Recoverable() bool { return true }
func (e *InvalidMenuSelectionError) Unwrap() error     { return nil }

// NewInvalidMenuSelectionError cria um novo erro de seleção de menu.
func NewInvalidMenuSelectionError(input string, min, max int) AppError {
	return &InvalidMenuSelectionError{Input: input, Min: min, Max: max}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas de I/O, driver ou lógica.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL, do sistema de arquivos)
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Internal error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Internal error: %s", e.Msg)
}
func (e *InternalError) Category() string  { return "INTERNAL_ERROR" }
func (e *InternalError) Recoverable() bool { return false }
func (e *InternalError) Unwrap() error     { return e.Err }

// NewInternalError cria um erro interno encapsulando a causa.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(msg+" (DB)", err)
}

// --- Helpers para o Shell (Tradução Final) ---

// IsRecoverable informa se o erro permite voltar ao prompt atual.
// Erros não tipados são tratados como fatais.
func IsRecoverable(err error) bool {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Recoverable()
	}
	return false
}

// Describe traduz um erro para categoria e mensagem exibíveis.
func Describe(err error) (string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Category(), appErr.Error()
	}
	return "UNKNOWN_ERROR", "An unexpected error occurred."
}
