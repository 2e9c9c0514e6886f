package exportrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"gowarehouse/internal/domain"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/logger"
)

// Hasher transforma a senha do roster no valor gravado em employee.password_hash.
type Hasher interface {
	Hash(password string) (string, error)
}

// BcryptHasher usa bcrypt com o custo configurado.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher cria o hasher; custo zero usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// EmployeeRow é uma linha da tabela employee. HeadOf vazio vira NULL.
type EmployeeRow struct {
	Name         string
	PasswordHash string
	HeadOf       string
}

// ItemRow é uma linha da tabela item.
type ItemRow struct {
	ID          string
	State       string
	Category    string
	DateOfStock sql.NullTime
	WarehouseID string
}

// Rows contém as linhas das duas tabelas, já na ordem de inserção.
type Rows struct {
	Employees []EmployeeRow
	Items     []ItemRow
}

// BuildRows achata o roster (pré-ordem, chefes antes dos subordinados) e o catálogo.
// Um nome repetido na árvore é gravado uma única vez, com o primeiro chefe encontrado.
func BuildRows(roster []*domain.Employee, warehouses []*domain.Warehouse, hasher Hasher) (Rows, error) {
	var rows Rows
	seen := make(map[string]bool)

	var walk func(employees []*domain.Employee, head string) error
	walk = func(employees []*domain.Employee, head string) error {
		for _, e := range employees {
			if !seen[e.Name()] {
				seen[e.Name()] = true
				hash, err := hasher.Hash(e.Password())
				if err != nil {
					return apperror.NewInternalError(fmt.Sprintf("failed to hash password of %s", e.Name()), err)
				}
				rows.Employees = append(rows.Employees, EmployeeRow{Name: e.Name(), PasswordHash: hash, HeadOf: head})
			}
			if err := walk(e.HeadOf, e.Name()); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(roster, ""); err != nil {
		return Rows{}, err
	}

	for _, warehouse := range warehouses {
		for _, item := range warehouse.Stock {
			row := ItemRow{ID: item.ID, State: item.State, Category: item.Category, WarehouseID: warehouse.ID}
			if at, err := item.StockedAt(); err == nil {
				row.DateOfStock = sql.NullTime{Time: at, Valid: true}
			}
			rows.Items = append(rows.Items, row)
		}
	}
	return rows, nil
}

// GenerateInserts produz o script SQL com um INSERT por funcionário e por item.
func GenerateInserts(roster []*domain.Employee, warehouses []*domain.Warehouse, hasher Hasher) (string, error) {
	rows, err := BuildRows(roster, warehouses, hasher)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, e := range rows.Employees {
		fmt.Fprintf(&b, "INSERT INTO employee (name, password_hash, head_of) VALUES (%s, %s, %s);\n",
			pq.QuoteLiteral(e.Name), pq.QuoteLiteral(e.PasswordHash), nullable(e.HeadOf))
	}
	for _, i := range rows.Items {
		date := "NULL"
		if i.DateOfStock.Valid {
			date = pq.QuoteLiteral(i.DateOfStock.Time.Format(domain.StockTimeLayout))
		}
		fmt.Fprintf(&b, "INSERT INTO item (id, state, category, date_of_stock, warehouse_id) VALUES (%s, %s, %s, %s, %s);\n",
			pq.QuoteLiteral(i.ID), pq.QuoteLiteral(i.State), pq.QuoteLiteral(i.Category), date, pq.QuoteLiteral(i.WarehouseID))
	}
	return b.String(), nil
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return pq.QuoteLiteral(s)
}

// Store carrega o roster e o catálogo no PostgreSQL em uma única transação.
type Store struct {
	DB        *sql.DB
	DBTimeout time.Duration
	hasher    Hasher
	logger    logger.Logger
}

// NewStore cria uma nova instância do Store, injetando o DB.
func NewStore(db *sql.DB, dbTimeout time.Duration, hasher Hasher, logger logger.Logger) *Store {
	return &Store{DB: db, DBTimeout: dbTimeout, hasher: hasher, logger: logger}
}

const insertEmployeeSQL = `INSERT INTO employee (name, password_hash, head_of) VALUES ($1, $2, $3)`

// Load grava tudo ou nada: qualquer falha desfaz a transação inteira.
func (s *Store) Load(ctx context.Context, roster []*domain.Employee, warehouses []*domain.Warehouse) (err error) {
	rows, err := BuildRows(roster, warehouses, s.hasher)
	if err != nil {
		return err
	}
	s.logger.Debug("Iniciando carga relacional.", map[string]interface{}{"employees": len(rows.Employees), "items": len(rows.Items)})

	// 1. Configura Contexto com Timeout
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	// 2. Abre a transação; rollback se algo falhar no caminho
	tx, err := s.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return apperror.NewDBError("failed to begin export transaction", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Error("Falha no rollback da carga relacional.", rbErr)
			}
		}
	}()

	// 3. Funcionários (chefes primeiro, por causa da FK head_of)
	for _, e := range rows.Employees {
		head := sql.NullString{String: e.HeadOf, Valid: e.HeadOf != ""}
		if _, err = tx.ExecContext(ctxTimeout, insertEmployeeSQL, e.Name, e.PasswordHash, head); err != nil {
			return translate("employee", err)
		}
	}

	// 4. Itens via COPY
	stmt, err := tx.PrepareContext(ctxTimeout, pq.CopyIn("item", "id", "state", "category", "date_of_stock", "warehouse_id"))
	if err != nil {
		return translate("item", err)
	}
	for _, i := range rows.Items {
		if _, err = stmt.ExecContext(ctxTimeout, i.ID, i.State, i.Category, i.DateOfStock, i.WarehouseID); err != nil {
			stmt.Close()
			return translate("item", err)
		}
	}
	if _, err = stmt.ExecContext(ctxTimeout); err != nil {
		stmt.Close()
		return translate("item", err)
	}
	if err = stmt.Close(); err != nil {
		return translate("item", err)
	}

	// 5. Commit
	if err = tx.Commit(); err != nil {
		return apperror.NewDBError("failed to commit export transaction", err)
	}

	s.logger.Info("Carga relacional concluída.", map[string]interface{}{"employees": len(rows.Employees), "items": len(rows.Items)})
	return nil
}

// translate converte erros do driver em AppError com uma mensagem útil.
func translate(table string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return apperror.NewDBError(fmt.Sprintf("%s already loaded (%s)", table, pqErr.Constraint), err)
		case "undefined_table":
			return apperror.NewDBError(fmt.Sprintf("table %s does not exist, run the migrations first", table), err)
		}
	}
	return apperror.NewDBError(fmt.Sprintf("failed to insert into %s", table), err)
}
