package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gowarehouse/internal/pkg/logger"
)

// TimestampLayout tem precisão de milissegundos.
const TimestampLayout = "2006-01-02 15:04:05.000"

// Entry é uma ação da sessão.
type Entry struct {
	Kind     string // "employee" ou "user"
	Username string
	Action   string
	At       time.Time
}

// Format produz a linha "{username}. {action}. {timestamp}."
func (e Entry) Format() string {
	return fmt.Sprintf("%s. %s. %s.", e.Username, e.Action, e.At.Format(TimestampLayout))
}

// Journal define o contrato de qualquer destino do log de sessão.
type Journal interface {
	Append(ctx context.Context, entry Entry) error
}

// FileJournal grava um arquivo append-only por tipo de identidade: <dir>/<kind>_log.txt.
type FileJournal struct {
	dir string
}

// NewFileJournal cria o journal de arquivos no diretório indicado.
func NewFileJournal(dir string) *FileJournal {
	return &FileJournal{dir: dir}
}

// Path retorna o arquivo usado para o tipo de identidade.
func (j *FileJournal) Path(kind string) string {
	return filepath.Join(j.dir, kind+"_log.txt")
}

// Append abre (ou cria) o arquivo, escreve a linha e faz fsync antes de fechar.
func (j *FileJournal) Append(_ context.Context, entry Entry) error {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return fmt.Errorf("journal: create dir: %w", err)
	}
	f, err := os.OpenFile(j.Path(entry.Kind), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("journal: open: %w", err)
	}
	if _, err := f.WriteString(entry.Format() + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("journal: write: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("journal: sync: %w", err)
	}
	return f.Close()
}

// Tee grava no journal principal e replica nos espelhos.
// Falhas de espelho são apenas registradas; só o principal decide o erro.
type Tee struct {
	primary Journal
	mirrors []Journal
	logger  logger.Logger
}

// NewTee cria um Tee. Espelhos nil são ignorados.
func NewTee(primary Journal, logger logger.Logger, mirrors ...Journal) *Tee {
	t := &Tee{primary: primary, logger: logger}
	for _, m := range mirrors {
		if m != nil {
			t.mirrors = append(t.mirrors, m)
		}
	}
	return t
}

func (t *Tee) Append(ctx context.Context, entry Entry) error {
	if err := t.primary.Append(ctx, entry); err != nil {
		return err
	}
	for _, m := range t.mirrors {
		if err := m.Append(ctx, entry); err != nil {
			t.logger.Warn("Falha ao replicar entrada do log de sessão.", map[string]interface{}{"kind": entry.Kind, "error": err.Error()})
		}
	}
	return nil
}
