package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Driver pq para PostgreSQL (registra "postgres" no database/sql)
	_ "github.com/lib/pq"
)

// NewPostgresDB abre o pool de conexões e testa o acesso com um ping limitado por timeout.
// Usado apenas pela exportação relacional e pelo runner de migrações.
func NewPostgresDB(dataSourceName string, timeout time.Duration) (*sql.DB, error) {
	// 1. Abrir o pool (nenhuma conexão é feita ainda)
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir a conexão com o DB: %w", err)
	}

	// 2. Testar a conexão imediatamente
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao realizar o ping inicial no DB: %w", err)
	}

	// 3. Pool pequeno: um único processo CLI faz uma carga por vez
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)

	return db, nil
}
