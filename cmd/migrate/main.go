package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"gowarehouse/config"
	"gowarehouse/internal/pkg/database"
	"gowarehouse/internal/pkg/logger"
)

// Aplica (ou desfaz) o schema employee/item usado pela exportação relacional.
// Uso: migrate [-dir ./sql] [up|down|status|version]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura: %v", err)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "directory with migration files")
	flag.Parse()

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel, os.Stderr)

	db, err := database.NewPostgresDB(cfg.MustDatabaseURL(), cfg.DBTimeout)
	if err != nil {
		appLog.Fatal("goose: falha ao conectar ao DB.", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(migrationsDir))
	if err != nil {
		appLog.Fatal("goose: falha ao montar o provider.", err)
	}

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}
	ctx := context.Background()

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			appLog.Fatal("goose up falhou.", err)
		}
		for _, r := range results {
			fmt.Printf("applied %s (%s)\n", r.Source.Path, r.Duration)
		}
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			appLog.Fatal("goose down falhou.", err)
		}
		fmt.Printf("rolled back %s\n", result.Source.Path)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			appLog.Fatal("goose status falhou.", err)
		}
		for _, s := range statuses {
			fmt.Printf("%-8s %s\n", s.State, s.Source.Path)
		}
	case "version":
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			appLog.Fatal("goose version falhou.", err)
		}
		fmt.Printf("version %d\n", version)
	default:
		appLog.Fatal("Comando de migração desconhecido.", fmt.Errorf("unknown command %q", command))
	}
	appLog.Info("Migração concluída.", map[string]interface{}{"command": command})
}
