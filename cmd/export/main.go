package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gowarehouse/config"
	"gowarehouse/internal/pkg/database"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/report"
	"gowarehouse/internal/repository/exportrepo"
	"gowarehouse/internal/repository/recordrepo"
	"gowarehouse/internal/service/loaderservice"
)

func main() {
	// Carrega o .env (opcional)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema: %v", err)
	}

	var (
		outPath  string
		apply    bool
		xlsxPath string
		cost     int
	)
	flag.StringVar(&outPath, "out", "insert_data.sql", "file for the generated INSERT statements (empty to skip)")
	flag.BoolVar(&apply, "apply", false, "load roster and stock into DATABASE_URL in one transaction")
	flag.StringVar(&xlsxPath, "xlsx", "", "optional XLSX stock report path")
	flag.IntVar(&cost, "bcrypt-cost", 0, "bcrypt cost for password hashes (0 = default)")
	flag.Parse()

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel, os.Stderr)

	// 1. Carrega os dados de origem
	loader := loaderservice.NewService(recordrepo.NewRecordRepository(appLog), appLog)
	roster, warehouses, err := loader.LoadAll(cfg.PersonnelPath(), cfg.StockPath())
	if err != nil {
		appLog.Fatal("Falha ao carregar os dados de origem.", err)
	}
	hasher := exportrepo.NewBcryptHasher(cost)

	// 2. Script SQL
	if outPath != "" {
		script, err := exportrepo.GenerateInserts(roster, warehouses, hasher)
		if err != nil {
			appLog.Fatal("Falha ao gerar INSERTs.", err)
		}
		if err := os.WriteFile(outPath, []byte(script), 0o644); err != nil {
			appLog.Fatal("Falha ao gravar o script SQL.", err)
		}
		fmt.Printf("SQL written to %s\n", outPath)
	}

	// 3. Carga transacional opcional
	if apply {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.NewPostgresDB(cfg.MustDatabaseURL(), cfg.DBTimeout)
		if err != nil {
			appLog.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()

		store := exportrepo.NewStore(db, cfg.DBTimeout, hasher, appLog)
		if err := store.Load(ctx, roster, warehouses); err != nil {
			appLog.Fatal("Carga relacional falhou; nada foi gravado.", err)
		}
		fmt.Println("Database load committed")
	}

	// 4. Relatório XLSX opcional
	if xlsxPath != "" {
		if err := report.WriteStockReport(xlsxPath, warehouses); err != nil {
			appLog.Fatal("Falha ao gravar relatório XLSX.", err)
		}
		fmt.Printf("Stock report written to %s\n", xlsxPath)
	}
}
