package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gowarehouse/config"
	apperror "gowarehouse/internal/errors"
	"gowarehouse/internal/pkg/journal"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/metrics"

	// Camadas para Injeção de Dependências
	"gowarehouse/internal/repository/recordrepo" // Acesso a Dados
	"gowarehouse/internal/service/authservice"   // Lógica de Negócio
	"gowarehouse/internal/service/catalogservice"
	"gowarehouse/internal/service/loaderservice"
	"gowarehouse/internal/service/orderservice"
	"gowarehouse/internal/shell" // Apresentação
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Sem .env seguimos apenas com o ambiente do sistema.
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	// O stdout pertence ao shell interativo; o log estruturado vai para LOG_DIR/app.log.
	cfg := config.LoadConfig()
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		log.Fatalf("❌ Não foi possível criar o diretório de logs %s: %v", cfg.LogDir, err)
	}
	logFile, err := os.OpenFile(cfg.AppLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("❌ Não foi possível abrir %s: %v", cfg.AppLogPath(), err)
	}
	defer logFile.Close()

	appLog := logger.NewLogger(cfg.LogLevel, logFile)
	sessionID := uuid.NewString()
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "session": sessionID})

	// 2. Carga do Catalog Model (dados inválidos são fatais)
	recordRepo := recordrepo.NewRecordRepository(appLog)
	loader := loaderservice.NewService(recordRepo, appLog)
	roster, warehouses, err := loader.LoadAll(cfg.PersonnelPath(), cfg.StockPath())
	if err != nil {
		_, message := apperror.Describe(err)
		fmt.Fprintln(os.Stderr, message)
		appLog.Fatal("Falha ao carregar os dados iniciais.", err)
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Shell
	authSvc := authservice.NewService(roster, appLog)
	catalogSvc := catalogservice.NewService(warehouses, appLog)
	orderSvc := orderservice.NewService(warehouses, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	// 4. Log de sessão: arquivo sempre, Redis quando configurado
	var mirrors []journal.Journal
	if cfg.RedisAddr != "" {
		mirror, err := journal.NewRedisMirror(cfg.RedisAddr, cfg.RedisTimeout, sessionID)
		if err != nil {
			appLog.Warn("Redis indisponível; log de sessão apenas em arquivo.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		} else {
			mirrors = append(mirrors, mirror)
			appLog.Info("Espelho Redis do log de sessão ativo.", map[string]interface{}{"addr": cfg.RedisAddr})
		}
	}
	sessionJournal := journal.NewTee(journal.NewFileJournal(cfg.LogDir), appLog, mirrors...)
	appLog.Debug("Log de sessão configurado.", map[string]interface{}{
		"employee_log": cfg.SessionLogPath("employee"),
		"user_log":     cfg.SessionLogPath("user"),
	})

	sessionMetrics := metrics.NewSession()

	// 5. Execução da sessão
	sh := shell.NewShell(os.Stdin, os.Stdout, authSvc, catalogSvc, orderSvc, sessionJournal, sessionMetrics, appLog)
	runErr := sh.Run(context.Background())

	if err := sessionMetrics.WriteTextfile(cfg.MetricsFile); err != nil {
		appLog.Warn("Falha ao gravar métricas da sessão.", map[string]interface{}{"path": cfg.MetricsFile, "error": err.Error()})
	}

	if runErr != nil {
		_, message := apperror.Describe(runErr)
		fmt.Fprintln(os.Stderr, message)
		appLog.Error("Sessão encerrada com erro.", runErr)
		os.Exit(1)
	}
}
