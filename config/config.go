package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config armazena todas as configurações do aplicativo GoWarehouse.
type Config struct {
	// Geral
	Environment string
	LogLevel    string
	LogDir      string

	// Arquivos de dados (JSON)
	DataDir       string
	PersonnelFile string
	StockFile     string

	// Espelho do log de sessão (Redis). Vazio desativa.
	RedisAddr    string
	RedisTimeout time.Duration

	// Exportação relacional (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Métricas da sessão no formato textfile do Prometheus. Vazio desativa.
	MetricsFile string
}

// defaults centraliza os valores padrão de cada variável de ambiente.
var defaults = map[string]interface{}{
	"env":               "development",
	"log_level":         "info",
	"log_dir":           "log",
	"data_dir":          "data",
	"personnel_file":    "personnel.json",
	"stock_file":        "stock.json",
	"redis_addr":        "",
	"redis_timeout_sec": 2,
	"database_url":      "",
	"db_timeout_sec":    5,
	"metrics_file":      "",
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// O .env (se existir) já deve ter sido aplicado ao ambiente pelo main.
func LoadConfig() *Config {
	return load(viper.New())
}

func load(v *viper.Viper) *Config {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv() // LOG_LEVEL -> log_level, etc.

	return &Config{
		Environment: v.GetString("env"),
		LogLevel:    v.GetString("log_level"),
		LogDir:      v.GetString("log_dir"),

		DataDir:       v.GetString("data_dir"),
		PersonnelFile: v.GetString("personnel_file"),
		StockFile:     v.GetString("stock_file"),

		RedisAddr:    v.GetString("redis_addr"),
		RedisTimeout: getSeconds(v, "redis_timeout_sec"),

		DatabaseURL: v.GetString("database_url"),
		DBTimeout:   getSeconds(v, "db_timeout_sec"),

		MetricsFile: v.GetString("metrics_file"),
	}
}

// Funções Helpers (Auxiliares)

// getSeconds lê uma chave numérica em segundos; valores inválidos voltam ao padrão.
func getSeconds(v *viper.Viper, key string) time.Duration {
	raw := v.GetString(key)
	n := v.GetInt(key)
	if n <= 0 {
		def := defaults[key].(int)
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um inteiro positivo. Usando padrão (%d).", key, raw, def)
		n = def
	}
	return time.Duration(n) * time.Second
}

// MustDatabaseURL retorna DATABASE_URL, fatal se não estiver presente.
func (c *Config) MustDatabaseURL() string {
	if c.DatabaseURL == "" {
		log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", "DATABASE_URL")
	}
	return c.DatabaseURL
}

// PersonnelPath é o caminho completo do arquivo de funcionários.
func (c *Config) PersonnelPath() string {
	return filepath.Join(c.DataDir, c.PersonnelFile)
}

// StockPath é o caminho completo do arquivo de estoque.
func (c *Config) StockPath() string {
	return filepath.Join(c.DataDir, c.StockFile)
}

// SessionLogPath é o arquivo de log de sessão para o tipo de identidade ("employee" ou "user").
func (c *Config) SessionLogPath(kind string) string {
	return filepath.Join(c.LogDir, kind+"_log.txt")
}

// AppLogPath é o destino do log estruturado da aplicação.
func (c *Config) AppLogPath() string {
	return filepath.Join(c.LogDir, "app.log")
}
