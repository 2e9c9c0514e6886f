package journal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// ListPusher é o subconjunto do cliente Redis usado pelo espelho.
type ListPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// KeyPrefix é o prefixo das listas Redis: warehouse:log:<kind>.
const KeyPrefix = "warehouse:log:"

// RedisMirror replica cada entrada em uma lista Redis.
type RedisMirror struct {
	client    ListPusher
	timeout   time.Duration
	sessionID string
}

// mirrorRecord é o payload gravado na lista.
type mirrorRecord struct {
	Session  string `json:"session"`
	Username string `json:"username"`
	Action   string `json:"action"`
	At       string `json:"at"`
	Line     string `json:"line"`
}

// NewRedisMirror conecta ao Redis e testa a conexão com PING.
func NewRedisMirror(addr string, timeout time.Duration, sessionID string) (*RedisMirror, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr, // Endereço do Redis (e.g., "localhost:6379")
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return NewRedisMirrorWithClient(rdb, timeout, sessionID), nil
}

// NewRedisMirrorWithClient usa um cliente já criado (ou um mock nos testes).
func NewRedisMirrorWithClient(client ListPusher, timeout time.Duration, sessionID string) *RedisMirror {
	return &RedisMirror{client: client, timeout: timeout, sessionID: sessionID}
}

// Append grava a entrada como JSON no fim da lista do tipo de identidade.
func (m *RedisMirror) Append(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(mirrorRecord{
		Session:  m.sessionID,
		Username: entry.Username,
		Action:   entry.Action,
		At:       entry.At.Format(TimestampLayout),
		Line:     entry.Format(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.client.RPush(ctx, KeyPrefix+entry.Kind, payload).Err()
}
