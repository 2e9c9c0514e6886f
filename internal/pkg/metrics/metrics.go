package metrics

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados possíveis de uma tentativa de pedido
const (
	OutcomePlaced    = "placed"
	OutcomeCapped    = "capped"
	OutcomeCancelled = "cancelled"
	OutcomeDenied    = "denied"
)

// Session agrupa as métricas de uma execução do CLI em um registry próprio.
// Não há servidor HTTP: o conteúdo é gravado em arquivo ao fim da sessão.
type Session struct {
	registry      *prometheus.Registry
	searches      prometheus.Counter
	searchMatches prometheus.Histogram
	orders        *prometheus.CounterVec
	unitsOrdered  prometheus.Counter
	actions       *prometheus.CounterVec
}

// NewSession cria e registra todos os coletores.
func NewSession() *Session {
	m := &Session{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "warehouse",
			Name:      "searches_total",
			Help:      "Number of item searches.",
		}),
		searchMatches: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "warehouse",
			Name:      "search_matches",
			Help:      "Matches returned per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warehouse",
			Name:      "orders_total",
			Help:      "Order attempts by outcome.",
		}, []string{"outcome"}),
		unitsOrdered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "warehouse",
			Name:      "units_ordered_total",
			Help:      "Units removed from stock by orders.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warehouse",
			Name:      "session_actions_total",
			Help:      "Recorded session actions by identity kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.searches, m.searchMatches, m.orders, m.unitsOrdered, m.actions)
	return m
}

// Registry expõe o registry (usado nos testes e no WriteTextfile).
func (m *Session) Registry() *prometheus.Registry { return m.registry }

func (m *Session) ObserveSearch(matches int) {
	m.searches.Inc()
	m.searchMatches.Observe(float64(matches))
}

// ObserveOrder conta a tentativa; units só é somado quando há retirada.
func (m *Session) ObserveOrder(outcome string, units int) {
	m.orders.WithLabelValues(outcome).Inc()
	if units > 0 {
		m.unitsOrdered.Add(float64(units))
	}
}

func (m *Session) ObserveAction(kind string) {
	m.actions.WithLabelValues(kind).Inc()
}

// WriteTextfile grava as métricas no formato do textfile collector do node_exporter.
// Caminho vazio não faz nada.
func (m *Session) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
