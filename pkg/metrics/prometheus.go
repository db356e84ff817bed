// Package metrics provides Prometheus metrics for roster editing sessions.
// The editor is a batch job, so metrics are written to a textfile for the
// node exporter rather than served.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics of a session.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Pipeline
	stepsTotal    *prometheus.CounterVec
	stepFailures  *prometheus.CounterVec
	stepDuration  *prometheus.HistogramVec
	commitsTotal  prometheus.Counter
	resetsTotal   prometheus.Counter
	dryRunSkipped prometheus.Counter

	// Tables
	tableRows *prometheus.GaugeVec

	// Transforms
	jerseyReassignments prometheus.Counter
	salariesAssigned    prometheus.Counter
	freeAgentsCleared   prometheus.Counter
	depthRows           prometheus.Gauge
	depthVacancies      *prometheus.CounterVec
	transactionsApplied *prometheus.CounterVec

	// Validation
	validationFindings *prometheus.GaugeVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rostra",
		subsystem:        "session",
		histogramBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.stepsTotal = auto.NewCounterVec(m.counterOpts("steps_total", "Pipeline steps run, by step"), []string{"step"})
	m.stepFailures = auto.NewCounterVec(m.counterOpts("step_failures_total", "Pipeline steps that failed, by step"), []string{"step"})
	m.stepDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "step_duration_seconds",
		Help:        "Pipeline step duration in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"step"})
	m.commitsTotal = auto.NewCounter(m.counterOpts("commits_total", "Snapshots committed to the session"))
	m.resetsTotal = auto.NewCounter(m.counterOpts("resets_total", "Session resets to the loaded snapshot"))
	m.dryRunSkipped = auto.NewCounter(m.counterOpts("dry_run_skipped_total", "Step results discarded by dry-run"))

	m.tableRows = auto.NewGaugeVec(m.gaugeOpts("table_rows", "Rows in the current snapshot, by table"), []string{"table"})

	m.jerseyReassignments = auto.NewCounter(m.counterOpts("jersey_reassignments_total", "Players given a new jersey number"))
	m.salariesAssigned = auto.NewCounter(m.counterOpts("salaries_assigned_total", "Contracts created for unsigned players"))
	m.freeAgentsCleared = auto.NewCounter(m.counterOpts("free_agents_cleared_total", "Free agents whose contract was cleared"))
	m.depthRows = auto.NewGauge(m.gaugeOpts("depth_rows", "Rows in the last built depth chart"))
	m.depthVacancies = auto.NewCounterVec(m.counterOpts("depth_vacancies_total", "Depth chart slots left empty, by position"), []string{"position"})
	m.transactionsApplied = auto.NewCounterVec(m.counterOpts("transactions_applied_total", "Transactions applied, by type"), []string{"tx"})

	m.validationFindings = auto.NewGaugeVec(m.gaugeOpts("validation_findings", "Findings of the last validation run, by check"), []string{"check"})
}

// RecordStep counts a pipeline step and its duration.
func (m *Manager) RecordStep(step string, seconds float64, failed bool) {
	m.stepsTotal.WithLabelValues(step).Inc()
	m.stepDuration.WithLabelValues(step).Observe(seconds)
	if failed {
		m.stepFailures.WithLabelValues(step).Inc()
	}
}

// RecordCommit counts a committed snapshot.
func (m *Manager) RecordCommit() { m.commitsTotal.Inc() }

// RecordReset counts a session reset.
func (m *Manager) RecordReset() { m.resetsTotal.Inc() }

// RecordDryRunSkip counts a step result dropped by dry-run.
func (m *Manager) RecordDryRunSkip() { m.dryRunSkipped.Inc() }

// UpdateTableRows sets the row count of a table.
func (m *Manager) UpdateTableRows(table string, rows int) {
	m.tableRows.WithLabelValues(table).Set(float64(rows))
}

// RecordJerseyReassignments adds n reassigned jerseys.
func (m *Manager) RecordJerseyReassignments(n int) { m.jerseyReassignments.Add(float64(n)) }

// RecordSalaries adds assigned contracts and cleared free agents.
func (m *Manager) RecordSalaries(assigned, cleared int) {
	m.salariesAssigned.Add(float64(assigned))
	m.freeAgentsCleared.Add(float64(cleared))
}

// UpdateDepthRows sets the size of the last depth chart.
func (m *Manager) UpdateDepthRows(rows int) { m.depthRows.Set(float64(rows)) }

// RecordDepthVacancy counts an empty depth chart slot.
func (m *Manager) RecordDepthVacancy(position string) {
	m.depthVacancies.WithLabelValues(position).Inc()
}

// RecordTransactions adds n applied transactions of one type.
func (m *Manager) RecordTransactions(tx string, n int) {
	m.transactionsApplied.WithLabelValues(tx).Add(float64(n))
}

// UpdateValidationFindings sets the finding count of a check.
func (m *Manager) UpdateValidationFindings(check string, n int) {
	m.validationFindings.WithLabelValues(check).Set(float64(n))
}

// Global helpers.

// RecordStep counts a pipeline step on the global manager.
func RecordStep(step string, seconds float64, failed bool) {
	globalManager.RecordStep(step, seconds, failed)
}

// RecordCommit counts a committed snapshot.
func RecordCommit() { globalManager.RecordCommit() }

// RecordReset counts a session reset.
func RecordReset() { globalManager.RecordReset() }

// RecordDryRunSkip counts a step result dropped by dry-run.
func RecordDryRunSkip() { globalManager.RecordDryRunSkip() }

// UpdateTableRows sets the row count of a table.
func UpdateTableRows(table string, rows int) { globalManager.UpdateTableRows(table, rows) }

// RecordJerseyReassignments adds n reassigned jerseys.
func RecordJerseyReassignments(n int) { globalManager.RecordJerseyReassignments(n) }

// RecordSalaries adds assigned contracts and cleared free agents.
func RecordSalaries(assigned, cleared int) { globalManager.RecordSalaries(assigned, cleared) }

// UpdateDepthRows sets the size of the last depth chart.
func UpdateDepthRows(rows int) { globalManager.UpdateDepthRows(rows) }

// RecordDepthVacancy counts an empty depth chart slot.
func RecordDepthVacancy(position string) { globalManager.RecordDepthVacancy(position) }

// RecordTransactions adds applied transactions on the global manager.
func RecordTransactions(tx string, n int) { globalManager.RecordTransactions(tx, n) }

// UpdateValidationFindings sets the finding count of a check.
func UpdateValidationFindings(check string, n int) { globalManager.UpdateValidationFindings(check, n) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the custom registry in the text exposition format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteTextfile, path, err)
	}
	return nil
}
