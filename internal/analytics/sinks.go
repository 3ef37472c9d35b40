package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// ErrCollectorRejected is returned when the collector answers with a non-2xx status.
var ErrCollectorRejected = errors.New("collector rejected event")

// MeasurementSink posts hits to a GA4 measurement protocol collector.
type MeasurementSink struct {
	endpoint string
	client   *http.Client
}

// NewMeasurementSink targets collectorURL with the given measurement ID and
// API secret. A nil client uses http.DefaultClient; per-request deadlines
// come from the Tracker's context.
func NewMeasurementSink(collectorURL, measurementID, apiSecret string, client *http.Client) (*MeasurementSink, error) {
	u, err := url.Parse(collectorURL)
	if err != nil {
		return nil, fmt.Errorf("invalid collector url: %w", err)
	}
	q := u.Query()
	q.Set("measurement_id", measurementID)
	if apiSecret != "" {
		q.Set("api_secret", apiSecret)
	}
	u.RawQuery = q.Encode()

	if client == nil {
		client = http.DefaultClient
	}
	return &MeasurementSink{endpoint: u.String(), client: client}, nil
}

type measurementEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

type measurementBody struct {
	ClientID        string             `json:"client_id"`
	TimestampMicros int64              `json:"timestamp_micros,omitempty"`
	Events          []measurementEvent `json:"events"`
}

func (s *MeasurementSink) Send(ctx context.Context, hit Hit) error {
	body, err := json.Marshal(measurementBody{
		ClientID:        hit.ClientID,
		TimestampMicros: hit.Time.UnixMicro(),
		Events:          []measurementEvent{{Name: string(hit.Name), Params: hit.Params}},
	})
	if err != nil {
		return fmt.Errorf("encode hit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrCollectorRejected, resp.StatusCode)
	}
	return nil
}

// MetricsSink counts hits per event in Prometheus.
type MetricsSink struct {
	events *prometheus.CounterVec
}

// NewMetricsSink registers an events counter on reg under namespace.
func NewMetricsSink(reg prometheus.Registerer, namespace string) *MetricsSink {
	factory := promauto.With(reg)
	return &MetricsSink{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "events_total",
			Help:      "Total number of visitor interaction events tracked",
		}, []string{"event"}),
	}
}

func (s *MetricsSink) Send(_ context.Context, hit Hit) error {
	s.events.WithLabelValues(string(hit.Name)).Inc()
	return nil
}

// LogSink writes hits to a zap logger at debug level.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(_ context.Context, hit Hit) error {
	s.logger.Debug("event",
		zap.String("name", string(hit.Name)),
		zap.String("client_id", hit.ClientID),
		zap.Any("params", hit.Params))
	return nil
}

var (
	_ Sink = (*MeasurementSink)(nil)
	_ Sink = (*MetricsSink)(nil)
	_ Sink = (*LogSink)(nil)
)
