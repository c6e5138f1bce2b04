// Package notify broadcasts roster-change results to operations consumers
// over MQTT, so dashboards learn about a what-if outcome without polling.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/skylane/rosterops/core/diff"
	"github.com/skylane/rosterops/infra/logger"
)

// Config defines the connection parameters for the change publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "rosterops-notify"
	}
	if c.Topic == "" {
		c.Topic = "rosterops/changes"
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("notify broker is required when enabled")
	}
	return nil
}

// Publisher sends diff results to interested consumers.
type Publisher interface {
	PublishDiff(res *diff.Result) error
	Close()
}

// NopPublisher discards every message.
type NopPublisher struct{}

func (NopPublisher) PublishDiff(*diff.Result) error { return nil }
func (NopPublisher) Close()                         {}

// changeMessage is the wire envelope for one published comparison.
type changeMessage struct {
	MessageID string        `json:"message_id"`
	EmittedAt time.Time     `json:"emitted_at"`
	Summary   diff.Summary  `json:"summary"`
	KPIDelta  diff.KPIDelta `json:"kpi_delta"`
	Changes   any           `json:"crew_changes"`
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli   paho.Client
	topic string
	qos   byte
	log   logger.Logger
}

// NewPahoPublisher connects to the broker and returns a ready publisher.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	cli := paho.NewClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(10*time.Second) || tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %v", tok.Error())
	}
	return &PahoPublisher{
		cli:   cli,
		topic: cfg.Topic,
		qos:   cfg.QoS,
		log:   logger.New("notify"),
	}, nil
}

// PublishDiff serializes the comparison result and publishes it.
func (p *PahoPublisher) PublishDiff(res *diff.Result) error {
	msg := changeMessage{
		MessageID: uuid.NewString(),
		EmittedAt: time.Now().UTC(),
		Summary:   res.Summary,
		KPIDelta:  res.KPIDelta,
		Changes:   res.CrewChanges,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode change message: %w", err)
	}
	tok := p.cli.Publish(p.topic, p.qos, false, payload)
	if !tok.WaitTimeout(10*time.Second) || tok.Error() != nil {
		return fmt.Errorf("publish change message: %v", tok.Error())
	}
	p.log.Debugw("published roster changes", map[string]any{
		"topic":         p.topic,
		"total_changes": res.Summary.TotalChanges,
	})
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}

var _ Publisher = (*PahoPublisher)(nil)
