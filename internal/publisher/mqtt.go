package publisher

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/jgoulah/meterlog/internal/config"
	"github.com/jgoulah/meterlog/pkg/models"
)

// Publisher carries reading events over MQTT in both directions: local
// mutations are published out, and externally-created readings arrive on
// the incoming topic to be folded into the repository.
type Publisher struct {
	client      mqtt.Client
	topicPrefix string
}

// New connects to the configured broker
func New(cfg config.MQTTConfig, topicPrefix string) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT is not enabled in config")
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID("meterlog-" + uuid.New().String()[:8])
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	return &Publisher{client: client, topicPrefix: topicPrefix}, nil
}

// PublishReading sends a reading event on <prefix>/readings
func (p *Publisher) PublishReading(r models.MeterReading) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding reading: %w", err)
	}

	topic := fmt.Sprintf("%s/readings", p.topicPrefix)
	if token := p.client.Publish(topic, 1, false, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publishing reading: %w", token.Error())
	}

	return nil
}

// Subscribe listens on <prefix>/readings/new for readings created
// elsewhere. Malformed payloads are passed to onError and skipped.
func (p *Publisher) Subscribe(onReading func(models.MeterReading), onError func(error)) error {
	topic := fmt.Sprintf("%s/readings/new", p.topicPrefix)
	handler := func(_ mqtt.Client, msg mqtt.Message) {
		var r models.MeterReading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			onError(fmt.Errorf("decoding reading payload: %w", err))
			return
		}
		onReading(r)
	}

	if token := p.client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, token.Error())
	}

	return nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}
