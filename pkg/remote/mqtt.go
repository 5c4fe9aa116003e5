package remote

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
	"liyu1981.xyz/pet-feeder-service/pkg/common"
)

// TopicPrefix is the root of the feeder's MQTT namespace. Each store path
// maps to "<prefix>/<path>"; node snapshots and level readings are JSON.
const TopicPrefix = "petfeeder"

type levelPayload struct {
	Level float64 `json:"level"`
}

// MqttStream is a Stream backed by an MQTT broker. The device firmware
// publishes retained snapshots per node; field writes republish the whole
// node so every subscriber observes snapshot-on-change.
type MqttStream struct {
	client paho.Client
	mu     sync.Mutex
	nodes  map[string]ErrorSnapshot
}

func NewMqttStream(broker string, clientID string) (*MqttStream, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect to broker %s: timeout", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker %s: %w", broker, err)
	}

	return &MqttStream{
		client: client,
		nodes:  make(map[string]ErrorSnapshot),
	}, nil
}

func topicFor(path string) string {
	return TopicPrefix + "/" + path
}

func (s *MqttStream) SubscribeLevel(path string, onValue func(float64)) error {
	logger := common.GetLoggerWith(common.LoggerNameRemoteStream)

	token := s.client.Subscribe(topicFor(path), 1, func(_ paho.Client, msg paho.Message) {
		var payload levelPayload
		if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
			logger.Warn("Dropping malformed level payload",
				zap.String("path", path), zap.Error(err))
			return
		}
		onValue(payload.Level)
	})
	token.Wait()
	return token.Error()
}

func (s *MqttStream) SubscribeErrors(path string, onSnapshot func(ErrorSnapshot)) error {
	logger := common.GetLoggerWith(common.LoggerNameRemoteStream)

	token := s.client.Subscribe(topicFor(path), 1, func(_ paho.Client, msg paho.Message) {
		var snap ErrorSnapshot
		if err := json.Unmarshal(msg.Payload(), &snap); err != nil {
			logger.Warn("Dropping malformed error snapshot",
				zap.String("path", path), zap.Error(err))
			return
		}
		s.mu.Lock()
		s.nodes[path] = snap
		s.mu.Unlock()
		onSnapshot(snap)
	})
	token.Wait()
	return token.Error()
}

// WriteField merges the field into the last observed node snapshot and
// republishes it retained, so the device and other subscribers converge.
func (s *MqttStream) WriteField(path string, field string, value any) error {
	s.mu.Lock()
	snap := s.nodes[path]
	switch field {
	case FieldStatus:
		if v, ok := value.(int); ok {
			snap.Status = v
		}
	case FieldNotified:
		if v, ok := value.(bool); ok {
			snap.Notified = v
		}
	case FieldTimestamp:
		if v, ok := value.(string); ok {
			snap.Timestamp = v
		}
	case FieldMonitor:
		if v, ok := value.(int); ok {
			snap.Monitor = v
		}
	default:
		// free-form fields (Error_checking, portion) ride on their own topic
		s.mu.Unlock()
		payload, err := json.Marshal(map[string]any{field: value})
		if err != nil {
			return err
		}
		token := s.client.Publish(topicFor(path)+"/"+field, 1, true, payload)
		token.Wait()
		return token.Error()
	}
	s.nodes[path] = snap
	s.mu.Unlock()

	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	token := s.client.Publish(topicFor(path), 1, true, payload)
	token.Wait()
	return token.Error()
}

func (s *MqttStream) Close() error {
	s.client.Disconnect(250)
	return nil
}
