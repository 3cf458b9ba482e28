package stream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// Command types accepted on the control topic.
const (
	CommandPlay  = "play"
	CommandStop  = "stop"
	CommandBurst = "burst"
)

// Command is a control message, for example
//
//	{"type":"play","durationMs":300,"repeat":2}
//	{"type":"burst","at":120}
type Command struct {
	Type       string `json:"type"`
	DurationMs int64  `json:"durationMs,omitempty"`
	Repeat     int    `json:"repeat,omitempty"`
	At         int    `json:"at,omitempty"`
	BaseName   string `json:"baseName,omitempty"`
	Count      int    `json:"count,omitempty"`
}

type subscriber interface {
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// Apply carries out cmd.
func (c *Controller) Apply(cmd Command) error {
	switch cmd.Type {
	case CommandPlay:
		c.Play(time.Duration(cmd.DurationMs)*time.Millisecond, cmd.Repeat)
	case CommandStop:
		c.Stop()
	case CommandBurst:
		c.Burst(cmd.At, cmd.BaseName, cmd.Count)
	default:
		return fmt.Errorf("unknown command type %q", cmd.Type)
	}
	return nil
}

func (c *Controller) handleControlMessage(_ mqtt.Client, msg mqtt.Message) {
	c.log.Debug("control message", "id", msg.MessageID(), "topic", msg.Topic(), "payload", string(msg.Payload()))

	var cmd Command
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
		c.log.Warn("bad control message", "topic", msg.Topic(), "error", err)
		return
	}
	if err := c.Apply(cmd); err != nil {
		c.log.Warn("control message ignored", "topic", msg.Topic(), "error", err)
	}
}

// Subscribe listens for commands on the configured control topic.
func (c *Controller) Subscribe(client subscriber) error {
	topic := c.config.Mqtt.Topics.Control
	if topic == "" {
		return nil
	}
	token := client.Subscribe(topic, c.config.Mqtt.Qos, c.handleControlMessage)
	if !token.WaitTimeout(c.config.Mqtt.PublishTimeout) {
		return fmt.Errorf("subscribe %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	c.log.Info("subscribed", "topic", topic)
	return nil
}
