package stream

import (
	"log/slog"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// publisher is the part of mqtt.Client the Streamer needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Streamer is a Display that sends each frame as binary over MQTT to an
// ledrx device.
type Streamer struct {
	client  publisher
	topic   string
	qos     byte
	timeout time.Duration
	log     *slog.Logger
}

// NewStreamer creates an instance of a Streamer publishing on topic.
func NewStreamer(client publisher, topic string, qos byte, timeout time.Duration, log *slog.Logger) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = topic
	s.qos = qos
	s.timeout = timeout
	s.log = log
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// SetFrame publishes f. Failures are logged and the frame is dropped.
func (s *Streamer) SetFrame(f *Frame) {
	if f == nil {
		return
	}
	b, _ := f.MarshalBinary()
	token := s.client.Publish(s.topic, s.qos, false, b)
	if !token.WaitTimeout(s.timeout) {
		s.log.Warn("frame publish timed out", "topic", s.topic, "timeout", s.timeout)
		return
	}
	if err := token.Error(); err != nil {
		s.log.Error("frame publish failed", "topic", s.topic, "error", err)
	}
}
