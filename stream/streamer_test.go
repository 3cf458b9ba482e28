package stream

import (
	"errors"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamer_PublishesFrame(t *testing.T) {
	client := newFakeClient()
	s := NewStreamer(client, "strip/stream", 1, time.Second, nil)

	s.SetFrame(NewFrameFill(2, colorful.Color{R: 1}))
	s.SetFrame(nil)

	require.Len(t, client.published, 1)
	msg := client.published[0]
	assert.Equal(t, "strip/stream", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.Equal(t, []byte{2, 0, 255, 0, 0, 255, 0, 0}, msg.payload)
}

func TestStreamer_ToleratesFailures(t *testing.T) {
	client := newFakeClient()
	s := NewStreamer(client, "strip/stream", 0, time.Millisecond, nil)

	client.token = &fakeToken{timeout: true}
	s.SetFrame(NewFrame(1))
	client.token = &fakeToken{err: errors.New("not connected")}
	s.SetFrame(NewFrame(1))

	assert.Len(t, client.published, 2)
}

func TestStreamer_AsPlayerDisplay(t *testing.T) {
	client := newFakeClient()
	s := NewStreamer(client, "strip/stream", 0, time.Second, nil)
	frames, _ := abc()
	clock := &fakeClock{}
	p := NewPlayer(frames, s)
	p.SetClock(clock)
	done := make(chan struct{})
	p.SetOnComplete(func() { close(done) })

	p.Start(time.Second, 1)
	for i := 0; i < 3; i++ {
		require.True(t, clock.last().Tick())
	}
	<-done

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Len(t, client.published, 4)
}
