package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/ledseq/api"
	"github.com/matt-g-everett/ledseq/stream"
)

type app struct {
	Config     stream.Config
	Log        *slog.Logger
	Client     mqtt.Client
	Controller *stream.Controller
}

func newApp(config stream.Config) *app {
	a := new(app)
	a.Config = config
	a.Log = newLogger(config.LogLevel())
	return a
}

// newLogger returns a structured JSON logger at the given level.
func newLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

func (a *app) handleOnConnect(client mqtt.Client) {
	a.Log.Info("connected", "broker", a.Config.Mqtt.URL)
	if err := a.Controller.Subscribe(client); err != nil {
		a.Log.Error("control subscription failed", "error", err)
	}
}

// resolver looks frames up in the sequence directory, then in the built-in
// library. Images are scaled to width pixels; zero keeps their own width.
func (a *app) resolver(width int) stream.Resolver {
	var resolvers []stream.Resolver
	if dir := a.Config.Sequence.Dir; dir != "" {
		r := stream.NewDirResolver(os.DirFS(dir), width)
		r.Log = a.Log
		resolvers = append(resolvers, r)
	}
	if n := a.Config.BuiltinFrames; n > 0 {
		resolvers = append(resolvers, stream.BuiltinLibrary(a.Config.Strip.Pixels, n))
	}
	return stream.FirstOf(resolvers...)
}

func (a *app) setup() {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	streamer := stream.NewStreamer(a.Client, a.Config.Mqtt.Topics.Stream,
		a.Config.Mqtt.Qos, a.Config.Mqtt.PublishTimeout, a.Log)
	a.Controller = stream.NewController(a.Config, streamer, a.resolver(a.Config.Strip.Pixels), a.Log)
	a.Controller.SetBurstResolver(a.resolver(0))
}

func (a *app) run(ctx context.Context) error {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer a.Client.Disconnect(250)
	defer a.Controller.Close()

	if a.Config.Sequence.Autoplay {
		a.Controller.Play(0, 0)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- api.NewApi(a.Controller, a.Config.Api.Static, a.Log).Serve(a.Config.Api.Listen)
	}()

	select {
	case <-ctx.Done():
		a.Log.Info("shutting down")
		return nil
	case err := <-errc:
		return err
	}
}

func main() {
	mqtt.ERROR = log.New(os.Stderr, "mqtt ", 0)

	// Parse command line parameters
	configPath := flag.String("config", "", "YAML config file (default: search XDG config dirs).")
	flag.Parse()

	config, err := stream.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a := newApp(config)
	a.Log.Info("config loaded", "broker", config.Mqtt.URL, "pixels", config.Strip.Pixels)
	a.setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil {
		a.Log.Error("exiting", "error", err)
		os.Exit(1)
	}
}
