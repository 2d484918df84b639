// Command radio-clock drives a rotary-encoder internet radio with an
// alarm-clock UI on an SSD1306 OLED panel, publishing state changes to MQTT.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/sweeney/radio-clock/internal/clock"
	"github.com/sweeney/radio-clock/internal/display"
	"github.com/sweeney/radio-clock/internal/input"
	"github.com/sweeney/radio-clock/internal/mqtt"
	"github.com/sweeney/radio-clock/internal/player"
	"github.com/sweeney/radio-clock/internal/radio"
	"github.com/sweeney/radio-clock/internal/station"
	"github.com/sweeney/radio-clock/internal/status"
	"github.com/sweeney/radio-clock/internal/ui"
	"github.com/sweeney/radio-clock/internal/web"
)

type config struct {
	stationsFile  string
	i2cBus        int
	i2cAddr       int
	gpioChip      string
	pinA          int
	pinB          int
	pinButton     int
	broker        string
	httpAddr      string
	longPress     time.Duration
	frame         time.Duration
	scroll        time.Duration
	update        time.Duration
	alarm         string
	printStations bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.stationsFile, "stations", "/etc/radio-clock/stations", "Station URL list, one per line")
	flag.IntVar(&cfg.i2cBus, "i2c-bus", display.DefaultBus, "I2C bus number for the OLED panel")
	flag.IntVar(&cfg.i2cAddr, "i2c-addr", display.DefaultAddress, "I2C address of the OLED panel")
	flag.StringVar(&cfg.gpioChip, "gpio-chip", input.DefaultChip, "GPIO character device")
	flag.IntVar(&cfg.pinA, "pin-a", input.DefaultPinA, "BCM pin number for encoder phase A")
	flag.IntVar(&cfg.pinB, "pin-b", input.DefaultPinB, "BCM pin number for encoder phase B")
	flag.IntVar(&cfg.pinButton, "pin-button", input.DefaultPinButton, "BCM pin number for the encoder push switch")
	flag.StringVar(&cfg.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address (empty to disable)")
	flag.StringVar(&cfg.httpAddr, "http", ":8080", "HTTP status address (empty to disable)")
	flag.DurationVar(&cfg.longPress, "long-press", input.DefaultLongPressThreshold, "Long-press threshold")
	flag.DurationVar(&cfg.frame, "frame", ui.DefaultFrameMinInterval, "Minimum interval between display frames")
	flag.DurationVar(&cfg.scroll, "scroll", ui.DefaultScrollSpeed, "Track marquee scroll interval")
	flag.DurationVar(&cfg.update, "update", time.Second, "Metadata and status poll interval")
	flag.StringVar(&cfg.alarm, "alarm", "7:00", "Initial alarm time (H:MM)")
	flag.BoolVar(&cfg.printStations, "print-stations", false, "Print the station list and exit")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config) error {
	stations, err := station.LoadList(cfg.stationsFile)
	if err != nil {
		return fmt.Errorf("load stations: %w", err)
	}

	if cfg.printStations {
		for i, url := range stations {
			fmt.Printf("%3d  %s\n", i, url)
		}
		return nil
	}

	alarmMinutes, err := parseAlarm(cfg.alarm)
	if err != nil {
		return fmt.Errorf("parse alarm: %w", err)
	}

	// Initialize display
	dev, err := display.NewRealDevice(cfg.i2cBus, uint8(cfg.i2cAddr))
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer func() {
		// Leave the panel dark. Best effort; the device may be the reason
		// we are shutting down.
		if err := dev.Clear(); err != nil {
			log.Printf("display clear: %v", err)
		}
		dev.Close()
	}()

	st := ui.New(dev, ui.Config{
		FrameMinInterval: cfg.frame,
		ScrollSpeed:      cfg.scroll,
	}, nil)
	defer st.Stop()

	clk := clock.New(nil)
	clk.SetAlarmMinutes(alarmMinutes)

	pl := player.NewStreamPlayer(stations)
	defer pl.Stop()

	// Initialize MQTT. The radio works without a broker; telemetry is
	// dropped, not fatal.
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.broker != "" {
		real, err := mqtt.NewRealPublisher(cfg.broker)
		if err != nil {
			log.Printf("mqtt: %v (continuing without telemetry)", err)
		} else {
			publisher = real
			mqttStatus = real
			defer real.Close()
		}
	}

	onEvent := func(e radio.Event) {
		log.Printf("event: %s (station=%d track=%q)", e.Type, e.Station, e.Track)
		if publisher == nil {
			return
		}
		if err := publisher.Publish(e); err != nil {
			log.Printf("publish error: %v", err)
			// Don't crash on publish failure
		}
	}

	ctrl := radio.New(clk, st, pl, nil, onEvent)

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		StationsFile: cfg.stationsFile,
		Broker:       cfg.broker,
		HTTPAddr:     cfg.httpAddr,
		LongPressMs:  cfg.longPress.Milliseconds(),
		FrameMs:      cfg.frame.Milliseconds(),
		ScrollMs:     cfg.scroll.Milliseconds(),
		UpdateMs:     cfg.update.Milliseconds(),
	})
	tracker.Update(snapshotFrom(ctrl, clk, pl, st))

	if publisher != nil {
		snap := tracker.Snapshot()
		startupEvent := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := publisher.PublishSystem(startupEvent); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	// Start HTTP status server
	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.httpAddr)
	}

	// Initialize input
	src, err := input.NewRealSource(cfg.gpioChip, cfg.pinA, cfg.pinB, cfg.pinButton)
	if err != nil {
		return fmt.Errorf("init input: %w", err)
	}
	defer src.Close()

	classifier, err := input.NewClassifier(src, input.Callbacks{
		RotateLeft:  ctrl.RotateLeft,
		RotateRight: ctrl.RotateRight,
		ShortPress:  ctrl.ShortPress,
		LongPress:   ctrl.LongPress,
	}, cfg.longPress)
	if err != nil {
		return fmt.Errorf("init classifier: %w", err)
	}

	// A dead input device or a dead panel ends the process.
	fatal := make(chan error, 2)
	st.SetErrorHandler(func(err error) {
		select {
		case fatal <- fmt.Errorf("display: %w", err):
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := classifier.Run(ctx); err != nil && ctx.Err() == nil {
			select {
			case fatal <- fmt.Errorf("input: %w", err):
			default:
			}
		}
	}()

	ctrl.Start()
	defer ctrl.Stop()

	log.Printf("started: stations=%d broker=%s long-press=%v update=%v",
		len(stations), cfg.broker, cfg.longPress, cfg.update)

	ticker := time.NewTicker(cfg.update)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, clk, pl, st, publisher, mqttStatus, tracker, time.Now, ticker.C, sigCh, fatal)
}

// runLoop is the daemon's main loop: poll-driven updates, signal-driven
// shutdown, and fatal device errors from the input and display goroutines.
func runLoop(ctrl *radio.Controller, clk *clock.Clock, pl player.Player, st *ui.State, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal, fatal <-chan error) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			publishShutdown(publisher, mqttStatus, tracker, now(), signalName(s))
			return nil

		case err := <-fatal:
			publishShutdown(publisher, mqttStatus, tracker, now(), "DEVICE_ERROR")
			return err

		case <-tick:
			ctrl.Update()
			tracker.Update(snapshotFrom(ctrl, clk, pl, st))
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
		}
	}
}

// snapshotFrom assembles the status snapshot the HTTP handlers serve.
func snapshotFrom(ctrl *radio.Controller, clk *clock.Clock, pl player.Player, st *ui.State) status.Snapshot {
	return status.Snapshot{
		Mode:          ctrl.Mode(),
		Highlighted:   ctrl.HighlightedMode(),
		Station:       pl.StationIndex(),
		StationCount:  pl.StationCount(),
		Track:         ctrl.TrackName(),
		Playing:       ctrl.StationActive(),
		AlarmEnabled:  ctrl.AlarmActive(),
		AlarmTime:     clk.AlarmText(),
		TimeText:      clk.TimeText(true),
		OffsetSeconds: clk.OffsetSeconds(),
		FramesDrawn:   st.FramesRendered(),
	}
}

func publishShutdown(publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, ts time.Time, reason string) {
	if publisher == nil {
		return
	}
	event := mqtt.SystemEvent{
		Timestamp: ts,
		Event:     "SHUTDOWN",
		Reason:    reason,
		Retained:  true,
	}
	if tracker != nil {
		if mqttStatus != nil {
			tracker.SetMQTTConnected(mqttStatus.IsConnected())
		}
		snap := tracker.Snapshot()
		event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", reason)
	}
	if err := publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}

// parseAlarm converts "H:MM" into minutes from midnight.
func parseAlarm(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid alarm time %q (want H:MM)", s)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid alarm hour %q", h)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 || len(m) != 2 {
		return 0, fmt.Errorf("invalid alarm minute %q", m)
	}
	return hour*60 + minute, nil
}
