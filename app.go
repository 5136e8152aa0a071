// Package racenav wires the racing bot simulator together: config,
// logging, metrics reporters, the track scene and the race loop.
package racenav

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/tutumagi/racenav/config"
	"github.com/tutumagi/racenav/engine/utils"
	e "github.com/tutumagi/racenav/errors"
	"github.com/tutumagi/racenav/logger"
	"github.com/tutumagi/racenav/metrics"
	"github.com/tutumagi/racenav/race"
	"github.com/tutumagi/racenav/track/gates"
	"github.com/tutumagi/racenav/world"
)

// ErrCodeNotConfigured is returned when a race is built before Configure
const ErrCodeNotConfigured = "APP_001"

// App is the base app struct
type App struct {
	id               string
	name             string
	config           *config.Config
	configured       bool
	dieChan          chan bool
	metricsReporters []metrics.Reporter
	running          bool
	startAt          time.Time
}

var app = &App{
	id:               uuid.New().String(),
	dieChan:          make(chan bool),
	metricsReporters: make([]metrics.Reporter, 0),
}

// Configure configures the app
func Configure(name string, cfgs ...*viper.Viper) {
	if app.configured {
		logger.Warn("racenav configured twice!")
	}
	app.name = name
	app.config = config.NewConfig(cfgs...)
	logger.Init(name, app.config.Viper())
	configureMetrics(name)
	app.configured = true
}

func configureMetrics(name string) {
	app.metricsReporters = make([]metrics.Reporter, 0)
	constTags := app.config.GetStringMapString("racenav.metrics.constTags")

	if app.config.GetBool("racenav.metrics.prometheus.enabled") {
		port := app.config.GetInt("racenav.metrics.prometheus.port")
		logger.Infof("prometheus is enabled, configuring reporter on port %d", port)
		constTags["app"] = name
		prometheus, err := metrics.NewPrometheusReporter(app.config.GetString("racenav.metrics.prometheus.namespace"), constTags)
		if err != nil {
			logger.Errorf("failed to start prometheus metrics reporter, skipping %v", err)
		} else {
			prometheus.Serve(port)
			AddMetricsReporter(prometheus)
		}
	} else {
		logger.Info("prometheus is disabled, reporter will not be enabled")
	}

	if app.config.GetBool("racenav.metrics.statsd.enabled") {
		logger.Infof(
			"statsd is enabled, configuring the metrics reporter with host: %s",
			app.config.Get("racenav.metrics.statsd.host"),
		)
		metricsReporter, err := metrics.NewStatsdReporter(
			app.config.GetString("racenav.metrics.statsd.host"),
			app.config.GetString("racenav.metrics.statsd.prefix"),
			app.config.GetFloat64("racenav.metrics.statsd.rate"),
			constTags,
		)
		if err != nil {
			logger.Errorf("failed to start statds metrics reporter, skipping %v", err)
		} else {
			logger.Info("successfully configured statsd metrics reporter")
			AddMetricsReporter(metricsReporter)
		}
	}
}

// AddMetricsReporter to be used
func AddMetricsReporter(mr metrics.Reporter) {
	app.metricsReporters = append(app.metricsReporters, mr)
}

// GetConfig gets the app config
func GetConfig() *config.Config {
	return app.config
}

// NewRace builds the scene described by the configured track and fills it
// with bots drawn from the configured profiles
func NewRace() (*race.Race, error) {
	if !app.configured {
		return nil, e.NewError(fmt.Errorf("building a race without configuring the app first, call racenav.Configure()"), ErrCodeNotConfigured)
	}

	sim, err := app.config.Sim()
	if err != nil {
		return nil, err
	}
	settings, err := app.config.World()
	if err != nil {
		return nil, err
	}
	profiles, err := app.config.Profiles()
	if err != nil {
		return nil, err
	}
	doc, err := readTrack(sim.Track)
	if err != nil {
		return nil, err
	}

	clock := utils.NewFrameClock(0)
	w := world.New(settings)
	factory := gates.NewFactory(clock, w)
	graph, err := LoadScene(doc, w, factory)
	if err != nil {
		return nil, err
	}

	r, err := race.New(graph, w, clock, sim.Seed,
		race.WithReporters(app.metricsReporters...),
		race.WithUpdaters(factory),
	)
	if err != nil {
		return nil, err
	}
	if err := r.Populate(race.NewRoster(profiles), sim.Bots, sim.SpawnSpacing); err != nil {
		return nil, err
	}
	logger.Infof("race ready: %d bots, %d waypoints, %s", sim.Bots, graph.Len(), w)
	return r, nil
}

// Start runs a race for the configured duration, or until an interrupt
// signal arrives, and returns the final standings
func Start() ([]race.Standing, error) {
	r, err := NewRace()
	if err != nil {
		return nil, err
	}
	sim, _ := app.config.Sim()

	// a Shutdown from an earlier race does not stop this one
	select {
	case <-app.dieChan:
		app.dieChan = make(chan bool)
	default:
	}
	die := app.dieChan

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sg := make(chan os.Signal, 1)
	signal.Notify(sg, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(sg)

	go func() {
		select {
		case <-die:
			logger.Warn("the race will stop after this frame")
		case s := <-sg:
			logger.Warnf("got signal: %v, stopping the race...", s)
		case <-ctx.Done():
			return
		}
		cancel()
	}()

	app.running = true
	app.startAt = time.Now()
	defer func() {
		app.running = false
		logger.Sync()
	}()

	standings := r.Run(ctx, sim.Duration, sim.Dt, sim.Report)
	logger.Infof("race %s finished in %s", app.id, time.Since(app.startAt))
	return standings, nil
}

// Shutdown stops the running race. The next Start races again.
func Shutdown() {
	select {
	case <-app.dieChan:
	default:
		close(app.dieChan)
	}
}
