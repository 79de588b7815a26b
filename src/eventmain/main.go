package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdk_trace "go.opentelemetry.io/otel/sdk/trace"
	"gopkg.in/yaml.v3"

	"github.com/idiazm/optrack/src/eventconsumers"
	"github.com/idiazm/optrack/src/eventmodels"
	"github.com/idiazm/optrack/src/eventproducers"
	"github.com/idiazm/optrack/src/eventproducers/portfolioapi"
	"github.com/idiazm/optrack/src/eventpubsub"
	"github.com/idiazm/optrack/src/eventservices"
	"github.com/idiazm/optrack/src/portfolio"
	"github.com/idiazm/optrack/src/utils"
)

func main() {
	run()
}

// setupOTelSDK bootstraps the OpenTelemetry pipeline.
// If it does not return an error, make sure to call shutdown for proper cleanup.
func setupOTelSDK(ctx context.Context) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error

	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	handleErr := func(inErr error) {
		err = errors.Join(inErr, shutdown(ctx))
	}

	prop := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(prop)

	traceExporter, err := otlptrace.New(ctx, otlptracehttp.NewClient())
	if err != nil {
		return nil, err
	}

	res, _ := resource.New(ctx, resource.WithAttributes(attribute.String("service.name", "optrack")))

	tracerProvider := sdk_trace.NewTracerProvider(
		sdk_trace.WithBatcher(traceExporter),
		sdk_trace.WithResource(res),
	)

	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		handleErr(err)
		return
	}

	meterProvider := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(metricExporter)))
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	otel.SetMeterProvider(meterProvider)

	err = runtime.Start(runtime.WithMinimumReadMemStatsInterval(time.Second))
	if err != nil {
		log.Fatalf("runtime.Start: %v", err)
	}

	return
}

func run() {
	projectsDir, err := utils.GetEnv("PROJECTS_DIR")
	if err != nil {
		log.Fatalf("PROJECTS_DIR not set: %v", err)
	}

	goEnv, err := utils.GetEnv("GO_ENV")
	if err != nil {
		log.Fatalf("GO_ENV not set: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	if err := utils.InitEnvironmentVariables(projectsDir, goEnv); err != nil {
		log.Panic(err)
	}

	eventpubsub.Init()

	log.SetOutput(os.Stdout)
	log.Infof("Log level set to %v", log.GetLevel())

	log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
		log.WarnLevel,
		log.InfoLevel,
	)))

	if os.Getenv("OTEL_ENABLED") == "true" {
		otelShutdown, err := setupOTelSDK(ctx)
		if err != nil {
			log.Fatalf("failed to setup otel sdk: %v", err)
		}

		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				log.Errorf("otel shutdown: %v", err)
			}
		}()
	}

	gatewayBaseURL, err := utils.GetEnv("GATEWAY_BASE_URL")
	if err != nil {
		log.Fatalf("$GATEWAY_BASE_URL not set: %v", err)
	}

	gatewayBearerToken := os.Getenv("GATEWAY_BEARER_TOKEN")

	brokerStreamURL, err := utils.GetEnv("BROKER_STREAM_URL")
	if err != nil {
		log.Fatalf("$BROKER_STREAM_URL not set: %v", err)
	}

	brokerAccountID, err := utils.GetEnv("BROKER_ACCOUNT_ID")
	if err != nil {
		log.Fatalf("$BROKER_ACCOUNT_ID not set: %v", err)
	}

	portfolioConfigFile, err := utils.GetEnv("PORTFOLIO_CONFIG_FILE")
	if err != nil {
		log.Fatalf("$PORTFOLIO_CONFIG_FILE not set: %v", err)
	}

	port, err := utils.GetEnv("PORT")
	if err != nil {
		log.Fatalf("$PORT not set: %v", err)
	}

	// Load config
	portfolioConfigInDir := path.Join(projectsDir, "optrack", "src", portfolioConfigFile)
	configBytes, err := os.ReadFile(portfolioConfigInDir)
	if err != nil {
		log.Fatalf("failed to read portfolio config: %v", err)
	}

	var config eventmodels.PortfolioConfigYAML
	if err := yaml.Unmarshal(configBytes, &config); err != nil {
		log.Fatalf("failed to unmarshal portfolio config: %v", err)
	}

	config.SetDefaults()

	watchList, err := config.WatchList()
	if err != nil {
		log.Fatalf("invalid watch list: %v", err)
	}

	// Build the working set
	dataDir := path.Join(projectsDir, "optrack", config.DataDir)
	store := portfolio.NewSnapshotStore(dataDir, config.PositionsFile)
	ledger := portfolio.NewLedger(store)
	registry := portfolio.NewAssetRegistry(watchList)
	dataSource := eventservices.NewGatewayDataSource(gatewayBaseURL, gatewayBearerToken, config.HistoricalYears)

	portfolioWorker := eventconsumers.NewPortfolioWorker(&wg, ledger, registry, dataSource, &config)

	events.On(eventmodels.RefreshCompletedEvent, func(payload ...interface{}) {
		if len(payload) == 0 {
			return
		}

		summary, ok := payload[0].(eventmodels.RefreshSummary)
		if !ok {
			return
		}

		log.Infof("refresh cycle complete: %d assets, %d positions, %d strategies in %v", summary.Assets, summary.Positions, summary.Strategies, summary.Elapsed)
		fmt.Print(eventservices.UnderlyingsTable(portfolioWorker.Underlyings()))
	})

	// Setup router
	router := mux.NewRouter()
	portfolioapi.SetupHandler(router.PathPrefix("/portfolio").Subrouter(), portfolioWorker)

	// Register pprof handlers
	pprofRouter := router.PathPrefix("/debug/pprof").Subrouter()
	pprofRouter.HandleFunc("/", http.HandlerFunc(pprof.Index))
	pprofRouter.HandleFunc("/cmdline", http.HandlerFunc(pprof.Cmdline))
	pprofRouter.HandleFunc("/profile", http.HandlerFunc(pprof.Profile))
	pprofRouter.HandleFunc("/symbol", http.HandlerFunc(pprof.Symbol))
	pprofRouter.HandleFunc("/trace", http.HandlerFunc(pprof.Trace))
	pprofRouter.Handle("/allocs", pprof.Handler("allocs"))
	pprofRouter.Handle("/block", pprof.Handler("block"))
	pprofRouter.Handle("/goroutine", pprof.Handler("goroutine"))
	pprofRouter.Handle("/heap", pprof.Handler("heap"))
	pprofRouter.Handle("/mutex", pprof.Handler("mutex"))
	pprofRouter.Handle("/threadcreate", pprof.Handler("threadcreate"))

	// Start event clients
	portfolioWorker.Start(ctx)
	eventproducers.NewBrokerClient(&wg, brokerStreamURL, brokerAccountID).Start(ctx)

	// Setup web server
	srv := &http.Server{
		Handler: otelhttp.NewHandler(router, "optrack"),
		Addr:    fmt.Sprintf(":%s", port),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		log.Infof("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil {
			if err.Error() != "http: Server closed" {
				log.Fatalf("failed to start server: %v", err)
			}
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	signal.Notify(stop, syscall.SIGTERM)

	log.Info("Main: init complete")

	<-stop

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}

	wg.Wait()

	log.Info("Main: gracefully stopped!")
}
