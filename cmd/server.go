package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/nikhilsaraf/go-tools/multithreading"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stellar/pingd/backend"
	"github.com/stellar/pingd/support/logger"
	"github.com/stellar/pingd/support/monitoring"
	"github.com/stellar/pingd/support/networking"
	"github.com/stellar/pingd/support/toml"
	"github.com/stellar/pingd/support/utils"
)

const metricsNamespace = "pingd"
const shutdownTimeout = 10 * time.Second
const serverExamples = `  pingd server
  pingd server --port 8000 --allowed-origin localhost:3000
  pingd server --config pingd.cfg --monitoring-port 9090
  pingd server --rate-limit 48 --rate-limit-window 60`

var serverCmd = &cobra.Command{
	Use:     "server",
	Short:   "Serves the ping route",
	Example: serverExamples,
}

type serverInputs struct {
	configPath     *string
	writeConfig    *string
	port           *uint16
	allowedOrigin  *string
	monitoringPort *uint16
	tlsCertFile    *string
	tlsKeyFile     *string
	verbose        *bool
	logFormat      *string
	rateLimit      *uint
	rateLimitSecs  *uint
}

func init() {
	options := serverInputs{}
	options.configPath = serverCmd.Flags().StringP("config", "c", "", "optional toml config file, values are overridden by PINGD_* env vars and then by flags")
	options.writeConfig = serverCmd.Flags().String("write-config", "", "write the effective config to this toml file and exit")
	options.port = serverCmd.Flags().Uint16P("port", "p", backend.DefaultPort, "port on which to serve")
	options.allowedOrigin = serverCmd.Flags().String("allowed-origin", backend.DefaultAllowedOrigin, "the only origin allowed to make cross-origin requests")
	options.monitoringPort = serverCmd.Flags().Uint16("monitoring-port", 0, "port on which to serve /metrics and /info, 0 disables the monitoring server")
	options.tlsCertFile = serverCmd.Flags().String("tls-cert", "", "serve over HTTPS using this cert file, needs --tls-key")
	options.tlsKeyFile = serverCmd.Flags().String("tls-key", "", "serve over HTTPS using this key file, needs --tls-cert")
	options.verbose = serverCmd.Flags().BoolP("verbose", "v", false, "enable verbose log lines typically used for debugging")
	options.logFormat = serverCmd.Flags().String("log-format", logger.FormatText, "format of log lines, one of [text, json]")
	options.rateLimit = serverCmd.Flags().Uint("rate-limit", 0, "requests allowed per client IP in each rate limit window, 0 disables rate limiting")
	options.rateLimitSecs = serverCmd.Flags().Uint("rate-limit-window", backend.DefaultRateLimitWindowSeconds, "length of the rate limit window in seconds")

	serverCmd.Run = func(ccmd *cobra.Command, args []string) {
		cfg, e := backend.ReadConfig(*options.configPath)
		if e != nil {
			logger.Fatal(logger.MakeBasicLogger(), e)
		}
		applyFlags(ccmd.Flags(), options, &cfg)

		if *options.writeConfig != "" {
			e = toml.WriteFile(*options.writeConfig, cfg)
			if e != nil {
				logger.Fatal(logger.MakeBasicLogger(), e)
			}
			return
		}

		e = cfg.Validate()
		if e != nil {
			logger.Fatal(logger.MakeBasicLogger(), errors.Wrap(e, "invalid config"))
		}

		instanceID, e := uuid.NewRandom()
		if e != nil {
			logger.Fatal(logger.MakeBasicLogger(), errors.Wrap(e, "unable to generate instance id"))
		}

		l, e := logger.MakeLogrusLogger(os.Stdout, cfg.LogFormat, cfg.Verbose, map[string]interface{}{
			"service":  "pingd",
			"instance": instanceID.String(),
		})
		if e != nil {
			logger.Fatal(logger.MakeBasicLogger(), e)
		}
		utils.LogConfig(l, cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e = runServers(ctx, l, cfg, instanceID.String())
		if e != nil {
			logger.Fatal(l, e)
		}
		l.Info("shut down cleanly")
	}
}

// applyFlags overrides config values only with the flags that were explicitly passed in
func applyFlags(flags *pflag.FlagSet, options serverInputs, cfg *backend.Config) {
	if flags.Changed("port") {
		cfg.Port = *options.port
	}
	if flags.Changed("allowed-origin") {
		cfg.AllowedOrigin = *options.allowedOrigin
	}
	if flags.Changed("monitoring-port") {
		cfg.MonitoringPort = *options.monitoringPort
	}
	if flags.Changed("tls-cert") {
		cfg.TLSCertFile = *options.tlsCertFile
	}
	if flags.Changed("tls-key") {
		cfg.TLSKeyFile = *options.tlsKeyFile
	}
	if flags.Changed("verbose") {
		cfg.Verbose = *options.verbose
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = *options.logFormat
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = *options.rateLimit
	}
	if flags.Changed("rate-limit-window") {
		cfg.RateLimitWindowSeconds = *options.rateLimitSecs
	}
}

type namedServer struct {
	name     string
	port     uint16
	certFile string
	keyFile  string
	server   networking.WebServer
}

// runServers blocks until ctx is done or one of the servers fails, then shuts all of them down
func runServers(ctx context.Context, l logger.Logger, cfg backend.Config, instanceID string) error {
	servers, e := makeServers(l, cfg, instanceID)
	if e != nil {
		return e
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var firstErr error
	errLock := &sync.Mutex{}
	threadTracker := multithreading.MakeThreadTracker()
	for _, ns := range servers {
		l.Infof("serving %s on HTTP port: %d", ns.name, ns.port)
		e = threadTracker.TriggerGoroutine(func(inputs []interface{}) {
			s := inputs[0].(namedServer)
			e1 := s.server.StartServer(s.port, s.certFile, s.keyFile)
			if e1 != nil {
				errLock.Lock()
				if firstErr == nil {
					firstErr = errors.Wrapf(e1, "%s server failed", s.name)
				}
				errLock.Unlock()
				cancel()
			}
		}, []interface{}{ns})
		if e != nil {
			cancel()
			return errors.Wrap(e, "could not start server goroutine")
		}
	}

	<-ctx.Done()
	l.Info("shutting down servers ...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	for _, ns := range servers {
		e = ns.server.Shutdown(shutdownCtx)
		if e != nil {
			l.Errorf("error shutting down %s server: %s", ns.name, e)
		}
	}
	threadTracker.Wait()

	errLock.Lock()
	defer errLock.Unlock()
	return firstErr
}

func makeServers(l logger.Logger, cfg backend.Config, instanceID string) ([]namedServer, error) {
	s := backend.MakeAPIServer(l, cfg)
	if cfg.MonitoringPort == 0 {
		return []namedServer{{
			name:     "api",
			port:     cfg.Port,
			certFile: cfg.TLSCertFile,
			keyFile:  cfg.TLSKeyFile,
			server:   networking.MakeServer(s.MakeRouter()),
		}}, nil
	}

	registry := prometheus.NewRegistry()
	requestMetrics, e := monitoring.MakeRequestMetrics(registry, metricsNamespace, version, gitHash)
	if e != nil {
		return nil, e
	}

	info, e := monitoring.MakeMetricsRecorder(map[string]interface{}{
		"instance":       instanceID,
		"version":        version,
		"git_hash":       gitHash,
		"build_date":     buildDate,
		"start_time":     time.Now().UTC().Format(time.RFC3339),
		"allowed_origin": cfg.AllowedOrigin,
		"port":           cfg.Port,
	})
	if e != nil {
		return nil, errors.Wrap(e, "could not make info recorder")
	}
	infoEndpoint, e := monitoring.MakeMetricsEndpoint("/info", info, l)
	if e != nil {
		return nil, e
	}
	metricsEndpoint, e := monitoring.MakePrometheusEndpoint("/metrics", registry)
	if e != nil {
		return nil, e
	}
	monitoringServer, e := networking.MakeEndpointServer([]networking.Endpoint{infoEndpoint, metricsEndpoint})
	if e != nil {
		return nil, errors.Wrap(e, "could not make monitoring server")
	}

	return []namedServer{
		{
			name:     "api",
			port:     cfg.Port,
			certFile: cfg.TLSCertFile,
			keyFile:  cfg.TLSKeyFile,
			server:   networking.MakeServer(s.MakeRouter(requestMetrics.Middleware)),
		}, {
			name:   "monitoring",
			port:   cfg.MonitoringPort,
			server: monitoringServer,
		},
	}, nil
}
