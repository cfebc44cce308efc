package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/nlogcast/config"
	"github.com/philipp01105/nlogcast/core"
	"github.com/philipp01105/nlogcast/logger"
	"github.com/philipp01105/nlogcast/receiver/metricsreceiver"
)

const (
	pipeCmdUsage = "pipe"
	pipeCmdShort = "log every line read from standard input"
	pipeCmdLong  = `Log every non-empty line read from standard input, with the same sender
	and level, until the input ends or the process is interrupted.

	With --metrics-addr the command also counts the messages in a Prometheus
	registry and serves it over HTTP:
	- /metrics: the Prometheus exposition of the counters
	- /receivers: the registered receivers, threshold and statistics as JSON`

	pipeCmdExample = `# Forward the output of a build as warnings
	make 2>&1 | nlogcast pipe --sender make --level warning

	# Expose counters while tailing a file
	tail -f app.out | nlogcast pipe --sender app --metrics-addr :9090`

	metricsAddrFlagName  = "metrics-addr"
	metricsAddrFlagUsage = "listen address of the metrics HTTP server, disabled when empty"

	metricsReceiverName = "Metrics"
	shutdownTimeout     = 5 * time.Second
)

// pipeOptions holds everything a pipe run needs.
type pipeOptions struct {
	sender      string
	level       core.Level
	metricsAddr string
	in          io.Reader
	log         *logger.Logger

	// guards stopped so no line is logged once run has returned
	mu      sync.Mutex
	stopped bool
}

// pipeCmd returns the Cobra command that logs standard input line by line.
func pipeCmd(root *rootFlags) *cobra.Command {
	flags := &messageFlags{}
	var metricsAddr string

	cmd := &cobra.Command{
		Use:     pipeCmdUsage,
		Short:   heredoc.Doc(pipeCmdShort),
		Long:    heredoc.Doc(pipeCmdLong),
		Example: heredoc.Doc(pipeCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			level, err := flags.parsedLevel()
			if err != nil {
				return handleError(cmd, err)
			}

			log, err := root.newLogger(cmd)
			if err != nil {
				if log != nil {
					_ = log.Close()
				}
				return handleError(cmd, err)
			}
			defer func() {
				if closeErr := log.Close(); closeErr != nil {
					err = handleError(cmd, multierr.Append(err, closeErr))
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := &pipeOptions{
				sender:      flags.sender,
				level:       level,
				metricsAddr: metricsAddr,
				in:          cmd.InOrStdin(),
				log:         log,
			}
			if err := opts.run(ctx); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}

	flags.addFlags(cmd)
	cmd.Flags().StringVar(&metricsAddr, metricsAddrFlagName, "", metricsAddrFlagUsage)
	return cmd
}

// run logs the input until it ends or ctx is cancelled.
func (o *pipeOptions) run(ctx context.Context) error {
	if o.metricsAddr != "" {
		srv, err := o.serveMetrics()
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	done := make(chan error, 1)
	go func() {
		done <- o.scan()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		o.stop()
		o.log.Debugf(appName, "interrupted: %v", context.Cause(ctx))
		return nil
	}
}

// stop prevents the scanning goroutine from logging any further line and
// closes the input when it can be closed, releasing a blocked read.
// Otherwise the goroutine stays parked on the read until the process exits.
func (o *pipeOptions) stop() {
	o.mu.Lock()
	o.stopped = true
	o.mu.Unlock()

	if c, ok := o.in.(io.Closer); ok {
		_ = c.Close()
	}
}

// logLine logs one line unless the run was stopped
func (o *pipeOptions) logLine(level core.Level, sender, format string, args ...any) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return false
	}
	o.log.Log(level, sender, format, args...)
	return true
}

// scan logs each non-empty input line and returns the read error, if any.
func (o *pipeOptions) scan() error {
	scanner := bufio.NewScanner(o.in)
	scanner.Buffer(make([]byte, 0, 64*1024), config.MaxBufferSize)

	lines := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if !o.logLine(o.level, o.sender, "%s", line) {
			return nil
		}
		lines++
	}
	if !o.logLine(core.DebugLevel, appName, "input closed after %d lines", lines) {
		return nil
	}
	return scanner.Err()
}

// serveMetrics registers a metrics receiver on a fresh registry and starts
// an HTTP server exposing it.
func (o *pipeOptions) serveMetrics() (*http.Server, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	o.log.RegisterReceiver(metricsreceiver.New(reg), metricsReceiverName)

	ln, err := net.Listen("tcp", o.metricsAddr)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Handler:           newRouter(reg, o.log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			o.log.Errorf(appName, "metrics server: %v", err)
		}
	}()
	o.log.Infof(appName, "serving metrics on http://%s/metrics", ln.Addr())
	return srv, nil
}

// receiversResponse is the body of GET /receivers
type receiversResponse struct {
	Level     string          `json:"level"`
	Receivers []string        `json:"receivers"`
	Stats     logger.Snapshot `json:"stats"`
}

// newRouter wires the HTTP endpoints of the pipe command.
func newRouter(gatherer prometheus.Gatherer, log *logger.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/receivers", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(receiversResponse{
			Level:     log.Level().String(),
			Receivers: log.ReceiverNames(),
			Stats:     log.Stats(),
		})
	}).Methods(http.MethodGet)
	return r
}
