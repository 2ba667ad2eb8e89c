package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	hp "github.com/pthm/horsepower"
	hpecho "github.com/pthm/horsepower/adapters/echo"
	"github.com/pthm/horsepower/lib/dom"
	"github.com/pthm/horsepower/lib/widgets"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr   string
	Static string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":3030", "listen address")
	cmd.Flags().StringVar(&opts.Static, "static", "", "directory of example pages served at /app/")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts *ServeOptions) error {
	logger, closeLog, err := newLogger(cmd.ErrOrStderr(), opts.LogFile, opts.Debug)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	rt, err := newDemoRuntime(logger)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	mountOpts := []hpecho.Option{hpecho.WithRuntime(rt)}
	if opts.Static != "" {
		mountOpts = append(mountOpts, hpecho.WithStatic(opts.Static))
	}
	hpecho.Mount(e, mountOpts...)

	errc := make(chan error, 2)
	go func() {
		errc <- rt.Run(ctx)
	}()
	go func() {
		logger.Info("listening", "addr", opts.Addr)
		if err := e.Start(opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	})
}

const demoMarkup = `<!DOCTYPE html>
<html>
<head><title>horsepower</title></head>
<body>
  <div id="clock" class="clock"></div>
  <label>Name <input id="name" hp-model="root.name"></label>
  <p id="greeting"></p>
  <button id="hello" value="hello">Say hello</button>
</body>
</html>`

// clock writes the loop's current time into its node every second.
type clock struct {
	hp.Component
}

func (c *clock) Tick() time.Duration {
	now := c.Runtime().Loop().Now().Format(time.TimeOnly)
	c.Document().SetAttr(c.Node(), "data-time", now)
	return time.Second
}

// greeting mirrors the root scope's name into its node.
type greeting struct {
	hp.Component
	text string
}

func (g *greeting) Greet(prefix string) {
	name := g.RootScope().String("name")
	if name == "" {
		name = "stranger"
	}
	g.text = prefix + ", " + name
	g.Document().SetAttr(g.Node(), "data-text", g.text)
}

// helloButton broadcasts its value to every greeting.
type helloButton struct {
	widgets.Button
}

func (b *helloButton) Accept(value string) {
	hp.BroadcastToType[*greeting](b.Runtime(), "Greet", value)
}

func newDemoRuntime(logger *slog.Logger) (*hp.Runtime, error) {
	doc, err := dom.ParseString(demoMarkup)
	if err != nil {
		return nil, err
	}
	rt := hp.New(hp.WithDocument(doc), hp.WithLogger(logger))

	bind := func(selector string, b hp.Behavior) error {
		n, err := doc.QuerySelector(selector)
		if err != nil {
			return err
		}
		if n == nil {
			return fmt.Errorf("demo markup has no %s", selector)
		}
		hp.Attach(rt, n, b)
		return nil
	}

	tick := &clock{}
	bindings := []struct {
		selector string
		b        hp.Behavior
	}{
		{"#clock", tick},
		{"#name", &hp.Element{}},
		{"#greeting", &greeting{}},
		{"#hello", &helloButton{}},
	}
	for _, bd := range bindings {
		if err := bind(bd.selector, bd.b); err != nil {
			return nil, err
		}
	}
	tick.RunTick(0)

	return rt, nil
}
