// Package httpserver runs an http.Handler with configurable timeouts and
// context-driven graceful shutdown, and provides JSON health-check handlers.
//
// Run binds the listener, invokes start hooks with the bound address and
// serves until the context is cancelled or Shutdown is called. Shutdown
// drains in-flight requests within the configured deadline and then runs the
// stop hooks. Start and shutdown failures are joined with ErrStart and
// ErrShutdown.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log,
//		httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)},
//	))
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
