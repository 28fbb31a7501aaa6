// Package server wraps http.Server with graceful shutdown, environment
// driven configuration, and optional TLS.
//
// Basic usage:
//
//	var cfg server.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(appLog))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := srv.Run(ctx, handler)(); err != nil {
//		log.Fatal(err)
//	}
//
// Run blocks until the context is canceled, then drains in-flight
// requests within the configured shutdown timeout.
package server
