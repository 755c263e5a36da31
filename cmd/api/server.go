package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mw "github.com/5w1tchy/blog-ui/internal/api/middlewares"
	"github.com/5w1tchy/blog-ui/internal/api/router"
	"github.com/5w1tchy/blog-ui/internal/maintenance"
	"github.com/5w1tchy/blog-ui/internal/repository/sqlconnect"
	"github.com/5w1tchy/blog-ui/internal/store/prefs"
	"github.com/5w1tchy/blog-ui/internal/ui/bindings"
	"github.com/5w1tchy/blog-ui/internal/validate"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()

	if err := validate.Env(); err != nil {
		log.Fatalf("config: %v", err)
	}
	for _, w := range validate.HardeningWarnings(os.Getenv("APP_ENV")) {
		log.Printf("[Config] warning: %s\n", w)
	}

	// The behavior table is evaluated once; a broken row is a startup error.
	if err := bindings.Validate(bindings.Table()); err != nil {
		log.Fatalf("bindings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := newRedis()
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()
	if err := validate.PingRedis(rdb, 2*time.Second); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	fmt.Println("✅ Connected to Redis")

	db, err := sqlconnect.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	fmt.Println("✅ Connected to Postgres")

	store := prefs.New(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("database: %v", err)
	}
	maintenance.StartPreferencesRetention(ctx, store, validate.PrefsRetention(), "03:00", "UTC")

	csrfOpts := mw.DefaultCSRFOptions()
	csrfOpts.CookieSecure = os.Getenv("CSRF_COOKIE_SECURE") == "1"

	tb := mw.NewRedisTokenBucket(rdb, 5, 20)
	sw := mw.NewRedisSlidingWindow(rdb, 3000, 60*time.Minute)

	app := router.Router(router.Deps{
		Prefs:         store,
		CSRF:          csrfOpts,
		StrengthLimit: mw.RateLimit(tb, mw.PerVisitorKey("tb:strength")),
	})

	handler := mw.Chain(app,
		mw.RequestID,
		mw.Recovery,
		mw.Cors(mw.AllowedOriginsFromEnv()),
		mw.ResponseTimeMiddleware(validate.SlowRequest()),
		mw.RateLimit(sw, mw.PerIPKey("sw")),
		mw.BodySizeLimit(mw.MaxBodyFromEnv()),
		mw.Compression,
		mw.SecurityHeaders,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	fmt.Println("Server is running on port:", port)
	cert, key := os.Getenv("TLS_CERT"), os.Getenv("TLS_KEY")
	if cert != "" && key != "" {
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln("Error starting server:", err)
	}
}

func newRedis() (*redis.Client, error) {
	if url := os.Getenv("UPSTASH_REDIS_URL"); url != "" {
		// Path A: full Upstash URL (recommended)
		opt, err := redis.ParseURL(url) // e.g. rediss://default:<token>@host:port
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTASH_REDIS_URL: %w", err)
		}
		if opt.TLSConfig == nil && opt.Username != "" {
			opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		return redis.NewClient(opt), nil
	}

	// Path B: split fields
	return redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_ADDR"),
		Username:     os.Getenv("REDIS_USER"),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS12},
	}), nil
}
