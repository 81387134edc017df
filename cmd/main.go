package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"

	"spellpipe/internal/config"
	"spellpipe/internal/corrector"
	"spellpipe/internal/customdict"
	"spellpipe/internal/logger"
	"spellpipe/internal/server"
)

func main() {
	lg := logger.New("spellpipe", "info")

	cfg, err := config.LoadFile(getenv("CS_CONFIG_FILE", "spellpipe.toml"), true)
	if err != nil {
		lg.Fatal("config error", "err", err)
	}
	lg.SetLevel(logger.Level(cfg.LogLevel))

	res, err := corrector.LoadResources(cfg, lg)
	if err != nil {
		lg.Fatal("init error", "err", err)
	}

	redisAddr := getenv("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := getEnvInt("REDIS_DB", 0)

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	defer client.Close()

	dict := customdict.New(client, os.Getenv("CUSTOM_DICT_KEY"))

	srv, err := server.New(context.Background(), cfg, res, dict, lg)
	if err != nil {
		lg.Fatal("init error", "err", err)
	}

	addr := getenv("HTTP_ADDR", ":8080")
	lg.Info("listening", "addr", addr, "mode", srv.Engine().Mode())
	lg.Fatal("server stopped", "err", http.ListenAndServe(addr, srv.Handler()))
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}
