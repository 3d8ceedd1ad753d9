package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port       string
	DBDSN      string
	APIBaseURL string
	JWTSecret  string
	OrderDelay time.Duration
	OrdersURL  string // API base for live order creation; empty runs the simulated creator
	LogFile    string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "tienda.db" // sqlite file in project root
	}
	api := os.Getenv("API_BASE_URL")
	if api == "" {
		api = "http://localhost:3001/api"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		log.Println("[config] JWT_SECRET not set, using dev default")
	}
	delay := 2 * time.Second // matches the simulated backend's artificial wait
	if ms := os.Getenv("ORDER_DELAY_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n >= 0 {
			delay = time.Duration(n) * time.Millisecond
		}
	}
	ordersURL := os.Getenv("ORDERS_URL")
	logFile := os.Getenv("LOG_FILE")

	cfg := Config{Port: port, DBDSN: dsn, APIBaseURL: api, JWTSecret: secret, OrderDelay: delay, OrdersURL: ordersURL, LogFile: logFile}
	if cfg.OrdersURL != "" {
		log.Printf("[config] ORDERS_URL=%s, orders go to the live endpoint", cfg.OrdersURL)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s API_BASE_URL=%s ORDER_DELAY=%s", cfg.Port, cfg.DBDSN, cfg.APIBaseURL, cfg.OrderDelay)
	return cfg
}
