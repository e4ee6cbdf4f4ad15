package redis

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"office-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client with connection-state tracking. Redis
// holds the ephemeral credential state (2FA codes, reset tokens, sessions),
// so the rest of the code asks this wrapper for the live client.
type Client struct {
	client      *redis.Client
	config      config.RedisConfig
	mu          sync.RWMutex
	isConnected bool
}

type HealthStatus struct {
	IsConnected    bool          `json:"isConnected"`
	LastPing       time.Time     `json:"lastPing"`
	ResponseTime   time.Duration `json:"responseTime"`
	ConnectionInfo string        `json:"connectionInfo"`
	Error          string        `json:"error,omitempty"`
}

// NewClient creates a Redis client from either a URL or host:port config.
func NewClient(cfg config.RedisConfig) *Client {
	c := &Client{config: cfg}
	c.connect()
	return c
}

func (c *Client) connect() {
	var opt *redis.Options

	if c.config.URL != "" {
		parsed, err := redis.ParseURL(c.config.URL)
		if err != nil {
			log.Printf("Failed to parse Redis URL: %v, falling back to host:port", err)
			opt = c.hostPortOptions()
		} else {
			parsed.PoolSize = c.config.PoolSize
			parsed.DialTimeout = c.config.DialTimeout
			parsed.ReadTimeout = c.config.ReadTimeout
			parsed.WriteTimeout = c.config.WriteTimeout
			opt = parsed
		}
	} else {
		opt = c.hostPortOptions()
	}

	c.mu.Lock()
	c.client = redis.NewClient(opt)
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.client.Ping(ctx).Err()
	c.mu.Lock()
	c.isConnected = err == nil
	c.mu.Unlock()

	if err != nil {
		log.Printf("Redis connection test failed: %v", err)
	}
}

func (c *Client) hostPortOptions() *redis.Options {
	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%s", c.config.Host, c.config.Port),
		Password:     c.config.Password,
		DB:           c.config.DB,
		PoolSize:     c.config.PoolSize,
		DialTimeout:  c.config.DialTimeout,
		ReadTimeout:  c.config.ReadTimeout,
		WriteTimeout: c.config.WriteTimeout,
	}
}

// GetClient returns the underlying go-redis client (thread-safe).
func (c *Client) GetClient() *redis.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}

// IsConnected returns the connection status as of the last health check.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isConnected
}

// HealthCheck pings the server and returns detailed status.
func (c *Client) HealthCheck() HealthStatus {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()

	status := HealthStatus{
		ConnectionInfo: fmt.Sprintf("%s:%s", c.config.Host, c.config.Port),
	}
	if c.config.URL != "" {
		status.ConnectionInfo = c.config.URL
	}

	if client == nil {
		status.Error = "Redis client not initialized"
		return status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	err := client.Ping(ctx).Err()
	status.ResponseTime = time.Since(start)
	status.LastPing = time.Now()

	c.mu.Lock()
	c.isConnected = err == nil
	c.mu.Unlock()

	if err != nil {
		status.Error = err.Error()
		return status
	}

	status.IsConnected = true
	return status
}

// Close shuts down the Redis client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
