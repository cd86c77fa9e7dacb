package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/VittaCapital/api-investimentos/internal/utils"
)

// RateLimiter é um limitador de janela fixa por IP.
type RateLimiter struct {
	mu        sync.Mutex
	tokens    map[string]int
	lastReset time.Time
	rate      int
	window    time.Duration
}

func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:    make(map[string]int),
		lastReset: time.Now(),
		rate:      rate,
		window:    window,
	}
}

// Permitir consome uma vaga do IP na janela atual.
func (l *RateLimiter) Permitir(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastReset) > l.window {
		l.tokens = make(map[string]int)
		l.lastReset = time.Now()
	}

	if l.tokens[ip] >= l.rate {
		return false
	}
	l.tokens[ip]++
	return true
}

// RateLimit limita requisições por IP; usado na rota de login.
func RateLimit(rate int, window time.Duration) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !limiter.Permitir(ip) {
				slog.Warn("rate limit excedido", "client_ip", ip, "path", r.URL.Path)
				utils.RespondErro(w, http.StatusTooManyRequests, "muitas requisições, tente novamente em instantes")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
