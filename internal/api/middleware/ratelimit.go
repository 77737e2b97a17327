package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonAvailability/internal/api/handlers"
)

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP.
// X-Forwarded-For учитывается только от доверенных прокси.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
	proxies  []*net.IPNet
	logger   Logger
}

// NewRateLimiter rps - запросов в секунду на IP, burst - допустимый всплеск,
// trustedProxies - адреса или CIDR прокси, которым можно верить в X-Forwarded-For
func NewRateLimiter(rps float64, burst int, trustedProxies []string, logger Logger) (*RateLimiter, error) {
	proxies, err := ParseTrustedProxies(trustedProxies)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		proxies:  proxies,
		logger:   logger,
	}, nil
}

// ParseTrustedProxies принимает IP или CIDR; одиночный IP превращается в сеть из одного адреса
func ParseTrustedProxies(values []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if _, ipNet, err := net.ParseCIDR(v); err == nil {
			nets = append(nets, ipNet)
			continue
		}
		ip := net.ParseIP(v)
		if ip == nil {
			return nil, fmt.Errorf("invalid trusted proxy %q", v)
		}
		bits := 8 * net.IPv4len
		if ip.To4() == nil {
			bits = 8 * net.IPv6len
		} else {
			ip = ip.To4()
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets, nil
}

// Middleware отвечает 429, если лимит для IP исчерпан
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := l.clientIP(r)
		if !l.limiter(ip).Allow() {
			l.logger.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
			handlers.RespondTooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
		l.logger.Debug("RateLimiter: new client ip=%s, tracked=%d", ip, len(l.visitors))
	}
	v.lastSeen = now
	return v.limiter
}

// Cleanup удаляет лимитеры IP, от которых давно не было запросов
func (l *RateLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, v := range l.visitors {
		if time.Since(v.lastSeen) > l.idleTTL {
			delete(l.visitors, ip)
		}
	}
}

// RunCleanup периодически вызывает Cleanup, пока не закрыт stopCh
func (l *RateLimiter) RunCleanup(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			l.Cleanup()
		}
	}
}

// clientIP адрес клиента. Если запрос пришел от доверенного прокси, X-Forwarded-For
// просматривается справа налево до первого недоверенного адреса, иначе берется RemoteAddr.
func (l *RateLimiter) clientIP(r *http.Request) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !l.trusted(remote) {
		return remote
	}

	fwd := r.Header.Get("X-Forwarded-For")
	if fwd == "" {
		return remote
	}
	hops := strings.Split(fwd, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if net.ParseIP(hop) == nil {
			break
		}
		if !l.trusted(hop) || i == 0 {
			return hop
		}
	}
	return remote
}

func (l *RateLimiter) trusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range l.proxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
