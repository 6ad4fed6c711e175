package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/sigorta-api/pkg/config"
)

// applicationName aparece en pg_stat_activity para distinguir las conexiones de la API.
const applicationName = "sigorta-api"

// NewPool crea el pool de PostgreSQL. Con DATABASE_URL se respeta la URL; si no, se arma el DSN
// desde DB_HOST, DB_PORT, etc. En ambos casos el host se marca en IPv4 cuando es posible,
// porque los contenedores suelen no tener ruta IPv6.
// Las sesiones trabajan en UTC: los vencimientos se comparan con now() del servidor.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	res := defaultResolver()
	poolConfig, err := pgxpool.ParseConfig(dsnFor(cfg, res))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.ConnConfig.DialFunc = res.dial
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"
	sizePool(poolConfig, cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// sizePool fija el tamaño y la rotación de conexiones. MinConns nunca supera MaxConns.
func sizePool(pc *pgxpool.Config, maxConns int32) {
	if maxConns <= 0 {
		maxConns = 25
	}
	pc.MaxConns = maxConns
	pc.MinConns = min(2, maxConns)
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute
}

// dsnFor devuelve el DSN con el host ya traducido a IPv4 cuando el resolver lo consigue.
func dsnFor(cfg config.DBConfig, res *ipv4Resolver) string {
	if cfg.DatabaseURL != "" {
		return res.rewriteURL(cfg.DatabaseURL)
	}
	if ip, err := res.lookup(cfg.Host); err == nil {
		cfg.Host = ip
	}
	return cfg.DSN()
}

var errNoIPv4 = errors.New("sin dirección IPv4")

// ipv4Resolver resuelve hosts a IPv4. Si el DNS del sistema solo devuelve AAAA se consulta fallback.
type ipv4Resolver struct {
	system   func(ctx context.Context, host string) ([]net.IP, error)
	fallback string // servidor DNS udp host:puerto; vacío lo deshabilita
}

func defaultResolver() *ipv4Resolver {
	return &ipv4Resolver{
		system: func(ctx context.Context, host string) ([]net.IP, error) {
			return net.DefaultResolver.LookupIP(ctx, "ip4", host)
		},
		fallback: "8.8.8.8:53",
	}
}

func (r *ipv4Resolver) lookup(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s: %w", host, errNoIPv4)
	}
	ctx := context.Background()
	if ip, err := firstIPv4(r.system(ctx, host)); err == nil {
		return ip, nil
	}
	if r.fallback == "" {
		return "", fmt.Errorf("%s: %w", host, errNoIPv4)
	}
	public := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", r.fallback)
		},
	}
	return firstIPv4(public.LookupIP(ctx, "ip4", host))
}

func firstIPv4(ips []net.IP, err error) (string, error) {
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip.To4() != nil {
			return ip.String(), nil
		}
	}
	return "", errNoIPv4
}

// dial fuerza tcp4 cuando el host resuelve a IPv4; si no, deja la dirección como llegó.
func (r *ipv4Resolver) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := r.lookup(host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// rewriteURL sustituye el host de la URL por su IPv4; ante cualquier fallo devuelve la URL original.
func (r *ipv4Resolver) rewriteURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ip, err := r.lookup(u.Hostname())
	if err != nil {
		return raw
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}
