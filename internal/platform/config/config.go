package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/attarhouse/storefront/internal/platform/textutil"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultStorageDir   = "data"
	defaultCurrency     = "BDT"
	defaultTaxBasisPts  = 0

	defaultShippingInsideDhaka  = 6000
	defaultShippingOutsideDhaka = 12000
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Pricing PricingConfig
	Orders  OrdersConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig selects the durable slot medium. When Disabled is set the
// process runs with a no-op medium, matching execution contexts that have no
// durable storage.
type StorageConfig struct {
	Dir      string
	Disabled bool
}

// PricingConfig carries the currency, shipping rate table and tax rate.
type PricingConfig struct {
	Currency      string
	ShippingRates map[string]int64
	TaxBasisPts   int64
}

// OrdersConfig points at the order-creation collaborator. An empty endpoint
// disables checkout submission.
type OrdersConfig struct {
	SubmitEndpoint string
	SubmitTimeout  time.Duration
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) { o.envFile = path }
}

// WithEnvMap injects explicit values that take precedence over every other
// source; used by tests.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) { o.envMap = textutil.NormalizeStringMap(values) }
}

// WithoutSystemEnv disables reading the process environment; used by tests.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) { o.useSystemEnv = false }
}

// Load resolves configuration with dotenv < OS env < explicit map precedence
// and applies defaults for every unset knob.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	values, err := resolveValues(options)
	if err != nil {
		return Config{}, err
	}

	get := func(key string) string { return strings.TrimSpace(values[key]) }

	var invalid []string

	cfg := Config{
		Server: ServerConfig{
			Port:         defaultPort,
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		Storage: StorageConfig{
			Dir: defaultStorageDir,
		},
		Pricing: PricingConfig{
			Currency: defaultCurrency,
			ShippingRates: map[string]int64{
				"insideDhaka":  defaultShippingInsideDhaka,
				"outsideDhaka": defaultShippingOutsideDhaka,
			},
			TaxBasisPts: defaultTaxBasisPts,
		},
		Orders: OrdersConfig{
			SubmitTimeout: 15 * time.Second,
		},
	}

	if port := get("PORT"); port != "" {
		cfg.Server.Port = port
	}
	applyDuration(get("SERVER_READ_TIMEOUT"), &cfg.Server.ReadTimeout, "SERVER_READ_TIMEOUT", &invalid)
	applyDuration(get("SERVER_WRITE_TIMEOUT"), &cfg.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT", &invalid)
	applyDuration(get("SERVER_IDLE_TIMEOUT"), &cfg.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT", &invalid)

	if dir := get("STORAGE_DIR"); dir != "" {
		cfg.Storage.Dir = dir
	}
	if raw := get("STORAGE_DISABLED"); raw != "" {
		disabled, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, "STORAGE_DISABLED")
		} else {
			cfg.Storage.Disabled = disabled
		}
	}

	if currency := get("CURRENCY"); currency != "" {
		cfg.Pricing.Currency = strings.ToUpper(currency)
	}
	if raw := get("SHIPPING_RATES"); raw != "" {
		rates, err := parseShippingRates(raw)
		if err != nil {
			invalid = append(invalid, "SHIPPING_RATES")
		} else {
			cfg.Pricing.ShippingRates = rates
		}
	}
	if raw := get("TAX_BASIS_POINTS"); raw != "" {
		bps, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || bps < 0 {
			invalid = append(invalid, "TAX_BASIS_POINTS")
		} else {
			cfg.Pricing.TaxBasisPts = bps
		}
	}

	cfg.Orders.SubmitEndpoint = get("ORDERS_SUBMIT_ENDPOINT")
	applyDuration(get("ORDERS_SUBMIT_TIMEOUT"), &cfg.Orders.SubmitTimeout, "ORDERS_SUBMIT_TIMEOUT", &invalid)

	if len(invalid) > 0 {
		return Config{}, &ValidationError{fields: invalid}
	}
	return cfg, nil
}

// parseShippingRates reads a "method=minorUnits" comma-separated list, e.g.
// "insideDhaka=6000,outsideDhaka=12000".
func parseShippingRates(raw string) (map[string]int64, error) {
	entries, err := textutil.ParseKeyValueList(raw)
	if err != nil {
		return nil, fmt.Errorf("config: malformed shipping rates: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("config: shipping rates empty")
	}

	rates := make(map[string]int64, len(entries))
	for method, amount := range entries {
		value, err := strconv.ParseInt(amount, 10, 64)
		if err != nil || value < 0 {
			return nil, fmt.Errorf("config: invalid shipping rate for %q", method)
		}
		rates[method] = value
	}
	return rates, nil
}

func applyDuration(raw string, target *time.Duration, field string, invalid *[]string) {
	if raw == "" {
		return
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		*invalid = append(*invalid, field)
		return
	}
	*target = value
}

func resolveValues(options loaderOptions) (map[string]string, error) {
	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	merge := func(source map[string]string) {
		for key, value := range source {
			values[key] = value
		}
	}

	merge(dotEnvValues)

	if options.useSystemEnv {
		system := make(map[string]string)
		for _, entry := range os.Environ() {
			parts := strings.SplitN(entry, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			if key == "" {
				continue
			}
			system[key] = parts[1]
		}
		merge(system)
	}

	merge(options.envMap)
	return values, nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		value = strings.Trim(value, "\"'")
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}
