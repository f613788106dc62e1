package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App     AppSettings     `mapstructure:"app"`
	JWT     JWTSettings     `mapstructure:"jwt"`
	Designa DesignaSettings `mapstructure:"designa"`
	Hit     HitSettings     `mapstructure:"hit"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// JWTSettings configures access token signing. Algorithm must be an HMAC
// variant (HS256/HS384/HS512); tokens are signed with the shared secret.
type JWTSettings struct {
	Secret          string `mapstructure:"secret"`
	Algorithm       string `mapstructure:"algorithm"`
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"`
}

// DesignaSettings configures the upstream DESIGNA SOAP backend. Two
// endpoints exist: cashpoint operations (tickets, settlements, tariffs)
// and service operations (customers, carriers, counters).
type DesignaSettings struct {
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	CashpointURL string        `mapstructure:"cashpoint_url"`
	ServiceURL   string        `mapstructure:"service_url"`
	TCCEntry     int           `mapstructure:"tcc_entry"`
	TCCExit      int           `mapstructure:"tcc_exit"`
	SSLVerify    bool          `mapstructure:"ssl_verify"`
	CallTimeout  time.Duration `mapstructure:"call_timeout"`
}

// HitSettings configures the Windcave HIT payment terminal endpoint.
type HitSettings struct {
	Endpoint    string        `mapstructure:"endpoint"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("GATEWAY")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"jwt.secret",
		"jwt.algorithm",
		"jwt.token_ttl_minutes",
		"designa.user",
		"designa.password",
		"designa.cashpoint_url",
		"designa.service_url",
		"designa.tcc_entry",
		"designa.tcc_exit",
		"designa.ssl_verify",
		"designa.call_timeout",
		"hit.endpoint",
		"hit.call_timeout",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}
	if cfg.Designa.CashpointURL == "" {
		return nil, fmt.Errorf("designa.cashpoint_url is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "designa-gateway")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)

	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.token_ttl_minutes", 1440)

	v.SetDefault("designa.tcc_entry", 15)
	v.SetDefault("designa.tcc_exit", 20)
	v.SetDefault("designa.ssl_verify", false)
	v.SetDefault("designa.call_timeout", "30s")

	v.SetDefault("hit.call_timeout", "30s")
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "GATEWAY_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
