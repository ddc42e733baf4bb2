package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/donlinch/archdon-sub001/platform/game"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr       string
	SocketAddr     string
	JWTSecret      string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string

	DB          DBConfig
	RedisURL    string
	SnapshotTTL time.Duration

	BoardFile  string
	CardsFile  string
	Rules      game.Rules
	TargetLaps int
}

type DBConfig struct {
	User     string
	Addr     string
	Password string
	Name     string
}

// Load reads the optional env files, then the environment. Later files do not
// override variables that are already set.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// a missing .env is normal outside development
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	rules := game.Rules{
		PassGoBonus:     v.GetInt("PASS_GO_BONUS"),
		StartBonus:      v.GetInt("START_BONUS"),
		InitialUnits:    v.GetInt("INITIAL_UNITS"),
		JailTurnsToSkip: v.GetInt("JAIL_TURNS_TO_SKIP"),
		HospitalPenalty: v.GetInt("HOSPITAL_PENALTY"),
		LotteryMin:      v.GetInt("LOTTERY_MIN"),
		LotteryMax:      v.GetInt("LOTTERY_MAX"),
	}
	if err := rules.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid rules: %w", err)
	}

	c := Config{
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		SocketAddr:     v.GetString("SOCKET_ADDR"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		DB: DBConfig{
			User:     v.GetString("DB_USER"),
			Addr:     v.GetString("DB_ADDR"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		RedisURL:    v.GetString("REDIS_URL"),
		SnapshotTTL: v.GetDuration("SNAPSHOT_TTL"),
		BoardFile:   v.GetString("BOARD_FILE"),
		CardsFile:   v.GetString("CARDS_FILE"),
		Rules:       rules,
		TargetLaps:  v.GetInt("DEFAULT_TARGET_LAPS"),
	}
	if c.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.TargetLaps < 1 {
		return Config{}, fmt.Errorf("DEFAULT_TARGET_LAPS must be at least 1")
	}
	if c.SnapshotTTL < 0 {
		return Config{}, fmt.Errorf("SNAPSHOT_TTL must not be negative")
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	rules := game.DefaultRules()
	v.SetDefault("HTTP_ADDR", ":4101")
	v.SetDefault("SOCKET_ADDR", ":8000")
	v.SetDefault("JWT_SECRET", "secret")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_ADDR", "localhost:5432")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "boardwalk")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("SNAPSHOT_TTL", "6h")
	v.SetDefault("BOARD_FILE", "")
	v.SetDefault("CARDS_FILE", "")
	v.SetDefault("DEFAULT_TARGET_LAPS", 3)
	v.SetDefault("PASS_GO_BONUS", rules.PassGoBonus)
	v.SetDefault("START_BONUS", rules.StartBonus)
	v.SetDefault("INITIAL_UNITS", rules.InitialUnits)
	v.SetDefault("JAIL_TURNS_TO_SKIP", rules.JailTurnsToSkip)
	v.SetDefault("HOSPITAL_PENALTY", rules.HospitalPenalty)
	v.SetDefault("LOTTERY_MIN", rules.LotteryMin)
	v.SetDefault("LOTTERY_MAX", rules.LotteryMax)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
