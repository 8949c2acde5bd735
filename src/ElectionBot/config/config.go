package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Topics holds the four ledger topic identifiers.
type Topics struct {
	ElectionCreated string
	ElectionEnded   string
	CandidateAdded  string
	Voted           string
}

type Config struct {
	Token            string
	GuildID          string
	MirrorBaseURL    string
	LedgerGatewayURL string
	Topics           Topics
	RedisURL         string // optional; empty disables fan-out
	HTTPListen       string // optional; empty disables the web facade
	HTTPTimeout      time.Duration
}

// Load reads the environment and fails fast when any required value is
// missing, so a misconfigured process never starts serving commands.
func Load() (Config, error) {
	cfg := Config{
		Token:            os.Getenv("DISCORD_TOKEN"),
		GuildID:          os.Getenv("GUILD_ID"),
		MirrorBaseURL:    os.Getenv("MIRROR_BASE_URL"),
		LedgerGatewayURL: os.Getenv("LEDGER_GATEWAY_URL"),
		Topics: Topics{
			ElectionCreated: os.Getenv("ELECTION_CREATED_TOPIC_ID"),
			ElectionEnded:   os.Getenv("ELECTION_ENDED_TOPIC_ID"),
			CandidateAdded:  os.Getenv("CANDIDATE_ADDED_TOPIC_ID"),
			Voted:           os.Getenv("VOTED_TOPIC_ID"),
		},
		RedisURL:   getenv("REDIS_URL", ""),
		HTTPListen: getenv("HTTP_LISTEN", ""),
	}

	required := map[string]string{
		"DISCORD_TOKEN":             cfg.Token,
		"GUILD_ID":                  cfg.GuildID,
		"MIRROR_BASE_URL":           cfg.MirrorBaseURL,
		"LEDGER_GATEWAY_URL":        cfg.LedgerGatewayURL,
		"ELECTION_CREATED_TOPIC_ID": cfg.Topics.ElectionCreated,
		"ELECTION_ENDED_TOPIC_ID":   cfg.Topics.ElectionEnded,
		"CANDIDATE_ADDED_TOPIC_ID":  cfg.Topics.CandidateAdded,
		"VOTED_TOPIC_ID":            cfg.Topics.Voted,
	}
	var missing []string
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Config{}, fmt.Errorf("config: missing required environment: %s", strings.Join(missing, ", "))
	}

	timeoutSeconds := 30
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: invalid HTTP_TIMEOUT %q", v)
		}
		timeoutSeconds = n
	}
	cfg.HTTPTimeout = time.Duration(timeoutSeconds) * time.Second

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
