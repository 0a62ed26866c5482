package config

import (
	"log"
	"os"
)

const defaultLIFFURL = "https://liff.line.me/2006989473-gqajDkdd"

type Config struct {
	DatabaseURL        string
	ChannelSecret      string // LINE channel secret, signs webhook bodies
	ChannelAccessToken string
	HTTPAddr           string // optional, default :8080
	LIFFURL            string // registration form linked from help/welcome
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("missing env %s", k)
		}
		return v
	}

	cfg := Config{
		DatabaseURL:        get("DATABASE_URL", true),
		ChannelSecret:      get("LINE_CHANNEL_SECRET", true),
		ChannelAccessToken: get("LINE_CHANNEL_ACCESS_TOKEN", true),
		HTTPAddr:           get("HTTP_ADDR", false),
		LIFFURL:            get("LIFF_URL", false),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.LIFFURL == "" {
		cfg.LIFFURL = defaultLIFFURL
	}
	return cfg
}
