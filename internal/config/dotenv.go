package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	ListenAddr             string
	UpstreamURL            string
	RoomID                 string
	RoomTitle              string
	BotUsername            string
	QRBaseURL              string
	QRSize                 int
	CountdownTickMillis    int
	SwapAckMillis          int
	FragmentTimeoutSeconds int
}

func Default() Config {
	return Config{
		ListenAddr:             ":8090",
		UpstreamURL:            "http://localhost:8000",
		BotUsername:            "victorina2024_bot",
		QRBaseURL:              "https://api.qrserver.com/v1/create-qr-code/",
		QRSize:                 300,
		CountdownTickMillis:    250,
		SwapAckMillis:          900,
		FragmentTimeoutSeconds: 5,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.ListenAddr = ":" + raw
	}
	if raw := os.Getenv("LISTEN_ADDR"); raw != "" {
		cfg.ListenAddr = raw
	}
	if raw := os.Getenv("UPSTREAM_URL"); raw != "" {
		cfg.UpstreamURL = strings.TrimSuffix(raw, "/")
	}
	if raw := os.Getenv("ROOM_ID"); raw != "" {
		cfg.RoomID = raw
	}
	if raw := os.Getenv("ROOM_TITLE"); raw != "" {
		cfg.RoomTitle = raw
	}
	if raw := os.Getenv("BOT_USERNAME"); raw != "" {
		cfg.BotUsername = raw
	}
	if raw := os.Getenv("QR_BASE_URL"); raw != "" {
		cfg.QRBaseURL = raw
	}
	if raw := os.Getenv("QR_SIZE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.QRSize = value
		}
	}
	if raw := os.Getenv("COUNTDOWN_TICK_MILLIS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.CountdownTickMillis = value
		}
	}
	if raw := os.Getenv("SWAP_ACK_MILLIS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.SwapAckMillis = value
		}
	}
	if raw := os.Getenv("FRAGMENT_TIMEOUT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.FragmentTimeoutSeconds = value
		}
	}
	return cfg
}

// JoinURL is the deep link players scan or tap to enter the room.
func (c Config) JoinURL() string {
	return "https://t.me/" + c.BotUsername + "?startapp=join_" + c.RoomID
}

// QRURL points at a third-party image generator keyed by the join URL.
func (c Config) QRURL() string {
	size := strconv.Itoa(c.QRSize)
	return c.QRBaseURL + "?size=" + size + "x" + size + "&data=" + url.QueryEscape(c.JoinURL())
}

// HostSocketURL is the quiz server's host websocket for this room.
func (c Config) HostSocketURL() string {
	base := c.UpstreamURL
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/screen/ws/host/" + c.RoomID
}
