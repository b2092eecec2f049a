// Package config loads the simpleeq host settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the host settings for cmd/simpleeq.
type Config struct {
	MQTTBroker   string // empty disables remote control
	MQTTPort     int
	MQTTUser     string
	MQTTPassword string
	MQTTTopic    string

	SampleRate  int
	BlockSize   int
	AudioBuffer time.Duration
	Volume      float64

	RefreshRate  float64 // control loop rate in Hz
	SpectrumRate float64 // analyzer publish rate in Hz
	StateFile    string
}

// Load reads the configuration from EQ_* environment variables, falling
// back to defaults for unset or unparsable values.
func Load() *Config {
	broker := getEnv("EQ_MQTT_BROKER", "")
	if broker != "" && !strings.Contains(broker, "://") {
		broker = "tcp://" + broker
	}

	cfg := &Config{
		MQTTBroker:   broker,
		MQTTPort:     getEnvInt("EQ_MQTT_PORT", 1883),
		MQTTUser:     getEnv("EQ_MQTT_USER", ""),
		MQTTPassword: getEnv("EQ_MQTT_PASSWORD", ""),
		MQTTTopic:    strings.TrimSuffix(getEnv("EQ_MQTT_TOPIC", "simpleeq"), "/"),
		SampleRate:   getEnvInt("EQ_SAMPLE_RATE", 48000),
		BlockSize:    getEnvInt("EQ_BLOCK_SIZE", 512),
		AudioBuffer:  getEnvDuration("EQ_AUDIO_BUFFER", 100*time.Millisecond),
		Volume:       getEnvFloat("EQ_VOLUME", 0.1),
		RefreshRate:  getEnvFloat("EQ_REFRESH_RATE", 60),
		SpectrumRate: getEnvFloat("EQ_SPECTRUM_RATE", 10),
		StateFile:    getEnv("EQ_STATE_FILE", ""),
	}

	log.Printf("Config: rate=%d block=%d mqtt=%q topic=%s", cfg.SampleRate, cfg.BlockSize, cfg.MQTTBroker, cfg.MQTTTopic)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i > 0 {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
