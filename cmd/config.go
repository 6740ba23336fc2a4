package cmd

import "time"

// DefaultAcceptanceWindow bounds how long a courier may sit on an offer
// when ACCEPTANCE_WINDOW is not configured.
const DefaultAcceptanceWindow = 30 * time.Minute

type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	KafkaHost             string
	KafkaOrderEventsTopic string
	AcceptanceWindow      string
}

// AcceptanceWindowDuration parses the configured acceptance window,
// falling back to DefaultAcceptanceWindow when unset or unparsable.
func (c Config) AcceptanceWindowDuration() time.Duration {
	if c.AcceptanceWindow == "" {
		return DefaultAcceptanceWindow
	}

	window, err := time.ParseDuration(c.AcceptanceWindow)
	if err != nil || window <= 0 {
		return DefaultAcceptanceWindow
	}

	return window
}
