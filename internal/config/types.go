package config

// Config holds all configuration for the application.
type Config struct {
	DBName         string
	Port           string
	Turso          TursoConfig
	Slack          SlackConfig
	ProjectID      string
	OutboxSchedule string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
