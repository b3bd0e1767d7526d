package config

type MailerConfig struct {
	Provider  string        `yaml:"provider"` // resend, smtp
	FromEmail string        `yaml:"from_email"`
	FromName  string        `yaml:"from_name"`
	Resend    *ResendConfig `yaml:"resend"`
	SMTP      *SMTPConfig   `yaml:"smtp"`
}

type ResendConfig struct {
	APIKey string `yaml:"api_key"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func loadMailerConfig() *MailerConfig {
	return &MailerConfig{
		Provider:  getEnv("MAILER_PROVIDER", "resend"),
		FromEmail: getEnv("MAILER_FROM_EMAIL", "alerts@deadyet.app"),
		FromName:  getEnv("MAILER_FROM_NAME", "DeadYet"),
		Resend: &ResendConfig{
			APIKey: getEnv("RESEND_API_KEY", ""),
		},
		SMTP: &SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
		},
	}
}
