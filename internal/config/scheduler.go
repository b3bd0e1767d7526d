package config

type SchedulerConfig struct {
	// SweepCron is a standard cron expression. Empty disables the in-process
	// schedule; the HTTP sweep trigger keeps working either way.
	SweepCron string `yaml:"sweep_cron"`
}

func loadSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		SweepCron: getEnv("SWEEP_CRON", ""),
	}
}
