package config

type AppConfig struct {
	Service        string `yaml:"service-name"`
	MetricsAddress string `yaml:"metrics-addr"`
}

func (s *AppConfig) ServiceName() string {
	if s.Service == "" {
		return "finance-tracker"
	}
	return s.Service
}

func (s *AppConfig) MetricsAddr() string {
	return s.MetricsAddress
}
