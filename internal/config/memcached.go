package config

// An empty host list disables the report cache.
type MemcachedConfig struct {
	HostList []string `yaml:"hosts"`
}

func (s *MemcachedConfig) Hosts() []string {
	return s.HostList
}
