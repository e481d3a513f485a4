package config

type PostgresConfig struct {
	HostName string `yaml:"host"`
	DbName   string `yaml:"db"`
	UserName string `yaml:"username"`
	UserPswd string `yaml:"password"`
}

func (s *PostgresConfig) Host() string {
	return s.HostName
}

func (s *PostgresConfig) Database() string {
	return s.DbName
}

func (s *PostgresConfig) Username() string {
	return s.UserName
}

func (s *PostgresConfig) Password() string {
	return s.UserPswd
}
