package config

type StorageConfig struct {
	BackendName string `yaml:"backend"`
	UsersPath   string `yaml:"users-file"`
	RecordsPath string `yaml:"records-file"`
}

func (s *StorageConfig) Backend() string {
	if s.BackendName == "" {
		return "file"
	}
	return s.BackendName
}

func (s *StorageConfig) UsersFile() string {
	if s.UsersPath == "" {
		return "users.json"
	}
	return s.UsersPath
}

func (s *StorageConfig) RecordsFile() string {
	if s.RecordsPath == "" {
		return "finance.json"
	}
	return s.RecordsPath
}
