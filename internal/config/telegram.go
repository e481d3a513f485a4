package config

type TelegramConfig struct {
	BotToken string `yaml:"token"`
}

func (t *TelegramConfig) Token() string {
	return t.BotToken
}
