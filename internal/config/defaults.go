package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"backend":     "sqlite",
			"path":        "~/.lembretes/lembretes.db",
			"namespace":   "@lembretes_pwa:",
			"quota_bytes": 0,
		},
		"log": map[string]interface{}{
			"level":  "info",
			"format": "console",
		},
		"locale": map[string]interface{}{
			"timezone": "",
			"language": "pt",
		},
		"scheduler": map[string]interface{}{
			"enabled":  false,
			"interval": 60,
			"telegram": map[string]interface{}{
				"bot_token": "",
				"chat_id":   "",
				"base_url":  "https://api.telegram.org",
			},
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.lembretes/config.yaml"
}
