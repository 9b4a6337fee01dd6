package module

import (
	"assistant/internal/platform/config"
)

// Options configures the chat module
type Options struct {
	MaxDataRequests int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_CHAT_")
	return Options{
		MaxDataRequests: cf.MayInt("MAX_DATA_REQUESTS", 3),
	}
}
