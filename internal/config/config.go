package config

import "github.com/spf13/viper"

// Credentials holds the optional API keys for the external reputation
// providers. DNS, TLS and header checks need no credential; an empty key
// degrades the corresponding check to its documented "skipped" behavior.
type Credentials struct {
	SafeBrowsingKey string
	VirusTotalKey   string
	WhoisKey        string
}

// envBindings maps config keys to their environment variable names.
var envBindings = map[string]string{
	"api_keys.safe_browsing": "GOOGLE_SAFE_BROWSING_KEY",
	"api_keys.virus_total":   "VIRUS_TOTAL_KEY",
	"api_keys.whois":         "WHOIS_KEY",
}

// LoadCredentials reads provider keys from the environment and any loaded
// config file. Environment variables take precedence over file values so
// deployments can override a checked-in config.
func LoadCredentials() Credentials {
	for key, env := range envBindings {
		_ = viper.BindEnv(key, env)
	}

	return Credentials{
		SafeBrowsingKey: viper.GetString("api_keys.safe_browsing"),
		VirusTotalKey:   viper.GetString("api_keys.virus_total"),
		WhoisKey:        viper.GetString("api_keys.whois"),
	}
}
