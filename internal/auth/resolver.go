package auth

import "os"

const (
	// LegacyEnvVar is the variable the web build read its Gemini key from.
	LegacyEnvVar = "API_KEY"

	legacyProvider = "gemini"
)

type KeySource string

const (
	SourceAuthStore KeySource = "auth.json"
	SourceEnvVar    KeySource = "env var"
	SourceNone      KeySource = "not configured"
)

// Credential is a resolved API key and where it came from. EnvVar names the
// variable when Source is SourceEnvVar.
type Credential struct {
	Key    string
	Source KeySource
	EnvVar string
}

func (c Credential) Found() bool {
	return c.Key != ""
}

// Resolve looks up the key for provider: the stored key first, then the
// given environment variables in order. Gemini also falls back to
// LegacyEnvVar. A nil store only consults the environment.
func (s *Store) Resolve(provider string, envVars ...string) Credential {
	if s != nil {
		if key, err := s.Get(provider); err == nil {
			return Credential{Key: key, Source: SourceAuthStore}
		}
	}

	if normalize(provider) == legacyProvider {
		envVars = append(envVars[:len(envVars):len(envVars)], LegacyEnvVar)
	}
	for _, envVar := range envVars {
		if envVar == "" {
			continue
		}
		if key := os.Getenv(envVar); key != "" {
			return Credential{Key: key, Source: SourceEnvVar, EnvVar: envVar}
		}
	}

	return Credential{Source: SourceNone}
}
