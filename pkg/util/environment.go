package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetPrefixedEnvironmentVariables returns only the variables starting with prefix, keyed without it
func GetPrefixedEnvironmentVariables(prefix string) map[string]string {
	prefixed := map[string]string{}

	for key, value := range GetEnvironmentVariables() {
		if strings.HasPrefix(key, prefix) && value != "" {
			prefixed[strings.TrimPrefix(key, prefix)] = value
		}
	}

	return prefixed
}
