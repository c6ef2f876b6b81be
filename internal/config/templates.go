package config

import (
	"fmt"
	"os"
)

// Template returns the commented starter config written by -init-config.
func Template() string {
	return clientTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(clientTemplate), 0o600)
}

const clientTemplate = `# ergoshake client config
target = "127.0.0.1:4370"
agent_name = "ergoshake"
version = "3.3.6"
peer_name = "ergoshake"
timeout = "30s"
read_buffer_size = 1024
# metrics_file = "ergoshake.prom"

[log]
level = "info"
json = false
`
