package configuration

import (
	"fmt"
	"github.com/joho/godotenv"
)

// LoadEnvFile exports the variables of a dotenv file (e.g. /etc/default/ipmifan) into the process
// environment, so they can override configuration values with the IPMIFAN_ prefix.
// Variables that are already set are not overwritten.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("unable to load environment file %s: %w", path, err)
	}
	return nil
}
