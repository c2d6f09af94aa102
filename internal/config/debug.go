package config

import "os"

func IsDebug() bool {
	return os.Getenv("ROUTEBOT_DEBUG") == "1"
}
