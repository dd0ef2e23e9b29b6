// Command rainbird queries and controls a Rain Bird irrigation controller over its WiFi module.
package main

import (
	"os"

	"github.com/arloliu/go-rainbird/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
