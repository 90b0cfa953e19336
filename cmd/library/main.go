package main

import (
	"os"

	"github.com/xiebiao/library/pkg/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("命令执行失败")
		os.Exit(1)
	}
}
