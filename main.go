package main

import (
	"os"

	"backoffice/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		utils.Logger().WithError(err).Error("command failed")
		os.Exit(1)
	}
}
