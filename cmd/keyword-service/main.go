package main

import (
	"os"

	"github.com/pinwords/keyword-backend/keywordservice"
)

func main() {
	if err := keywordservice.Run(); err != nil {
		os.Exit(1)
	}
}
