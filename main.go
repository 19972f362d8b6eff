package main

import (
	"os"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/cli"
)

// @title Cement Rewards API
// @version 1.0
// @description Loyalty points, dealer confirmation and admin approval for cement buyers.
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
