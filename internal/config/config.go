// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port            string
	AppVersion      string
	MaxConcurrent   int
	PromoURL        string
	MaintenanceNote string
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	maxConcurrent := 6
	if raw := os.Getenv("MAX_CONCURRENT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("MAX_CONCURRENT must be a positive integer, got %q", raw)
		}
		maxConcurrent = n
	}

	return &Config{
		Port:            port,
		AppVersion:      "1.4.2",
		MaxConcurrent:   maxConcurrent,
		PromoURL:        os.Getenv("PROMO_URL"),
		MaintenanceNote: os.Getenv("MAINTENANCE_NOTE"),
	}, nil
}
