package main

import (
	"casitas/config"
	"casitas/di"
	"casitas/shared/logger"
)

// @title Casitas Puebla API
// @version 1.0
// @description Bilingual student housing listings and bookings for Puebla.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
