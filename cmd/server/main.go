package main

import (
	"fmt"
	"log"

	"ib-riskcalc/internal/advisory"
	"ib-riskcalc/internal/config"
	"ib-riskcalc/internal/database"
	"ib-riskcalc/internal/server"
	"ib-riskcalc/internal/service"
	"ib-riskcalc/internal/store"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg.DBDSN)

	st := store.NewGorm(db)
	gen := advisory.New(cfg.OpenAIKey, cfg.OpenAIModel, cfg.AdvisoryTimeout)
	svc := service.New(st, gen, cfg.RiskPolicy(), cfg.MaturityPolicy())

	r := server.NewRouter(svc, st)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
