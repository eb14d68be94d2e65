package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"campus-canteen/config"
	"campus-canteen/models"
	"campus-canteen/realtime"
	"campus-canteen/router"
	"campus-canteen/services"
	"campus-canteen/store"
	"campus-canteen/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

// seedAdmin bootstraps the allow-list from the environment so a fresh
// deployment has a working admin account. Existing rows are left alone.
func seedAdmin(ctx context.Context, s store.Store) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	if _, err := s.AdminByEmail(ctx, email); err == nil {
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		utils.ErrorLogger.Errorf("check admin %s: %v", email, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Errorf("hash admin password: %v", err)
		return
	}
	admin := models.Admin{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.SaveAdmin(ctx, &admin); err != nil {
		utils.ErrorLogger.Errorf("seed admin %s: %v", email, err)
		return
	}
	utils.InfoLogger.Infof("seeded admin account %s", email)
}

func main() {
	cfg := config.Load()

	st, err := store.Open(cfg, utils.ErrorLogger)
	if err != nil {
		utils.ErrorLogger.Fatalf("open store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	seedAdmin(ctx, st)

	hub := realtime.NewHub(utils.ErrorLogger)

	state := services.NewState(st, hub, utils.ErrorLogger)
	if err := state.Load(ctx); err != nil {
		utils.ErrorLogger.Fatalf("initial load: %v", err)
	}
	state.Start()
	defer state.Stop()

	cart := services.NewCartService(st, utils.ErrorLogger)
	tokens := services.NewTokenService(st, utils.ErrorLogger)

	r := router.SetupRouter(router.Deps{
		Store:  st,
		State:  state,
		Cart:   cart,
		Tokens: tokens,
		Hub:    hub,
		Log:    utils.InfoLogger,
	})

	utils.InfoLogger.Infof("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("server stopped: %v", err)
	}
}
