package main

import (
	"context"
	"flag"
	"log"

	"github.com/sudo-init-do/hirewise/internal/admin"
	"github.com/sudo-init-do/hirewise/internal/config"
	"github.com/sudo-init-do/hirewise/internal/store"
	"github.com/sudo-init-do/hirewise/internal/store/jsonstore"
	"github.com/sudo-init-do/hirewise/internal/store/pgstore"
)

// Promotes an existing account to admin. Run against the same store the API
// uses:
//
//	go run ./cmd/adminutil/promote_admin -email user@example.com
func main() {
	email := flag.String("email", "", "email of the account to promote")
	flag.Parse()
	if *email == "" {
		log.Fatal("usage: promote_admin -email <email>")
	}

	cfg := config.Load()
	ctx := context.Background()

	var (
		st  store.Store
		err error
	)
	if cfg.StoreBackend == "postgres" {
		st, err = pgstore.Open(ctx, cfg.DatabaseURL)
	} else {
		st, err = jsonstore.Open(cfg.DataDir)
	}
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	user, err := admin.NewService(st).Promote(ctx, *email)
	if err != nil {
		log.Fatalf("promote %s: %v", *email, err)
	}
	log.Printf("promoted %s (%s) to %s", user.Email, user.Name, user.Type)
}
