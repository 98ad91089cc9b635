package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sudo-init-do/hirewise/internal/admin"
	"github.com/sudo-init-do/hirewise/internal/alerts"
	"github.com/sudo-init-do/hirewise/internal/auth"
	"github.com/sudo-init-do/hirewise/internal/config"
	"github.com/sudo-init-do/hirewise/internal/geo"
	"github.com/sudo-init-do/hirewise/internal/marketplace"
	"github.com/sudo-init-do/hirewise/internal/messaging"
	appmw "github.com/sudo-init-do/hirewise/internal/middleware"
	"github.com/sudo-init-do/hirewise/internal/payments"
	"github.com/sudo-init-do/hirewise/internal/profile"
	"github.com/sudo-init-do/hirewise/internal/store"
	"github.com/sudo-init-do/hirewise/internal/store/jsonstore"
	"github.com/sudo-init-do/hirewise/internal/store/pgstore"
)

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.StoreBackend == "postgres" {
		return pgstore.Open(context.Background(), cfg.DatabaseURL)
	}
	return jsonstore.Open(cfg.DataDir)
}

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	var notifier alerts.Notifier = alerts.LogNotifier{}
	if mailer := alerts.NewMailer(cfg); mailer != nil {
		notifier = mailer
	}

	authSvc := auth.NewService(st, notifier, geo.StaticResolver{}, cfg.JWTSecret)
	profileSvc := profile.NewService(st)
	marketSvc := marketplace.NewService(st, notifier)
	geoSvc := geo.NewService(st)
	messagingSvc := messaging.NewService(st, notifier)
	paymentsSvc := payments.NewService(st, payments.MpesaProvider{})
	adminSvc := admin.NewService(st)

	authH := auth.NewHandler(authSvc)
	profileH := profile.NewHandler(profileSvc)
	marketH := marketplace.NewHandler(marketSvc)
	geoH := geo.NewHandler(geoSvc)
	messagingH := messaging.NewHandler(messagingSvc)
	paymentsH := payments.NewHandler(paymentsSvc)
	adminH := admin.NewHandler(adminSvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Health
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// Public auth routes
	e.POST("/signup", authH.Signup)
	e.POST("/signup/verify", authH.Verify)
	e.POST("/signup/resend", authH.ResendCode)
	e.POST("/login", authH.Login)

	// Public discovery
	e.GET("/professionals", profileH.Search)
	e.GET("/professionals/:email", profileH.Get)
	e.GET("/professionals/:email/reviews", marketH.ReviewsFor)
	e.GET("/nearby/professionals", geoH.NearestProfessionals)

	// Authenticated group
	g := e.Group("")
	g.Use(appmw.JWT(cfg.JWTSecret))

	g.GET("/me", authH.Me)
	g.PUT("/professionals/profile", profileH.SaveProfile)

	// Jobs and quotes
	g.POST("/jobs", marketH.PostJob, appmw.RequireRoles(auth.TypeClient))
	g.GET("/jobs/open", marketH.OpenJobs)
	g.GET("/jobs/mine", marketH.MyJobs)
	g.GET("/jobs/:id", marketH.GetJob)
	g.POST("/jobs/:id/quotes", marketH.SendQuote, appmw.RequireRoles(auth.TypeProfessional))
	g.GET("/jobs/:id/quotes", marketH.QuotesForJob)
	g.GET("/quotes/mine", marketH.MyQuotes)
	g.POST("/jobs/:id/quotes/:quote_id/accept", marketH.AcceptQuote, appmw.RequireRoles(auth.TypeClient))
	g.POST("/jobs/:id/complete", marketH.CompleteJob, appmw.RequireRoles(auth.TypeClient))
	g.POST("/jobs/:id/feedback", marketH.SubmitFeedback)
	g.GET("/nearby/jobs", geoH.NearestJobs)

	// Messaging
	g.POST("/messages", messagingH.Send)
	g.GET("/messages", messagingH.Inbox)
	g.GET("/messages/:with", messagingH.Thread)

	// Payments
	g.POST("/payments/topup", paymentsH.Topup)
	g.GET("/payments", paymentsH.History)

	// Admin routes
	adminGroup := e.Group("/admin")
	adminGroup.Use(appmw.JWT(cfg.JWTSecret))
	adminGroup.Use(appmw.AdminGuard)
	adminGroup.GET("/stats", adminH.Stats)
	adminGroup.GET("/users", adminH.ListUsers)
	adminGroup.GET("/professionals", adminH.ListProfessionals)
	adminGroup.POST("/professionals/:email/certify", adminH.Certify)
	adminGroup.POST("/users/:email/suspend", adminH.Suspend)
	adminGroup.POST("/users/:email/activate", adminH.Activate)

	log.Printf("API server listening on :%s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
