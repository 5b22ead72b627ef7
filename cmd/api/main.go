package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/resume-leads/internal/infra/database"
	"github.com/xavierca1/resume-leads/internal/infra/http/handlers"
	appmw "github.com/xavierca1/resume-leads/internal/infra/http/middleware"
	"github.com/xavierca1/resume-leads/internal/infra/integration/telegram"
	"github.com/xavierca1/resume-leads/internal/infra/integration/turnstile"
	"github.com/xavierca1/resume-leads/internal/infra/mail"
	"github.com/xavierca1/resume-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// 1. Repositório
	leadRepo := database.NewLeadRepository(db)

	// 2. Integrações
	verifier := turnstile.NewClient(os.Getenv("TURNSTILE_SECRET_KEY"), "")

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	notifiers := []usecase.LeadNotifier{
		telegram.NewClient(os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"), ""),
		mail.NewNotifier(
			os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"),
			os.Getenv("MAIL_PASS"), os.Getenv("MAIL_NOTIFY_TO"),
		),
	}

	// 3. UseCase
	captureLeadUC := usecase.NewCaptureLeadUseCase(
		leadRepo,
		verifier,
		notifiers,
		os.Getenv("LEADS_IP_SALT"),
		strings.EqualFold(os.Getenv("TELEGRAM_NOTIFY_UPDATES"), "true"),
	)

	// 4. Handlers
	leadHandler := handlers.NewLeadHandler(captureLeadUC)
	healthHandler := handlers.NewHealthHandler(db)

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/api/resume-lead", leadHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 resume-leads rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
