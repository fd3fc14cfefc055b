package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"cpgg/internal/adapters/captcha"
	emailPkg "cpgg/internal/adapters/email"
	web "cpgg/internal/adapters/http"
	"cpgg/internal/adapters/http/perf"
	"cpgg/internal/adapters/storage"
	accountStore "cpgg/internal/adapters/storage/account"
	adminStore "cpgg/internal/adapters/storage/admin"
	laboratoryStore "cpgg/internal/adapters/storage/laboratory"
	outboxStore "cpgg/internal/adapters/storage/outbox"
	repairStore "cpgg/internal/adapters/storage/repair"
	researcherStore "cpgg/internal/adapters/storage/researcher"
	reservationStore "cpgg/internal/adapters/storage/reservation"
	rosterStore "cpgg/internal/adapters/storage/roster"
	"cpgg/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("CPGG_DB", "cpgg.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	grantStore := adminStore.NewSQLiteStore(timedDB)
	rostStore := rosterStore.NewSQLiteStore(timedDB)
	labStore := laboratoryStore.NewSQLiteStore(timedDB)
	obStore := outboxStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:     acctStore,
		AdminStore:       grantStore,
		ReservationStore: reservationStore.NewSQLiteStore(timedDB),
		RosterStore:      rostStore,
		ResearcherStore:  researcherStore.NewSQLiteStore(timedDB),
		RepairStore:      repairStore.NewSQLiteStore(timedDB),
		LaboratoryStore:  labStore,
		OutboxStore:      obStore,
	}

	generateID := func() string { return uuid.New().String() }

	// Provision admin accounts from CPGG_SEED_ADMINS ("email:password:role,...")
	seeds := orchestrators.ParseSeedAdmins(os.Getenv("CPGG_SEED_ADMINS"))
	if err := orchestrators.ExecuteSeedAdmins(context.Background(), seeds, orchestrators.SeedAdminsDeps{
		Accounts:   acctStore,
		Grants:     grantStore,
		GenerateID: generateID,
		Now:        time.Now,
	}); err != nil {
		log.Fatalf("failed to seed admins: %v", err)
	}

	// Fill empty roster and laboratory tables with the shipped defaults
	if err := orchestrators.ExecuteSeedReferenceData(context.Background(), orchestrators.SeedReferenceDeps{
		Roster:       rostStore,
		Laboratories: labStore,
		GenerateID:   generateID,
	}); err != nil {
		log.Fatalf("failed to seed reference data: %v", err)
	}

	// Notification routing
	emailFrom := envOrDefault("CPGG_FROM", "CPGG-UFBA <noreply@cpgg.ufba.br>")
	web.SetNotificationConfig(web.NotificationConfig{
		FromAddress:        emailFrom,
		SecretariaFallback: envOrDefault("CPGG_SECRETARIA_EMAIL", "secretaria@cpgg.ufba.br"),
		TIFallback:         envOrDefault("CPGG_TI_EMAIL", "ti@cpgg.ufba.br"),
		GenericFallback:    envOrDefault("CPGG_FALLBACK_EMAIL", "cpgg@ufba.br"),
	})

	// Email sender: Resend when keyed, SMTP relay as fallback, noop for dev
	var sender emailPkg.Sender
	switch {
	case os.Getenv("CPGG_RESEND_KEY") != "":
		sender = emailPkg.NewResendSender(os.Getenv("CPGG_RESEND_KEY"), emailFrom)
		log.Println("Email sender configured (Resend)")
	case os.Getenv("CPGG_SMTP_ADDR") != "":
		sender = emailPkg.NewSMTPSender(
			os.Getenv("CPGG_SMTP_ADDR"),
			os.Getenv("CPGG_SMTP_USERNAME"),
			os.Getenv("CPGG_SMTP_PASSWORD"),
			emailFrom,
		)
		log.Println("Email sender configured (SMTP)")
	default:
		sender = emailPkg.NewNoopSender()
		if os.Getenv("CPGG_ENV") == "production" {
			log.Println("WARNING: no email transport configured, delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set CPGG_RESEND_KEY or CPGG_SMTP_ADDR for real delivery)")
		}
	}
	web.SetEmailSender(sender)

	// Captcha: reCAPTCHA when keyed; otherwise a static verifier that accepts
	// everything outside production
	if secret := os.Getenv("CPGG_RECAPTCHA_SECRET"); secret != "" {
		web.SetCaptchaVerifier(captcha.NewRecaptchaVerifier(secret))
		log.Println("Captcha verifier configured (reCAPTCHA)")
	} else {
		if os.Getenv("CPGG_ENV") == "production" {
			log.Fatal("CPGG_RECAPTCHA_SECRET is required in production")
		}
		web.SetCaptchaVerifier(captcha.NewStaticVerifier(true))
		log.Println("Captcha verifier configured (static accept, dev only)")
	}

	// Background retry of failed notification emails
	stopOutbox := orchestrators.StartOutboxRetryScheduler(context.Background(), orchestrators.OutboxRetryDeps{
		OutboxStore: obStore,
		Sender:      sender,
		Now:         time.Now,
	}, orchestrators.DefaultOutboxRetryConfig())
	defer stopOutbox()

	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("CPGG_ADDR", ":8080")
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("CPGG back office %s starting on %s (env=%s, schema=%d)",
			version, addr, envOrDefault("CPGG_ENV", "development"), storage.LatestSchemaVersion)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
