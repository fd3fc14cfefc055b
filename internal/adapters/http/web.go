package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"cpgg/internal/adapters/captcha"
	"cpgg/internal/adapters/email"
	"cpgg/internal/adapters/http/middleware"
	"cpgg/internal/adapters/http/perf"
	"cpgg/internal/adapters/pdf"
	accountStore "cpgg/internal/adapters/storage/account"
	adminStore "cpgg/internal/adapters/storage/admin"
	laboratoryStore "cpgg/internal/adapters/storage/laboratory"
	outboxStore "cpgg/internal/adapters/storage/outbox"
	repairStore "cpgg/internal/adapters/storage/repair"
	researcherStore "cpgg/internal/adapters/storage/researcher"
	reservationStore "cpgg/internal/adapters/storage/reservation"
	rosterStore "cpgg/internal/adapters/storage/roster"
	"cpgg/internal/application/undo"
	"cpgg/internal/domain/reservation"
	"cpgg/internal/domain/roster"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore     accountStore.Store
	AdminStore       adminStore.Store
	ReservationStore reservationStore.Store
	RosterStore      rosterStore.Store
	ResearcherStore  researcherStore.Store
	RepairStore      repairStore.Store
	LaboratoryStore  laboratoryStore.Store
	OutboxStore      outboxStore.Store
}

// NotificationConfig carries the email routing knobs read from the
// environment: where notifications fall back to when no admin holds the
// target role, and the From header on outgoing mail.
type NotificationConfig struct {
	FromAddress        string
	SecretariaFallback string
	TIFallback         string
	GenericFallback    string
}

// loadCSRFKey reads the CSRF secret from CPGG_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CPGG_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CPGG_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CPGG_ENV") == "production" {
		log.Fatal("CPGG_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (tokens won't survive restart). Set CPGG_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Global captcha verifier (set by SetCaptchaVerifier)
var captchaVerifier captcha.Verifier

// Notification routing configuration
var notifyConfig NotificationConfig

// Undo buffers for soft deletes. One slot each: a new delete replaces the
// previous batch.
var reservationUndo *undo.Buffer[reservation.Reservation]
var rosterUndo *undo.Buffer[roster.Member]

// PDF builders shared by export and receipt handlers.
var reportBuilder = pdf.NewReportBuilder()
var receiptBuilder = pdf.NewReceiptBuilder()

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// SetCaptchaVerifier sets the global captcha verifier for the application.
func SetCaptchaVerifier(v captcha.Verifier) {
	captchaVerifier = v
}

// SetNotificationConfig sets the email routing configuration.
func SetNotificationConfig(cfg NotificationConfig) {
	notifyConfig = cfg
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("CPGG_ENV") == "production"

	reservationUndo = undo.NewBuffer[reservation.Reservation](undo.DefaultWindow)
	rosterUndo = undo.NewBuffer[roster.Member](undo.DefaultWindow)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
