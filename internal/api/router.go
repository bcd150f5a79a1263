package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"auditease-backend/internal/config"
	"auditease-backend/internal/handlers"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	DocumentHandler  *handlers.DocumentHandlers
	AuditHandler     *handlers.AuditHandlers
	ChatHandler      *handlers.ChatHandlers
	StandardsHandler *handlers.StandardsHandlers
	Config           *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Watch streams poll for minutes; everything else finishes well inside
	// the timeout.
	r.Use(middleware.Timeout(10 * time.Minute))

	// --- CORS Configuration ---
	// Adjust AllowedOrigins for your frontend deployment(s)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "https://*.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1", func(r chi.Router) {
		// --- Mount Document Routes ---
		if deps.DocumentHandler != nil {
			r.Route("/documents", func(r chi.Router) {
				r.Post("/", deps.DocumentHandler.HandleCreateDocument)
				r.Get("/", deps.DocumentHandler.HandleListDocuments)
				r.Get("/{documentID}", deps.DocumentHandler.HandleGetDocument)
			})
		} else {
			log.Println("WARN: DocumentHandler dependency is nil, skipping /v1/documents routes.")
		}

		// --- Mount Audit Routes ---
		if deps.AuditHandler != nil {
			r.Route("/audits", func(r chi.Router) {
				r.Post("/", deps.AuditHandler.HandleCreateAudit)
				r.Get("/", deps.AuditHandler.HandleListAudits)
				r.Get("/{auditID}", deps.AuditHandler.HandleGetAudit)
				r.Patch("/{auditID}/status", deps.AuditHandler.HandleUpdateStatus)
				r.Get("/{auditID}/watch", deps.AuditHandler.HandleWatchAudit)
				r.Get("/{auditID}/report.csv", deps.AuditHandler.HandleExportReport)

				// Compliance gaps
				r.Post("/{auditID}/gaps", deps.AuditHandler.HandleCreateGap)
				r.Get("/{auditID}/gaps", deps.AuditHandler.HandleListGaps)
				r.Post("/{auditID}/gaps/{gapID}/apply", deps.AuditHandler.HandleMarkGapApplied)

				// Document chat
				if deps.ChatHandler != nil {
					r.Get("/{auditID}/chat", deps.ChatHandler.HandleGetConversation)
					r.Post("/{auditID}/chat", deps.ChatHandler.HandleSendMessage)
					r.Delete("/{auditID}/chat", deps.ChatHandler.HandleClearConversation)
				}
			})
			r.Get("/dashboard/stats", deps.AuditHandler.HandleDashboardStats)
		} else {
			log.Println("WARN: AuditHandler dependency is nil, skipping /v1/audits routes.")
		}

		// --- Mount Standards Routes ---
		if deps.StandardsHandler != nil {
			r.Route("/standards", func(r chi.Router) {
				r.Get("/", deps.StandardsHandler.HandleListStandards)
				r.Get("/{standardID}", deps.StandardsHandler.HandleGetStandard)
				r.Post("/{standardID}/import", deps.StandardsHandler.HandleImportStandard)
			})
		} else {
			log.Println("WARN: StandardsHandler dependency is nil, skipping /v1/standards routes.")
		}
	})

	return r
}
