package app

import (
	"fmt"
	"net/http"

	"memberd/internal/app/deps"
	"memberd/internal/app/services"
	completeregistration "memberd/internal/http/handlers/complete_registration"
	"memberd/internal/http/handlers/healthz"
	listmembers "memberd/internal/http/handlers/list_members"
	registerinit "memberd/internal/http/handlers/register_init"
	verifyemail "memberd/internal/http/handlers/verify_email"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	router.Method(http.MethodPost, "/register-init", registerinit.New(s.IssueVerification, isTestMode))
	router.Method(http.MethodGet, "/verify", verifyemail.New(s.ConfirmVerification))
	router.Method(http.MethodPost, "/complete-registration", completeregistration.New(s.CompleteRegistration))
	router.Method(http.MethodGet, "/members", listmembers.New(s.ListMembers))
	router.Method(http.MethodGet, "/healthz", healthz.New())

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
