package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"lifelessons/cmd/app"
	"lifelessons/internal/config"
	"lifelessons/internal/database"
	handlers "lifelessons/internal/handler"
	"lifelessons/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer database.MethodsDB.CloseDB(db)

	handler := handlers.NewHandlers(db, repo, services, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handler.Home).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	router.HandleFunc("/api/users/sync", handler.SyncUser).Methods(http.MethodPost)
	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)

	// Фиксированные пути уроков регистрируются раньше путей с {id}
	router.HandleFunc("/api/lessons", handler.GetLessons).Methods(http.MethodGet)
	router.HandleFunc("/api/lessons", handler.CreateLesson).Methods(http.MethodPost)
	router.HandleFunc("/api/lessons/my", handler.GetMyLessons).Methods(http.MethodGet)
	router.HandleFunc("/api/lessons/featured", handler.GetFeaturedLessons).Methods(http.MethodGet)
	router.HandleFunc("/api/lessons/most-saved", handler.GetMostSavedLessons).Methods(http.MethodGet)
	router.HandleFunc("/api/lessons/{id}", handler.GetLesson).Methods(http.MethodGet)
	router.HandleFunc("/api/lessons/{id}", handler.UpdateLesson).Methods(http.MethodPatch)
	router.HandleFunc("/api/lessons/{id}", handler.DeleteLesson).Methods(http.MethodDelete)
	router.HandleFunc("/api/lessons/{id}/like", handler.ToggleLike).Methods(http.MethodPost)
	router.HandleFunc("/api/lessons/{id}/report", handler.ReportLesson).Methods(http.MethodPost)
	router.HandleFunc("/api/lessons/{id}/image", handler.UploadLessonImage).Methods(http.MethodPost)
	router.HandleFunc("/api/lessons/{id}/comments", handler.GetComments).Methods(http.MethodGet)
	router.HandleFunc("/api/lessons/{id}/comments", handler.CreateComment).Methods(http.MethodPost)
	router.HandleFunc("/api/comments/{commentId}", handler.DeleteComment).Methods(http.MethodDelete)

	router.HandleFunc("/api/favorites", handler.GetFavorites).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites/{id}", handler.AddFavorite).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/{id}", handler.RemoveFavorite).Methods(http.MethodDelete)

	router.HandleFunc("/api/stats/me", handler.GetUserStats).Methods(http.MethodGet)
	router.HandleFunc("/api/stats/top-contributors", handler.GetTopContributors).Methods(http.MethodGet)

	router.HandleFunc("/api/payments/create-checkout-session", handler.CreateCheckoutSession).Methods(http.MethodPost)
	router.HandleFunc("/api/payments/webhook", handler.StripeWebhook).Methods(http.MethodPost)
	router.HandleFunc("/api/payments/verify-payment", handler.VerifyPayment).Methods(http.MethodPost)

	// Админские маршруты за проверкой роли
	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.Use(middleware.RoleMiddleware("admin"))
	admin.HandleFunc("/users", handler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", handler.UpdateUserRole).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{id}", handler.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/lessons", handler.ListAllLessons).Methods(http.MethodGet)
	admin.HandleFunc("/lessons/{id}/featured", handler.SetFeatured).Methods(http.MethodPatch)
	admin.HandleFunc("/lessons/{id}/reviewed", handler.MarkReviewed).Methods(http.MethodPatch)
	admin.HandleFunc("/reports", handler.ListReports).Methods(http.MethodGet)
	admin.HandleFunc("/reports/{id}", handler.DismissReports).Methods(http.MethodDelete)
	admin.HandleFunc("/stats", handler.GetAdminStats).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
