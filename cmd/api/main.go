package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/geko-hr/leave-backend-go/internal/config"
	appHTTP "github.com/geko-hr/leave-backend-go/internal/handler/http"
	"github.com/geko-hr/leave-backend-go/internal/pkg/database"
	"github.com/geko-hr/leave-backend-go/internal/pkg/email"
	"github.com/geko-hr/leave-backend-go/internal/pkg/jwt"
	"github.com/geko-hr/leave-backend-go/internal/pkg/pdf"
	"github.com/geko-hr/leave-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/geko-hr/leave-backend-go/internal/service/auth"
	serviceLeave "github.com/geko-hr/leave-backend-go/internal/service/leave"
	serviceSignature "github.com/geko-hr/leave-backend-go/internal/service/signature"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	signatureRepo := postgresql.NewSignatureRepository(db)
	artifactRepo := postgresql.NewArtifactRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	renderer := pdf.NewRenderer()

	ledger := serviceLeave.NewLedger(employeeRepo, leaveRequestRepo)
	resolver := serviceLeave.NewResolver(employeeRepo, userRepo)
	artifactManager := serviceLeave.NewArtifactManager(artifactRepo, signatureRepo, userRepo, renderer)
	requestService := serviceLeave.NewRequestService(
		db,
		leaveRequestRepo,
		employeeRepo,
		userRepo,
		holidayRepo,
		ledger,
		resolver,
		artifactManager,
		emailService,
		cfg.App.BaseURL,
	)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	signatureService := serviceSignature.NewSignatureService(signatureRepo)

	authHandler := appHTTP.NewAuthHandler(authService)
	leaveHandler := appHTTP.NewLeaveHandler(requestService)
	signatureHandler := appHTTP.NewSignatureHandler(signatureService)

	router := appHTTP.NewRouter(JWTService, authHandler, leaveHandler, signatureHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
