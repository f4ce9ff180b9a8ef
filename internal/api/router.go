package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicore/clinic-system/internal/api/handler"
	"github.com/clinicore/clinic-system/internal/api/middleware"
	"github.com/clinicore/clinic-system/internal/core/service"
	"github.com/clinicore/clinic-system/internal/infrastructure/config"
	mongodb "github.com/clinicore/clinic-system/internal/infrastructure/db/mongo"
	redisdb "github.com/clinicore/clinic-system/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered. Everything
// except login, logout, health, and metrics sits behind the session gate.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *service.AuthService) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	// --- Dependencies ---
	txRunner := mongodb.NewTxRunner(db.Client())
	userRepo := mongodb.NewUserRepository(db)
	merchandiseRepo := mongodb.NewMerchandiseRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	supplierRepo := mongodb.NewSupplierRepository(db)
	invoiceRepo := mongodb.NewInvoiceRepository(db)
	patientRepo := mongodb.NewPatientRepository(db)
	professionalRepo := mongodb.NewProfessionalRepository(db)
	odontogramRepo := mongodb.NewOdontogramRepository(db)
	procedureRepo := mongodb.NewProcedureRepository(db)
	budgetRepo := mongodb.NewBudgetRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	authService := service.NewAuthService(userRepo, sessionStore, cfg.SessionSecret, cfg.SessionTTL, log)
	merchandiseService := service.NewMerchandiseService(merchandiseRepo, auditRepo, txRunner, log)
	supplierService := service.NewSupplierService(supplierRepo, invoiceRepo, auditRepo, txRunner, log)
	peopleService := service.NewPeopleService(patientRepo, professionalRepo, log)
	clinicalService := service.NewClinicalService(odontogramRepo, procedureRepo, budgetRepo, patientRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, log)

	authHandler := handler.NewAuthHandler(authService, authService.SessionTTL())
	pricingHandler := handler.NewPricingHandler()
	merchandiseHandler := handler.NewMerchandiseHandler(merchandiseService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	peopleHandler := handler.NewPeopleHandler(peopleService)
	clinicalHandler := handler.NewClinicalHandler(clinicalService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	// --- Open routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Gated routes ---
	gate := middleware.Session(authService, sessionStore, authService.SessionTTL())
	g := e.Group("", gate)

	g.POST("/pricing/quote", pricingHandler.Quote)

	g.GET("/merchandise", merchandiseHandler.List)
	g.GET("/merchandise/search", merchandiseHandler.Search)
	g.POST("/merchandise", merchandiseHandler.Create)
	g.PUT("/merchandise/:id", merchandiseHandler.Update)
	g.DELETE("/merchandise/:id", merchandiseHandler.Delete)

	g.GET("/suppliers", supplierHandler.List)
	g.POST("/suppliers", supplierHandler.Create)
	g.PUT("/suppliers/:id", supplierHandler.Update)
	g.DELETE("/suppliers/:id", supplierHandler.Delete)
	g.GET("/suppliers/:id/invoices", supplierHandler.ListInvoices)
	g.POST("/suppliers/:id/invoices", supplierHandler.CreateInvoice)
	g.GET("/invoices/:id", supplierHandler.GetInvoice)
	g.PUT("/invoices/:id", supplierHandler.UpdateInvoice)
	g.DELETE("/invoices/:id", supplierHandler.DeleteInvoice)
	g.POST("/invoices/:id/items", supplierHandler.AddInvoiceItem)
	g.PUT("/invoice-items/:id", supplierHandler.UpdateInvoiceItem)
	g.DELETE("/invoice-items/:id", supplierHandler.DeleteInvoiceItem)

	g.GET("/audit", auditHandler.List)

	g.GET("/patients", peopleHandler.ListPatients)
	g.GET("/patients/:id", peopleHandler.GetPatient)
	g.POST("/patients", peopleHandler.CreatePatient)
	g.PUT("/patients/:id", peopleHandler.UpdatePatient)
	g.DELETE("/patients/:id", peopleHandler.DeletePatient)

	g.GET("/professionals", peopleHandler.ListProfessionals)
	g.POST("/professionals", peopleHandler.CreateProfessional)
	g.PUT("/professionals/:id", peopleHandler.UpdateProfessional)
	g.DELETE("/professionals/:id", peopleHandler.DeleteProfessional)

	g.GET("/patients/:id/odontogram", clinicalHandler.Odontogram)
	g.GET("/patients/:id/odontogram/:tooth", clinicalHandler.ToothRecord)
	g.POST("/patients/:id/odontogram", clinicalHandler.AddOdontogramEntry)
	g.PUT("/odontogram/:id", clinicalHandler.UpdateOdontogramEntry)

	g.GET("/procedures", clinicalHandler.ListProcedures)
	g.POST("/procedures", clinicalHandler.CreateProcedure)
	g.PUT("/procedures/:id", clinicalHandler.UpdateProcedure)
	g.DELETE("/procedures/:id", clinicalHandler.DeleteProcedure)

	g.GET("/patients/:id/budget", clinicalHandler.Budget)
	g.POST("/patients/:id/budget", clinicalHandler.AddBudgetItem)
	g.PUT("/budget-items/:id", clinicalHandler.UpdateBudgetItem)
	g.DELETE("/budget-items/:id", clinicalHandler.DeleteBudgetItem)

	g.GET("/api/appointments", appointmentHandler.Feed)
	g.POST("/api/appointments", appointmentHandler.Create)
	g.PUT("/api/appointments/:id", appointmentHandler.Update)
	g.DELETE("/api/appointments/:id", appointmentHandler.Delete)

	return e, authService
}
