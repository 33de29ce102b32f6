package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/handler"
	"github.com/noah-isme/classroom-portal/internal/middleware"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/config"
	"github.com/noah-isme/classroom-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/classroom-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/classroom-portal/pkg/middleware/requestid"
	"github.com/noah-isme/classroom-portal/pkg/storage"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   repository.CollectionStore
	Uploads *storage.LocalStorage
	Metrics *service.MetricsService
}

// New wires services and handlers over deps and registers every route.
func New(deps Deps) *gin.Engine {
	cfg := deps.Config
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	cols := repository.NewCollections(deps.Store, logr, deps.Metrics)

	authSvc := service.NewAuthService(cols.Users, nil, logr)
	lectureSvc := service.NewLectureService(cols.Lectures, deps.Uploads, nil, logr)
	assignmentSvc := service.NewAssignmentService(cols.Assignments, cols.Submissions, cols.Users, deps.Uploads, nil, logr)
	submissionSvc := service.NewSubmissionService(cols.Submissions, deps.Uploads, logr)
	dashboardSvc := service.NewDashboardService(cols.Users, cols.Lectures, cols.Assignments, logr)
	exportSvc := service.NewExportService(cols.Submissions, cols.Assignments, cols.Users, logr, nil, nil)

	maxUpload := cfg.Uploads.MaxSizeBytes
	authHandler := handler.NewAuthHandler(authSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	lectureHandler := handler.NewLectureHandler(lectureSvc, maxUpload)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc, maxUpload)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc, maxUpload)
	uploadHandler := handler.NewUploadHandler(deps.Uploads)
	exportHandler := handler.NewExportHandler(exportSvc)

	var ready handler.ReadinessCheck
	if pinger, ok := deps.Store.(repository.Pinger); ok {
		ready = pinger.Ping
	}
	metricsHandler := handler.NewMetricsHandler(deps.Metrics, ready)

	r := gin.New()
	if maxUpload > 0 {
		r.MaxMultipartMemory = maxUpload
	}
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	web := r.Group("/")
	web.Use(middleware.Sessions(cfg.Session))

	web.GET("/", authHandler.LoginView)
	web.POST("/", authHandler.Login)
	web.GET("/signup", authHandler.SignupView)
	web.POST("/signup", authHandler.Signup)
	web.GET("/logout", authHandler.Logout)

	web.GET("/dashboard", middleware.RequireSession(), dashboardHandler.Show)
	web.GET("/uploads/:filename", middleware.RequireSession(), uploadHandler.Download)

	admin := web.Group("/admin")
	admin.Use(middleware.RequireSession(models.RoleAdmin))
	{
		admin.GET("/lectures", lectureHandler.List)
		admin.POST("/lectures", lectureHandler.Upload)
		admin.GET("/assignments", assignmentHandler.Overview)
		admin.POST("/assignments", assignmentHandler.Upload)
		admin.POST("/grade/:submission_id", submissionHandler.Grade)
		admin.GET("/gradebook", exportHandler.Gradebook)
	}

	studentGroup := web.Group("/student")
	studentGroup.Use(middleware.RequireSession(models.RoleStudent))
	studentGroup.POST("/submit/:assignment_id", submissionHandler.Submit)

	return r
}
