package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	sessionServ *service.SessionService,
	secureCookie bool,
	authH *AuthHandler,
	expenseH *ExpenseHandler,
	listingH *ListingHandler,
	seminarH *SeminarHandler,
	noteH *NoteHandler,
	chatH *ChatHandler,
	eventH *EventHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery, JSON content-type y sesion.
	r.Use(
		zapLoggerMiddleware(logger),
		gin.Recovery(),
		jsonContentTypeMiddleware(),
		SessionAuthMiddleware(logger, sessionServ, secureCookie),
	)

	auth := r.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/login", authH.Login)
	auth.POST("/logout", authH.Logout)
	auth.GET("/user", RequireAuth(), authH.Me)

	expenses := r.Group("/expenses", RequireAuth())
	expenses.POST("", expenseH.Create)
	expenses.GET("", expenseH.List)
	expenses.GET("/summary", expenseH.Summary)
	expenses.PUT("/:id", expenseH.Update)
	expenses.DELETE("/:id", expenseH.Delete)

	scholarships := r.Group("/scholarships", RequireAuth())
	scholarships.GET("", listingH.ListScholarships)
	scholarships.GET("/:id", listingH.GetScholarship)
	scholarships.GET("/:id/estimate", listingH.EstimateScholarship)

	internships := r.Group("/internships", RequireAuth())
	internships.GET("", listingH.ListInternships)
	internships.GET("/:id", listingH.GetInternship)

	seminars := r.Group("/seminars", RequireAuth())
	seminars.POST("", seminarH.Create)
	seminars.GET("", seminarH.List)
	seminars.PUT("/:id", seminarH.Update)
	seminars.DELETE("/:id", seminarH.Delete)

	notes := r.Group("/notes", RequireAuth())
	notes.POST("", noteH.Create)
	notes.GET("", noteH.List)
	notes.GET("/:id", noteH.Get)
	notes.PUT("/:id", noteH.Update)
	notes.DELETE("/:id", noteH.Delete)

	chat := r.Group("/chat", RequireAuth())
	chat.POST("/conversations", chatH.StartConversation)
	chat.GET("/conversations", chatH.ListConversations)
	chat.POST("/conversations/:id/messages", chatH.PostMessage)
	chat.GET("/conversations/:id/messages", chatH.ListMessages)

	calendar := r.Group("/calendar", RequireAuth())
	calendar.POST("/events", eventH.Create)
	calendar.GET("/events", eventH.List)
	calendar.PUT("/events/:id", eventH.Update)
	calendar.DELETE("/events/:id", eventH.Delete)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
