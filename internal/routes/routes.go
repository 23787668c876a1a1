package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/courtsys/judiciary-backend/internal/config"
	"github.com/courtsys/judiciary-backend/internal/handlers"
	"github.com/courtsys/judiciary-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	courtHandler *handlers.CourtHandler,
	staffHandler *handlers.StaffHandler,
	recycleHandler *handlers.RecycleHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — login and refresh are public, with a stricter limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	auth.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)
	auth.Put("/password", middleware.JWTProtected(cfg), authHandler.ChangePassword)

	// User management (admin only, except Get which allows self)
	users := api.Group("/users", middleware.JWTProtected(cfg))
	users.Get("/stats/overview", middleware.AdminRequired(), userHandler.Stats)
	users.Get("/", middleware.AdminRequired(), userHandler.List)
	users.Post("/", middleware.AdminRequired(), userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", middleware.AdminRequired(), userHandler.Update)
	users.Put("/:id/password", middleware.AdminRequired(), userHandler.ResetPassword)
	users.Delete("/:id", middleware.AdminRequired(), userHandler.Delete)

	// Courts — scoping beyond the role gate happens in the service layer
	courts := api.Group("/courts", middleware.JWTProtected(cfg))
	courts.Get("/stats", courtHandler.Stats)
	courts.Get("/circuit", courtHandler.ListCircuits)
	courts.Post("/circuit", middleware.AdminRequired(), courtHandler.CreateCircuit)
	courts.Get("/circuit/:id", courtHandler.GetCircuit)
	courts.Put("/circuit/:id", middleware.CircuitOrAdminRequired(), courtHandler.UpdateCircuit)
	courts.Delete("/circuit/:id", middleware.AdminRequired(), courtHandler.DeleteCircuit)
	courts.Get("/circuit/:circuitId/magisterial", courtHandler.ListMagisterials)
	courts.Post("/circuit/:circuitId/magisterial", middleware.CircuitOrAdminRequired(), courtHandler.CreateMagisterial)
	courts.Get("/magisterial/:id", courtHandler.GetMagisterial)
	courts.Put("/magisterial/:id", courtHandler.UpdateMagisterial)
	courts.Delete("/magisterial/:id", middleware.CircuitOrAdminRequired(), courtHandler.DeleteMagisterial)

	// Staff
	staff := api.Group("/staff", middleware.JWTProtected(cfg))
	staff.Get("/stats/overview", staffHandler.Stats)
	staff.Get("/", middleware.AdminRequired(), staffHandler.List)
	staff.Post("/", staffHandler.Create)
	staff.Get("/court/:kind/:courtId", staffHandler.ListByCourt)
	staff.Get("/status/:status", staffHandler.ListByStatus)
	staff.Get("/:id", staffHandler.Get)
	staff.Put("/:id", staffHandler.Update)
	staff.Delete("/:id", staffHandler.Delete)

	// Recycle bin (admin only)
	recycle := api.Group("/recycle-bin", middleware.JWTProtected(cfg), middleware.AdminRequired())
	recycle.Get("/", recycleHandler.List)
	recycle.Post("/circuit/:id/restore", recycleHandler.RestoreCircuit)
	recycle.Post("/magisterial/:id/restore", recycleHandler.RestoreMagisterial)
	recycle.Post("/staff/:id/restore", recycleHandler.RestoreStaff)
	recycle.Delete("/circuit/:id", recycleHandler.PurgeCircuit)
	recycle.Delete("/magisterial/:id", recycleHandler.PurgeMagisterial)
	recycle.Delete("/staff/:id", recycleHandler.PurgeStaff)
	recycle.Delete("/", recycleHandler.Empty)
}
