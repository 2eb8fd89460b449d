package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/braintree-go/braintree-go"
	"github.com/disgoorg/disgo"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/vantage-club/clubgate/backend/handlers"
	"github.com/vantage-club/clubgate/backend/middleware"
	webservices "github.com/vantage-club/clubgate/backend/services"
	"github.com/vantage-club/clubgate/clubgate"
	discordsvc "github.com/vantage-club/clubgate/clubgate/discord"
	"github.com/vantage-club/clubgate/clubgate/database"
	"github.com/vantage-club/clubgate/clubgate/database/repositories"
	"github.com/vantage-club/clubgate/clubgate/logger"
	"github.com/vantage-club/clubgate/clubgate/mailer"
	"github.com/vantage-club/clubgate/clubgate/services"
	"github.com/vantage-club/clubgate/clubgate/token"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := clubgate.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var logHandler slog.Handler
	if strings.EqualFold(cfg.Log.Format, "json") {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     cfg.Log.Level,
			AddSource: cfg.Log.AddSource,
		})
	} else {
		logHandler = logger.NewHandler("ClubGate", cfg.Log.Level)
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("Starting ClubGate",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Persistence is optional: without it the service still issues and
	// redeems claims, gated only by token expiry.
	var db *database.DB
	var claimRepo repositories.ClaimRepository
	var memberRepo repositories.MembershipRepository
	var eventRepo repositories.EventRepository
	if cfg.DB.Enabled() {
		db, err = database.New(ctx, database.DBConfig{
			Host:         cfg.DB.Host,
			Port:         cfg.DB.Port,
			User:         cfg.DB.User,
			Password:     cfg.DB.Password,
			Database:     cfg.DB.Database,
			PoolSize:     cfg.DB.PoolSize,
			MaxIdleConns: cfg.DB.MaxIdleConns,
			MaxLifetime:  cfg.DB.MaxLifetime,
		})
		if err != nil {
			slog.Error("Failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			slog.Error("Failed to initialize schema", slog.String("error", err.Error()))
			os.Exit(1)
		}

		claimRepo = repositories.NewClaimRepository(db.BunDB())
		memberRepo = repositories.NewMembershipRepository(db.BunDB())
		eventRepo = repositories.NewEventRepository(db.BunDB())
		slog.Info("Database connected", slog.String("type", "db"))
	} else {
		slog.Warn("Database not configured, running without the claim ledger",
			slog.String("type", "sys"))
	}

	codec, err := token.NewCodec(cfg.Claims.Secret, cfg.Claims.TTL())
	if err != nil {
		slog.Error("Failed to create claim codec", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// REST-only Discord client; no gateway connection is needed to manage
	// roles.
	discordClient, err := disgo.New(cfg.Discord.Token)
	if err != nil {
		slog.Error("Failed to create Discord client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer discordClient.Close(context.Background())

	roleMap := discordsvc.NewRoleMap(cfg.Discord.Roles.Senales, cfg.Discord.Roles.Mentoria, cfg.Discord.Roles.Anual)
	roleService := discordsvc.NewRoleService(discordClient, cfg.Discord.GuildID, roleMap)

	var claimMailer services.Mailer
	if cfg.SendGrid.Enabled() {
		claimMailer = mailer.New(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail, cfg.Claims.TTLHours)
	} else {
		slog.Warn("SendGrid not configured, claim links will only be returned to the gateway",
			slog.String("type", "sys"))
	}

	var bt *braintree.Braintree
	if cfg.Braintree.Enabled() {
		env := braintree.Sandbox
		if strings.EqualFold(cfg.Braintree.Environment, "production") {
			env = braintree.Production
		}
		bt = braintree.New(env, cfg.Braintree.MerchantID, cfg.Braintree.PublicKey, cfg.Braintree.PrivateKey)
	}

	enrollment := services.NewEnrollmentService(codec, claimRepo, eventRepo, claimMailer, cfg.Web.BaseURL)
	redemption := services.NewRedemptionService(codec, claimRepo, memberRepo, roleService)

	oauthService := webservices.NewOAuthService(cfg.Discord.OAuth)
	cookieService, err := webservices.NewCookieService(cfg.Web.SessionKey, strings.HasPrefix(cfg.Web.BaseURL, "https://"))
	if err != nil {
		slog.Error("Failed to create cookie service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	webApp := &handlers.WebApp{
		Config:        cfg,
		DB:            db,
		Enrollment:    enrollment,
		Redemption:    redemption,
		OAuthService:  oauthService,
		CookieService: cookieService,
		Braintree:     bt,
		Version:       version,
		Commit:        commit,
	}

	app := fiber.New(fiber.Config{
		AppName:      "ClubGate",
		ServerHeader: "ClubGate",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Web.AllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,X-Gateway-Key,X-Admin-Key",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	setupRoutes(app, webApp)

	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		slog.Info("Starting HTTP server",
			slog.String("type", "http"),
			slog.String("address", address))
		return app.Listen(address)
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutting down", slog.String("type", "sys"))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Shutdown complete", slog.String("type", "sys"))
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	// Direct gateway integration.
	api := app.Group("/api", middleware.WebhookRateLimit())
	api.Post("/payments/confirmed", middleware.GatewayKeyRequired(webApp.Config.Web.GatewayKey), handlers.PaymentConfirmed(webApp))

	// Braintree webhooks carry their own signature.
	webhooks := app.Group("/webhooks", middleware.WebhookRateLimit())
	webhooks.Get("/braintree", handlers.BraintreeChallenge(webApp))
	webhooks.Post("/braintree", handlers.BraintreeWebhook(webApp))

	// Claim redemption.
	discord := app.Group("/discord", middleware.RedemptionRateLimit())
	discord.Get("/login", handlers.DiscordLogin(webApp))
	discord.Get("/callback", handlers.DiscordCallback(webApp))

	// Membership administration.
	admin := app.Group("/admin", middleware.AdminKeyRequired(webApp.Config.Web.AdminKey))
	admin.Post("/memberships/:id/revoke", middleware.AuditLogMiddleware("membership_revoke"), handlers.MembershipRevoke(webApp))
	admin.Post("/memberships/:id/resync", middleware.AuditLogMiddleware("membership_resync"), handlers.MembershipResync(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})
}
