package routes

import (
	"net/http"

	adminapi "talent-marketplace/internal/api/admin"
	authapi "talent-marketplace/internal/api/auth"
	bandsapi "talent-marketplace/internal/api/bands"
	"talent-marketplace/internal/api/billing"
	listingsapi "talent-marketplace/internal/api/listings"
	mediaapi "talent-marketplace/internal/api/media"
	"talent-marketplace/internal/api/plans"
	profilesapi "talent-marketplace/internal/api/profiles"
	stripewebhooks "talent-marketplace/internal/api/stripewebhook"
	usersapi "talent-marketplace/internal/api/users"
	"talent-marketplace/internal/app/http/middleware"
	"talent-marketplace/internal/domain/access"
	"talent-marketplace/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *authapi.Handler
	Users    *usersapi.Handler
	Profiles *profilesapi.Handler
	Media    *mediaapi.Handler
	Listings *listingsapi.Handler
	Bands    *bandsapi.Handler
	Billing  *billing.Handler
	Plans    *plans.Handler
	Webhook  *stripewebhooks.Handler
	Admin    *adminapi.Handler

	// LoadUser and Gate back the feature guard on gated routes.
	LoadUser middleware.UserLoader
	Gate     middleware.FeatureGate
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.POST("/webhook", h.Webhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", h.Auth.Register)
	public.POST("/login", h.Auth.Login)
	public.GET("/plans", h.Plans.ListPlans)
	public.GET("/verify", h.Users.VerifyEmail)
	public.POST("/resend-verification", h.Auth.ResendVerification)
	public.POST("/request-password-reset", h.Auth.RequestPasswordReset)
	public.POST("/reset-password", h.Auth.ResetPassword)

	public.GET("/auth/google", h.Auth.GoogleStart)
	public.GET("/auth/google/callback", h.Auth.GoogleCallback)

	public.GET("/profiles/talent/:slug", h.Profiles.GetPublicTalent)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", h.Users.GetCurrentUser)
	auth.POST("/change-password", h.Auth.ChangePassword)

	auth.GET("/profiles/talent/me", h.Profiles.GetMyTalent)
	auth.PUT("/profiles/talent/me", h.Profiles.UpdateMyTalent)
	auth.PUT("/profiles/talent/me/specializations/:kind", h.Profiles.PutSpecialization)
	auth.DELETE("/profiles/talent/me/specializations/:kind", h.Profiles.DeleteSpecialization)
	auth.GET("/profiles/talent/me/score", h.Profiles.MyTalentScore)
	auth.GET("/profiles/background/me", h.Profiles.GetMyBackground)
	auth.PUT("/profiles/background/me", h.Profiles.UpdateMyBackground)
	auth.GET("/profiles/background/me/score", h.Profiles.MyBackgroundScore)

	auth.POST("/media", middleware.RequireFeature(h.LoadUser, h.Gate, access.ActionUploadMedia), h.Media.Upload)
	auth.GET("/media", h.Media.List)
	auth.DELETE("/media/:id", h.Media.Delete)

	auth.POST("/listings", middleware.RequireFeature(h.LoadUser, h.Gate, access.ActionCreateListings), h.Listings.Create)
	auth.GET("/listings/me", h.Listings.Mine)
	auth.DELETE("/listings/:id", h.Listings.Delete)

	auth.POST("/bands", h.Bands.Create)
	auth.POST("/bands/join", h.Bands.Join)
	auth.GET("/bands/:id", h.Bands.Get)
	auth.GET("/bands/:id/score", h.Bands.Score)
	auth.POST("/bands/:id/invitations", h.Bands.CreateInvitation)
	auth.POST("/bands/:id/members/:profileID/promote", h.Bands.Promote)
	auth.POST("/bands/:id/members/:profileID/demote", h.Bands.Demote)
	auth.DELETE("/bands/:id/members/me", h.Bands.Leave)

	auth.GET("/payments", h.Billing.GetPaymentHistory)
	auth.GET("/subscription/status", h.Billing.SubscriptionStatus)
	auth.POST("/create-checkout-session", h.Billing.CreateCheckoutSession)
	auth.POST("/billing-portal", h.Billing.CreateBillingPortal)
	auth.POST("/change-plan", h.Billing.ChangePlan)
	auth.POST("/cancel-downgrade", h.Billing.CancelDowngrade)

	// Admin routes
	root := r.Group("/admin")
	root.Use(middleware.AuthMiddleware(), middleware.RequireRole(users.RoleAdmin))
	// Bulk email bodies are sent as HTML.
	root.POST("/bulk-emails", middleware.SanitizeAndCleanInputMiddleware("body"), h.Admin.SendBulkEmail)

	admin := root.Group("")
	admin.Use(middleware.SanitizeAndCleanInputMiddleware())
	admin.GET("/dashboard", h.Admin.Dashboard)
	admin.GET("/users", h.Admin.ListUsers)
	admin.GET("/users/:id", h.Admin.UserDetails)
	admin.GET("/payments", h.Admin.ListPayments)
	admin.GET("/search", h.Admin.Search)
	admin.POST("/profiles/:type/:id/verify", h.Admin.SetVerified)
	admin.POST("/profiles/:type/:id/tier", h.Admin.SetTier)
	admin.GET("/restricted-users", h.Admin.ListRestricted)
	admin.POST("/restricted-users/:id/approve", h.Admin.ApproveRestricted)
	admin.POST("/restricted-users/:id/reject", h.Admin.RejectRestricted)
	admin.GET("/bulk-emails/:id", h.Admin.GetBulkEmail)
	admin.POST("/sync-plans", h.Plans.SyncPlansFromStripe)
}
