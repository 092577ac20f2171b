package billing

import (
	"fmt"
	"net/http"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/restrictions"
	"talent-marketplace/internal/domain/users"
	"talent-marketplace/internal/logger"
	"talent-marketplace/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalSession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	customer "github.com/stripe/stripe-go/v75/customer"
	"go.uber.org/zap"
)

type checkoutRequest struct {
	PriceID string `json:"price_id" binding:"required"`
}

var errAlreadySubscribed = apperrors.New(apperrors.CodeConflict,
	"You already have an active subscription for this plan family. Use change-plan instead.", http.StatusConflict)

// CreateCheckoutSession starts a Stripe Checkout for a plan. Users resolved
// to a restricted country are refused before Stripe is contacted.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body checkoutRequest
	if err := validation.Bind(c, &body); err != nil {
		apperrors.Respond(c, err)
		return
	}

	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	plan, err := h.planByPrice(ctx, body.PriceID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	user, err := h.loadUser(ctx, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if !user.IsVerified {
		apperrors.Respond(c, errNotVerified)
		return
	}
	if !FamilyAllowed(user.UserType, plan.Family) {
		apperrors.Respond(c, errWrongFamily)
		return
	}

	live, err := h.Subs.HasLiveSubscription(ctx, user.ID, plan.Family)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if live {
		apperrors.Respond(c, errAlreadySubscribed)
		return
	}

	country, err := h.Users.ProfileCountry(ctx, user)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := h.Countries.CheckCheckout(ctx, user.ID, &plan.ID, restrictions.Request{
		ProfileCountry: country,
		ClientIP:       c.ClientIP(),
		Header:         c.Request.Header,
	}); err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := h.ensureCustomer(c, user); err != nil {
		apperrors.Respond(c, err)
		return
	}

	meta := map[string]string{
		"user_id": fmt.Sprint(user.ID),
		"plan_id": fmt.Sprint(plan.ID),
		"family":  plan.Family,
	}
	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(h.returnURL("/account")),
		CancelURL:  stripe.String(h.returnURL("/account?canceled=1")),
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(*user.StripeCustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(plan.StripePriceID), Quantity: stripe.Int64(1)},
		},
		ClientReferenceID: stripe.String(fmt.Sprint(user.ID)),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: meta,
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(err, apperrors.CodeExternalService,
			"Failed to create checkout session", http.StatusBadGateway))
		return
	}

	logger.FromContext(ctx).Info("checkout session created",
		zap.Uint("plan_id", plan.ID),
		zap.String("family", plan.Family))
	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}

func (h *Handler) ensureCustomer(c *gin.Context, user *users.User) error {
	if user.StripeCustomerID != nil && *user.StripeCustomerID != "" {
		return nil
	}

	cus, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Metadata: map[string]string{
			"user_id":   fmt.Sprint(user.ID),
			"user_type": user.UserType,
			"app_env":   h.AppEnv,
		},
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalService,
			"Failed to create Stripe customer", http.StatusBadGateway)
	}

	if err := h.DB.WithContext(c.Request.Context()).Model(&users.User{}).
		Where("id = ?", user.ID).
		Update("stripe_customer_id", cus.ID).Error; err != nil {
		return err
	}
	user.StripeCustomerID = stripe.String(cus.ID)
	return nil
}

func (h *Handler) CreateBillingPortal(c *gin.Context) {
	userID, err := reqctx.UserID(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	user, err := h.loadUser(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if user.StripeCustomerID == nil || *user.StripeCustomerID == "" {
		apperrors.Respond(c, errNoCustomer)
		return
	}

	portal, err := portalSession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*user.StripeCustomerID),
		ReturnURL: stripe.String(h.returnURL("/account")),
	})
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(err, apperrors.CodeExternalService,
			"Could not create billing portal session", http.StatusBadGateway))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
