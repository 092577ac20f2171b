package plans

type Plan struct {
	ID              uint `gorm:"primaryKey"`
	Name            string
	Price           float64
	Currency        string `gorm:"type:varchar(3);not null;default:'eur'"`
	StripePriceID   string `gorm:"column:stripe_price_id;not null;uniqueIndex:idx_plans_stripe_price_id"`
	StripeProductID string `gorm:"column:stripe_product_id;index"`
	Interval        string
	Family          string `gorm:"column:family;type:varchar(20);not null;index"` // "talent" | "background" | "bands"
	Tier            string `gorm:"column:tier"`                                   // "premium" | "platinum" | "paid"
}
