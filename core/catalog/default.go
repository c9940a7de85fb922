package catalog

import "github.com/shopspring/decimal"

// Default returns the built-in gym catalog
func Default() *Catalog {
	return MustNew(
		[]Plan{
			{
				Name:        "Basic",
				BaseCost:    decimal.NewFromInt(100),
				Description: "Access to gym equipment and locker room.",
			},
			{
				Name:        "Premium",
				BaseCost:    decimal.NewFromInt(150),
				Description: "Includes Basic benefits + access to premium facilities.",
				Premium:     true,
			},
			{
				Name:        "Family",
				BaseCost:    decimal.NewFromInt(200),
				Description: "Up to 4 family members under one plan.",
			},
		},
		[]Feature{
			{
				Name:        "Personal Training",
				Cost:        decimal.NewFromInt(50),
				Description: "One-on-one sessions with a certified trainer.",
			},
			{
				Name:        "Group Classes",
				Cost:        decimal.NewFromInt(30),
				Description: "Unlimited group fitness classes.",
			},
			{
				Name:        "Sauna Access",
				Cost:        decimal.NewFromInt(25),
				Description: "Access to sauna and steam room.",
				Premium:     true,
			},
			{
				Name:        "Specialized Training Program",
				Cost:        decimal.NewFromInt(100),
				Description: "Custom training program designed by experts.",
				Premium:     true,
			},
		},
		Rules{
			GroupDiscountRate: decimal.RequireFromString("0.10"),
			GroupMinMembers:   2,
			SpecialOffers: []SpecialOffer{
				{Threshold: decimal.NewFromInt(400), Discount: decimal.NewFromInt(50)},
				{Threshold: decimal.NewFromInt(200), Discount: decimal.NewFromInt(20)},
			},
			SurchargeRate: decimal.RequireFromString("0.15"),
		},
	)
}
