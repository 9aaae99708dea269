package analysis

// ProtectionPlan is one purchasable protection tier.
type ProtectionPlan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Duration string   `json:"duration"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular"`
}

// AdditionalService is an add-on purchasable alongside a plan.
type AdditionalService struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

var protectionPlans = []ProtectionPlan{
	{
		ID:       "basic",
		Name:     "Basic Protection",
		Price:    49,
		Duration: "1 year",
		Features: []string{
			"Content fingerprinting",
			"Basic originality analysis",
			"Copyright registration assistance",
			"Standard blockchain tokenization",
			"1 year protection coverage",
		},
	},
	{
		ID:       "standard",
		Name:     "Standard Package",
		Price:    149,
		Duration: "3 years",
		Features: []string{
			"Advanced AI analysis",
			"Fair use assessment",
			"Legal compliance review",
			"Enhanced blockchain security",
			"Marketplace listing",
			"Royalty tracking system",
			"3 years protection coverage",
		},
		Popular: true,
	},
	{
		ID:       "premium",
		Name:     "Premium Suite",
		Price:    299,
		Duration: "Lifetime",
		Features: []string{
			"Full legal review",
			"Priority support",
			"Advanced analytics",
			"Custom smart contracts",
			"Global IP registration",
			"Revenue optimization",
			"Lifetime protection coverage",
		},
	},
}

var additionalServices = []AdditionalService{
	{ID: "expedited", Name: "Expedited Processing", Description: "24-hour turnaround", Price: 25},
	{ID: "legal", Name: "Legal Consultation", Description: "1-hour session with IP attorney", Price: 150},
	{ID: "market", Name: "Market Analysis Report", Description: "Detailed market potential assessment", Price: 75},
}

// ProtectionPlans returns the plan catalog.
func ProtectionPlans() []ProtectionPlan {
	return protectionPlans
}

// AdditionalServices returns the add-on catalog.
func AdditionalServices() []AdditionalService {
	return additionalServices
}
