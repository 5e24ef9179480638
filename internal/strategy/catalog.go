package strategy

// Parameter names an input field a strategy reads.
type Parameter struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Info describes a strategy for listings.
type Info struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// Catalog lists the supported strategies in display order.
func Catalog() []Info {
	return []Info{
		{
			Name:        NameManual,
			Description: "Projects with a fixed first-year expense that grows with inflation.",
			Parameters: []Parameter{
				{Name: "annual_expenses", Type: "float", Description: "First-year spending in currency units", Required: true},
			},
		},
		{
			Name:        NameOptimal,
			Description: "Binary-searches the largest first-year expense whose LTV never exceeds max_ltv.",
			Parameters: []Parameter{
				{Name: "max_ltv", Type: "float", Description: "LTV ceiling in percent, in (0, 100]", Required: true},
			},
		},
	}
}
