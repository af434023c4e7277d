package types

import "github.com/go-playground/validator/v10"

// EnrichRequest represents the API request to enrich and personalize a contact.
type EnrichRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Domain       string `json:"domain,omitempty" validate:"omitempty,fqdn"`
	Goal         string `json:"goal,omitempty" validate:"omitempty,oneof=exploring evaluating learning building_case"`
	Persona      string `json:"persona,omitempty" validate:"omitempty,oneof=executive it_infrastructure security data_ai sales_gtm hr_people"`
	Industry     string `json:"industry,omitempty" validate:"omitempty,oneof=healthcare financial_services technology gaming_media manufacturing retail government energy telecommunications"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	CompanyName  string `json:"company_name,omitempty"`
	CompanySize  string `json:"company_size,omitempty"`
	ForceRefresh bool   `json:"force_refresh,omitempty"`
	Deliver      bool   `json:"deliver,omitempty"`
}

// Validate validates the EnrichRequest using the validator.
func (r *EnrichRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UserContext extracts the targeting overrides from the request.
func (r *EnrichRequest) UserContext() UserContext {
	return UserContext{
		Goal:        r.Goal,
		Persona:     r.Persona,
		Industry:    r.Industry,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		CompanyName: r.CompanyName,
		CompanySize: r.CompanySize,
	}
}
