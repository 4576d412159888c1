package entity

// Importer represents an importing company participating in rankings.
// Ranking metrics are non-negative; absent metrics are treated as zero when
// sorting.
type Importer struct {
	ID                 string   `json:"id"`
	CompanyName        string   `json:"company_name"`
	RUC                string   `json:"ruc"` // Tax identification number.
	CountryOfOrigin    string   `json:"country_of_origin"`
	ContactEmail       string   `json:"contact_email"`
	ContactPhone       string   `json:"contact_phone"`
	FiscalAddress      string   `json:"fiscal_address"`
	SpecialtyProducts  []string `json:"specialty_products"`
	RegistrationDate   string   `json:"registration_date"` // ISO 8601 date, e.g. "2010-01-15".
	ImportVolumeUSD    float64  `json:"import_volume_usd"`
	YearsInBusiness    int      `json:"years_in_business"`
	SuccessfulImports  int      `json:"successful_imports"`
	ClientSatisfaction float64  `json:"client_satisfaction_rating"`
}
