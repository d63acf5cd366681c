package models

import (
	"time"

	"github.com/google/uuid"
)

const ContactStatusNew = "new"

type ContactSubmission struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Company     *string   `db:"company" json:"company,omitempty"`
	CompanyType string    `db:"company_type" json:"company_type"`
	Message     string    `db:"message" json:"message"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	Status      string    `db:"status" json:"status"`
}

type ContactInput struct {
	Name        string
	Email       string
	Company     *string
	CompanyType string
	Message     string
	Phone       *string
}

var companyTypeLabels = map[string]string{
	"mental_health_clinic": "Mental Health Clinic / Practice",
	"hospital":             "Hospital / Healthcare System",
	"university":           "University / Educational Institution",
	"corporate":            "Corporation / Enterprise",
	"hr_recruitment":       "HR / Recruitment Agency",
	"research":             "Research Organization",
	"government":           "Government / Public Sector",
	"investor":             "Investor / VC",
	"individual":           "Individual / Personal Use",
	"other":                "Other",
}

// CompanyTypeLabel returns the display label for a company type code.
// Unknown codes are returned unchanged.
func CompanyTypeLabel(code string) string {
	if label, ok := companyTypeLabels[code]; ok {
		return label
	}
	return code
}
