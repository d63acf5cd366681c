package request

import (
	"strings"

	"psytech/internal/domain/models"
)

type ContactRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100" example:"Dr. Jane Doe"`
	Email       string  `json:"email" validate:"required,email" example:"jane@clinic.example"`
	Company     *string `json:"company,omitempty" validate:"omitempty,max=200"`
	CompanyType string  `json:"company_type" validate:"required" example:"hospital"`
	Message     string  `json:"message" validate:"required,min=10,max=2000"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// Normalize trims surrounding whitespace so length rules apply to what is stored.
func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.CompanyType = strings.TrimSpace(r.CompanyType)
	r.Message = strings.TrimSpace(r.Message)
	r.Company = trimPtr(r.Company)
	r.Phone = trimPtr(r.Phone)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (r ContactRequest) ToInput() models.ContactInput {
	return models.ContactInput{
		Name:        r.Name,
		Email:       r.Email,
		Company:     r.Company,
		CompanyType: r.CompanyType,
		Message:     r.Message,
		Phone:       r.Phone,
	}
}
