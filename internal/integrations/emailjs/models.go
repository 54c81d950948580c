package emailjs

// Credentials identifies the tenant's EmailJS service, template and key.
type Credentials struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Valid reports whether all three parts are present.
func (c Credentials) Valid() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// sendRequest is the EmailJS REST payload.
type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}
