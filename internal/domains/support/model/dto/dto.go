package dto

import "fmt"

const (
	MessageSent       = "Your message has been sent successfully."
	MessageSendFailed = "Failed to send message. Please try again later."
)

type ContactSupportRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

func (ContactSupportRequest) Messages() map[string]string {
	return map[string]string{
		"name.required":    "Please provide your name.",
		"email.required":   "Email address is required.",
		"email.email":      "Please enter a valid email address (e.g., user@example.com).",
		"subject.required": "Subject is required.",
		"message.required": "Please enter your message.",
	}
}

// Body renders the mail forwarded to the support inbox.
func (r ContactSupportRequest) Body() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", r.Name, r.Email, r.Message)
}

type ContactSupportResponse struct {
	Message string `json:"message"`
}
