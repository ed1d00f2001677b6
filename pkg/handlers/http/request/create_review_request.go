package request

import (
	"fmt"
	"net/mail"
	"strings"
)

type CreateReviewRequest struct {
	Text         string `json:"text" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required"`
}

func (r *CreateReviewRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}

	if strings.TrimSpace(r.Reason) == "" {
		return fmt.Errorf("reason is required")
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(r.ContactEmail))
	if err != nil {
		return fmt.Errorf("contact_email is not a valid email address")
	}
	r.ContactEmail = addr.Address

	return nil
}
