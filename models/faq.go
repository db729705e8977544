package models

import (
	"fmt"
	"strings"
)

// FAQ is a public help entry, listed ordered by DisplayOrder.
type FAQ struct {
	ID           string `json:"id"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"displayOrder"`
}

// CreateFAQRequest is the admin payload for POST /api/faqs.
type CreateFAQRequest struct {
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	DisplayOrder int    `json:"displayOrder"`
}

// Validate checks the payload.
func (r *CreateFAQRequest) Validate() error {
	r.Question = strings.TrimSpace(r.Question)
	if r.Question == "" {
		return fmt.Errorf("question is required")
	}
	r.Answer = strings.TrimSpace(r.Answer)
	if r.Answer == "" {
		return fmt.Errorf("answer is required")
	}
	if r.DisplayOrder < 0 {
		return fmt.Errorf("displayOrder must not be negative")
	}
	return nil
}
