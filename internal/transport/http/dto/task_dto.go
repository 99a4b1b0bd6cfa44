package dto

import (
	"strings"
	"time"

	"github.com/jumush/backend/internal/core/ports"
)

const maxMediaReferences = 5

type CreateTaskRequest struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	PriceForExecutor int64      `json:"price_for_executor"`
	Budget           int64      `json:"budget"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Contact          string     `json:"contact"`
	Latitude         *float64   `json:"latitude,omitempty"`
	Longitude        *float64   `json:"longitude,omitempty"`
	Media            []string   `json:"media,omitempty"`
	CategoryID       *uint      `json:"category_id,omitempty"`
}

func (r *CreateTaskRequest) Validate() []string {
	var errors []string

	if strings.TrimSpace(r.Title) == "" {
		errors = append(errors, "title is required")
	}

	if strings.TrimSpace(r.Description) == "" {
		errors = append(errors, "description is required")
	}

	if strings.TrimSpace(r.Contact) == "" {
		errors = append(errors, "contact is required")
	}

	if r.PriceForExecutor <= 0 {
		errors = append(errors, "price_for_executor must be a positive amount")
	}

	if r.Budget <= 0 {
		errors = append(errors, "budget must be a positive amount")
	}

	if len(r.Media) > maxMediaReferences {
		errors = append(errors, "at most 5 media references are allowed")
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errors = append(errors, "latitude and longitude must be provided together")
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errors = append(errors, "latitude out of range")
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errors = append(errors, "longitude out of range")
	}

	return errors
}

func (r *CreateTaskRequest) ToInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:            r.Title,
		Description:      r.Description,
		PriceForExecutor: r.PriceForExecutor,
		Budget:           r.Budget,
		Deadline:         r.Deadline,
		Contact:          r.Contact,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		Media:            r.Media,
		CategoryID:       r.CategoryID,
	}
}
