package dto

import (
	"time"

	"gigboard/internal/discovery"
	"gigboard/internal/domain/job"

	"github.com/google/uuid"
)

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type JobResponse struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	JobType      string           `json:"jobType"`
	Pay          float64          `json:"pay"`
	PayFrequency string           `json:"payFrequency"`
	Contact      string           `json:"contact,omitempty"`
	Location     LocationResponse `json:"location"`
	Region       string           `json:"region,omitempty"`
	Address      string           `json:"address,omitempty"`
	PostedBy     uuid.UUID        `json:"postedBy"`
	Status       string           `json:"status"`
	AssignedUser *uuid.UUID       `json:"assignedUser,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`

	// Applicant and approved sets are the poster's management view; other
	// viewers only get their own membership flags.
	Applicants      []uuid.UUID `json:"applicants,omitempty"`
	ApprovedSeekers []uuid.UUID `json:"approvedSeekers,omitempty"`
	HasApplied      bool        `json:"hasApplied"`
	IsApproved      bool        `json:"isApproved"`
}

func NewJobResponse(j job.Job, viewer uuid.UUID) JobResponse {
	res := JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		JobType:      j.JobType,
		Pay:          j.Pay,
		PayFrequency: string(j.PayFrequency),
		Contact:      j.Contact,
		Location:     LocationResponse{Lat: j.Location.Lat, Lng: j.Location.Lng},
		Region:       j.Region,
		Address:      j.Address,
		PostedBy:     j.PostedBy,
		Status:       string(j.Status),
		AssignedUser: j.AssignedUser,
		CreatedAt:    j.CreatedAt,
		HasApplied:   j.HasApplicant(viewer),
		IsApproved:   j.IsApproved(viewer),
	}
	if viewer == j.PostedBy {
		res.Applicants = j.Applicants
		res.ApprovedSeekers = j.ApprovedSeekers
	}
	return res
}

type JobPageResponse struct {
	Items      []JobResponse `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	TotalItems int           `json:"totalItems"`
}

func NewJobPageResponse(p discovery.Page, viewer uuid.UUID) JobPageResponse {
	items := make([]JobResponse, 0, len(p.Items))
	for _, j := range p.Items {
		items = append(items, NewJobResponse(j, viewer))
	}
	return JobPageResponse{
		Items:      items,
		Page:       p.Number,
		TotalPages: p.TotalPages,
		TotalItems: p.TotalItems,
	}
}
