package sponsorships

import (
	"time"

	"github.com/google/uuid"

	"github.com/mardavsj/csrfunds/internal/money"
	"github.com/mardavsj/csrfunds/internal/roster"
	"github.com/mardavsj/csrfunds/internal/sponsorship"
)

type costItemResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type renewalResponse struct {
	Count           int         `json:"count"`
	NextRenewalDate *time.Time  `json:"next_renewal_date,omitempty"`
	LastRenewedAt   *time.Time  `json:"last_renewed_at,omitempty"`
	History         []uuid.UUID `json:"history,omitempty"`
}

type sponsorshipResponse struct {
	ID              uuid.UUID          `json:"id"`
	Reference       string             `json:"reference"`
	SponsorID       uuid.UUID          `json:"sponsor_id"`
	SchoolName      string             `json:"school_name"`
	Title           string             `json:"title,omitempty"`
	Status          sponsorship.Status `json:"status"`
	TotalBudget     string             `json:"total_budget"`
	CommittedFunds  string             `json:"committed_funds"`
	AllocatedFunds  string             `json:"allocated_funds"`
	RemainingBudget string             `json:"remaining_budget"`
	DurationMonths  int                `json:"duration_months"`
	StartDate       time.Time          `json:"start_date"`
	EndDate         time.Time          `json:"end_date"`
	CostBreakdown   []costItemResponse `json:"cost_breakdown,omitempty"`
	Renewal         renewalResponse    `json:"renewal"`
	RenewedFrom     *uuid.UUID         `json:"renewed_from,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

func toResponse(sp *sponsorship.Sponsorship) sponsorshipResponse {
	resp := sponsorshipResponse{
		ID:              sp.ID,
		Reference:       sp.Reference,
		SponsorID:       sp.SponsorID,
		SchoolName:      sp.SchoolName,
		Title:           sp.Title,
		Status:          sp.Status,
		TotalBudget:     money.FormatRupees(sp.TotalBudget),
		CommittedFunds:  money.FormatRupees(sp.CommittedFunds),
		AllocatedFunds:  money.FormatRupees(sp.AllocatedFunds),
		RemainingBudget: money.FormatRupees(sp.RemainingBudget),
		DurationMonths:  sp.DurationMonths,
		StartDate:       sp.StartDate,
		EndDate:         sp.EndDate,
		Renewal: renewalResponse{
			Count:           sp.Renewal.Count,
			NextRenewalDate: sp.Renewal.NextRenewalDate,
			LastRenewedAt:   sp.Renewal.LastRenewedAt,
			History:         sp.Renewal.History,
		},
		RenewedFrom: sp.RenewedFrom,
		CreatedAt:   sp.CreatedAt,
	}

	for _, item := range sp.CostBreakdown {
		resp.CostBreakdown = append(resp.CostBreakdown, costItemResponse{
			Name:   item.Name,
			Amount: money.FormatRupees(item.Amount),
		})
	}

	return resp
}

func toResponseList(sps []*sponsorship.Sponsorship) []sponsorshipResponse {
	resp := make([]sponsorshipResponse, len(sps))
	for i, sp := range sps {
		resp[i] = toResponse(sp)
	}

	return resp
}

type renewalResultResponse struct {
	Sponsorship    sponsorshipResponse `json:"sponsorship"`
	StudentsMoved  int                 `json:"students_moved"`
	RenewalCost    string              `json:"renewal_cost"`
	AlreadyRenewed bool                `json:"already_renewed"`
}

type studentResponse struct {
	ID            uuid.UUID            `json:"id"`
	SponsorshipID uuid.UUID            `json:"sponsorship_id"`
	StudentID     uuid.UUID            `json:"student_id"`
	Status        roster.Status        `json:"status"`
	Progress      map[string]string    `json:"progress,omitempty"`
	ActivityLogs  []roster.ActivityLog `json:"activity_logs,omitempty"`
	Tags          []string             `json:"tags,omitempty"`
	JoinedAt      time.Time            `json:"joined_at"`
	RenewedFrom   *uuid.UUID           `json:"renewed_from,omitempty"`
}

func toStudentResponse(row *roster.SponsoredStudent) studentResponse {
	return studentResponse{
		ID:            row.ID,
		SponsorshipID: row.SponsorshipID,
		StudentID:     row.StudentID,
		Status:        row.Status,
		Progress:      row.Progress,
		ActivityLogs:  row.ActivityLogs,
		Tags:          row.Tags,
		JoinedAt:      row.JoinedAt,
		RenewedFrom:   row.RenewedFrom,
	}
}
