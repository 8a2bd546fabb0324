package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadscore_backend/internal/campaigns/service"
	"leadscore_backend/internal/campaigns/transport"
	"leadscore_backend/platform/httpkit"
	"leadscore_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// Handler handles HTTP requests for campaign scoring.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new campaigns handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ScoreLeads scores campaign leads synchronously and persists the results.
// POST /api/v1/campaigns/:id/score
func (h *Handler) ScoreLeads(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.ScoreLeadsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		if err := h.val.Struct(req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
			return
		}
	}

	results, err := h.svc.ScoreLeads(c.Request.Context(), campaignID, req.LeadIDs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ScoreLeadsResponse{
		CampaignID: campaignID,
		Results:    transport.ToScoreResults(results),
	})
}

// Rescore enqueues an async full-campaign rescore job.
// POST /api/v1/campaigns/:id/rescore
func (h *Handler) Rescore(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	jobID, err := h.svc.EnqueueRescore(c.Request.Context(), campaignID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Accepted(c, transport.RescoreResponse{CampaignID: campaignID, JobID: jobID})
}

// JobProgress reports the state of a rescore job.
// GET /api/v1/scoring/jobs/:id
func (h *Handler) JobProgress(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	progress, err := h.svc.GetJobProgress(c.Request.Context(), jobID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, progress)
}

// Preview scores inline leads against inline targeting without persistence.
// POST /api/v1/scoring/preview
func (h *Handler) Preview(c *gin.Context) {
	var req transport.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	results := h.svc.Preview(transport.ToTargeting(req.Targeting), transport.ToLeads(req.Leads))
	httpkit.OK(c, gin.H{"results": transport.ToScoreResults(results)})
}

// LeadScore reads the persisted score for one lead.
// GET /api/v1/leads/:id/score
func (h *Handler) LeadScore(c *gin.Context) {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	score, err := h.svc.GetLeadScore(c.Request.Context(), leadID)
	if httpkit.HandleError(c, err) {
		return
	}

	var breakdown any
	if len(score.BreakdownJSON) > 0 {
		_ = json.Unmarshal(score.BreakdownJSON, &breakdown)
	}
	httpkit.OK(c, transport.LeadScoreResponse{
		LeadID:      score.LeadID,
		Score:       score.Score,
		Tier:        score.Tier,
		Breakdown:   breakdown,
		PersonaTags: score.PersonaTags,
		ScoredAt:    score.ScoredAt,
	})
}
