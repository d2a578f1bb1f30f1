package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/hiredesk/hiredesk/internal/candidate"
	"github.com/hiredesk/hiredesk/internal/logger"
	"github.com/hiredesk/hiredesk/internal/registry"
)

// CandidateController implements the candidate collection endpoints over the
// registry store.
type CandidateController struct {
	store    registry.CandidateStore
	validate *validator.Validate
}

// NewCandidateController creates a controller backed by the given registry store.
func NewCandidateController(store registry.CandidateStore) *CandidateController {
	return &CandidateController{store: store, validate: validator.New()}
}

// List handles GET /candidates. Optional query params: q (substring match on
// name/email/position) and status (exact match; "all" means no restriction).
func (cc *CandidateController) List(c *gin.Context) {
	items := cc.store.List()

	if status := c.Query("status"); status != "" && candidate.Status(status) != candidate.StatusAll {
		parsed, err := candidate.ParseStatus(status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filtered := make([]candidate.Candidate, 0, len(items))
		for _, item := range items {
			if item.Status == parsed {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if q := strings.ToLower(c.Query("q")); q != "" {
		filtered := make([]candidate.Candidate, 0, len(items))
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Name), q) ||
				strings.Contains(strings.ToLower(item.Email), q) ||
				strings.Contains(strings.ToLower(item.Position), q) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	c.JSON(http.StatusOK, items)
}

// Get handles GET /candidates/:id.
func (cc *CandidateController) Get(c *gin.Context) {
	id, ok := cc.parseID(c)
	if !ok {
		return
	}
	item, found := cc.store.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /candidates. The body is a candidate without an id; the
// store assigns one and the created record is echoed back.
func (cc *CandidateController) Create(c *gin.Context) {
	var item candidate.Candidate
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	item.ID = 0
	if err := cc.validate.Struct(item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created := cc.store.Insert(item)
	logger.WithComponent("candidate-controller").Debugf("created candidate %d", created.ID)
	c.JSON(http.StatusCreated, created)
}

// Update handles PATCH /candidates/:id. Only the fields present in the body
// are merged; the full updated record is echoed back.
func (cc *CandidateController) Update(c *gin.Context) {
	id, ok := cc.parseID(c)
	if !ok {
		return
	}

	var patch candidate.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := candidate.ValidatePatch(patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := cc.store.Patch(id, patch)
	if err != nil {
		if errors.Is(err, registry.ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
			return
		}
		logger.WithComponent("candidate-controller").Errorf("patch candidate %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update candidate"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /candidates/:id.
func (cc *CandidateController) Delete(c *gin.Context) {
	id, ok := cc.parseID(c)
	if !ok {
		return
	}

	if err := cc.store.Remove(id); err != nil {
		if errors.Is(err, registry.ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
			return
		}
		logger.WithComponent("candidate-controller").Errorf("delete candidate %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete candidate"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (cc *CandidateController) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid candidate id"})
		return 0, false
	}
	return id, true
}
