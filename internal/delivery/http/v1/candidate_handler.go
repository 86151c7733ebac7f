package v1

import (
	"net/http"
	"strconv"
	"strings"

	"recroot-backend/internal/delivery/http/response"
	"recroot-backend/internal/domain"
	"recroot-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
	uploadUC    domain.ResumeUploadUsecase
}

func NewCandidateHandler(protected *gin.RouterGroup, candidateUC domain.CandidateUsecase, uploadUC domain.ResumeUploadUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC, uploadUC: uploadUC}

	candidates := protected.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.GET("/search", handler.Search)
		candidates.POST("", handler.Create)
		candidates.POST("/upload-resume", handler.UploadResume)
		candidates.GET("/:id", handler.GetDetails)
		candidates.PUT("/:id", handler.Update)
		candidates.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List candidates
// @Description  Paginated list of the caller's candidates, newest first
// @Tags         candidates
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10)"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	candidates, total, err := h.candidateUC.List(c, page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.List(c, candidates, len(candidates), response.NewPagination(page, limit, total))
}

// Search godoc
// @Summary      Search candidates
// @Description  Filter the caller's candidates by text query, skills, location, experience, status and source
// @Tags         candidates
// @Produce      json
// @Param        q           query     string  false  "Full-text query over name, position, company, skills, location"
// @Param        skills      query     string  false  "Comma-separated skills; matches any overlap"
// @Param        location    query     string  false  "Location substring, case-insensitive"
// @Param        experience  query     int     false  "Minimum years of experience"
// @Param        status      query     string  false  "Pipeline status"
// @Param        source      query     string  false  "Sourcing channel"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Page size (default 10)"
// @Success      200         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Router       /candidates/search [get]
// @Security     BearerAuth
func (h *CandidateHandler) Search(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := parseFilter(c)

	candidates, total, err := h.candidateUC.Search(c, filter, page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.SearchResults(c, candidates, len(candidates), total, response.NewPagination(page, limit, total))
}

// GetDetails godoc
// @Summary      Get a candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetDetails(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	candidate, err := h.candidateUC.GetByID(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, candidate)
}

// Create godoc
// @Summary      Create a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        candidate  body      domain.Candidate  true  "Candidate JSON"
// @Success      201        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Router       /candidates [post]
// @Security     BearerAuth
func (h *CandidateHandler) Create(c *gin.Context) {
	var candidate domain.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	created, err := h.candidateUC.Create(c, &candidate)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// Update godoc
// @Summary      Update a candidate
// @Description  Merges the request body over the stored record; omitted fields keep their values
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id         path      string            true  "Candidate ID"
// @Param        candidate  body      domain.Candidate  true  "Fields to change"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /candidates/{id} [put]
// @Security     BearerAuth
func (h *CandidateHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	// Fetch first so ownership is checked before any body processing and
	// absent JSON fields fall back to the stored values.
	existing, err := h.candidateUC.GetByID(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	updated := *existing
	if err := c.ShouldBindJSON(&updated); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// Immutable fields, whatever the body says
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	result, err := h.candidateUC.Update(c, &updated)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete godoc
// @Summary      Delete a candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	if err := h.candidateUC.Delete(c, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// UploadResume godoc
// @Summary      Upload a resume file
// @Description  Accepts a single PDF, DOC or DOCX up to 5 MB in the "resume" form field
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file  true  "Resume file"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Router       /candidates/upload-resume [post]
// @Security     BearerAuth
func (h *CandidateHandler) UploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.Error(apperror.BadRequest("Please upload a file"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(err)
		return
	}
	defer file.Close()

	result, err := h.uploadUC.Upload(c, &domain.ResumeUpload{
		FileName:   fileHeader.Filename,
		Size:       fileHeader.Size,
		Content:    file,
		ClientIP:   c.ClientIP(),
		UploadedBy: c.GetString(string(domain.KeyUserID)),
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// parsePagination reads page/limit with silent fallback to 1/10 on
// malformed or out-of-range values. Existing clients send garbage here
// and expect the first page back.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

func parseFilter(c *gin.Context) domain.CandidateFilter {
	filter := domain.CandidateFilter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Status:   c.Query("status"),
		Source:   c.Query("source"),
	}

	if skills := c.Query("skills"); skills != "" {
		for _, s := range strings.Split(skills, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Skills = append(filter.Skills, s)
			}
		}
	}

	// Non-numeric experience is treated as absent rather than rejected
	if exp := c.Query("experience"); exp != "" {
		if n, err := strconv.Atoi(exp); err == nil {
			filter.MinExperience = &n
		}
	}

	return filter
}
