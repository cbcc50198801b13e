package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/job-board/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /api/jobs.
//
// @Summary      List jobs
// @Description  Filter by exact location and case-insensitive title search. Sort accepts a field with an optional leading "-" for descending order.
// @Tags         jobs
// @Produce      json
// @Param        location  query     string  false  "Exact location"
// @Param        search    query     string  false  "Substring of the title"
// @Param        sort      query     string  false  "Sort field (createdAt, title, company, location, salary)"  default(-createdAt)
// @Param        page      query     int     false  "Page number"  default(1)
// @Param        limit     query     int     false  "Page size"    default(3)
// @Success      200       {object}  listJobsResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	result, err := h.service.ListJobs(c.Request().Context(), ports.ListJobsInput{
		Location: c.QueryParam("location"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListJobsResponse(result))
}

// Get handles GET /api/jobs/:id.
//
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Create handles POST /api/jobs.
//
// @Summary      Create a job
// @Description  Stores the job and notifies subscribed accounts by email in the background.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      createJobRequest  true  "Job posting"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req createJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.service.CreateJob(c.Request().Context(), toCreateJobInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toJobResponse(job))
}

// Update handles PUT /api/jobs/:id.
//
// @Summary      Update a job
// @Description  Only the provided fields are changed.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	var req updateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.service.UpdateJob(c.Request().Context(), c.Param("id"), toJobPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Delete handles DELETE /api/jobs/:id.
//
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteJob(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "job deleted"})
}
