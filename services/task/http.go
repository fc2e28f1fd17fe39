package task

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskpalette/pkg/errutil"
)

// RegisterRoutes mounts the task resource on the shared engine.
func RegisterRoutes(r *gin.Engine, s *Service) {
	tasks := r.Group("/tasks")
	tasks.GET("", s.listTasks)
	tasks.POST("", s.createTask)
	tasks.GET("/suggest", s.suggestTasks)
	tasks.GET("/:id", s.getTask)
	tasks.PATCH("/:id", s.patchTask)
	tasks.DELETE("/:id", s.deleteTask)
	tasks.POST("/:id/run", s.runTask)
}

// GET /tasks?q=
func (s *Service) listTasks(c *gin.Context) {
	tasks, err := s.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/suggest?q=&limit=
func (s *Service) suggestTasks(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	tasks, err := s.Suggest(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/:id
func (s *Service) getTask(c *gin.Context) {
	t, err := s.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// POST /tasks
func (s *Service) createTask(c *gin.Context) {
	var input CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", errutil.WithErr(err)))
		return
	}

	t, err := s.Create(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PATCH /tasks/:id
func (s *Service) patchTask(c *gin.Context) {
	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		_ = c.Error(errutil.BadRequest("invalid request body", errutil.WithErr(err)))
		return
	}

	t, err := s.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /tasks/:id
func (s *Service) deleteTask(c *gin.Context) {
	if err := s.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /tasks/:id/run
func (s *Service) runTask(c *gin.Context) {
	res, err := s.Run(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, res)
}
