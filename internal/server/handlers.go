package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/julianstephens/levelup/internal/catalog"
	apperrors "github.com/julianstephens/levelup/internal/errors"
	"github.com/julianstephens/levelup/internal/models"
	"github.com/julianstephens/levelup/internal/tracker"
)

func (s *Server) listCatalog(c echo.Context) error {
	f := catalog.Filter{Category: c.QueryParam("category")}
	for _, g := range c.QueryParams()["goal"] {
		f.Goals = append(f.Goals, strings.Split(g, ",")...)
	}
	templates := s.Catalog.Filter(f)
	if templates == nil {
		templates = []models.HabitTemplate{}
	}
	return c.JSON(http.StatusOK, templates)
}

func (s *Server) createUser(c echo.Context) error {
	var req tracker.Onboarding
	if err := c.Bind(&req); err != nil {
		return err
	}
	p, err := tracker.Onboard(c.Request().Context(), s.Store, s.Catalog, s.Clock, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) getUser(c echo.Context) error {
	p, err := s.Store.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) listHabits(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("id")
	if _, err := s.Store.GetProfile(ctx, userID); err != nil {
		return err
	}
	plan, err := s.Store.GetActiveHabits(ctx, userID)
	if err != nil {
		return err
	}
	if plan == nil {
		plan = []models.ActiveHabit{}
	}
	return c.JSON(http.StatusOK, plan)
}

type activateRequest struct {
	HabitIDs []string `json:"habit_ids"`
}

func (s *Server) activateHabits(c echo.Context) error {
	var req activateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if len(req.HabitIDs) == 0 {
		return apperrors.Invalidf("habit_ids is required")
	}
	templates, err := s.Catalog.LookupAll(req.HabitIDs)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	userID := c.Param("id")
	if _, err := s.Store.GetProfile(ctx, userID); err != nil {
		return err
	}
	if err := s.Store.ActivateHabits(ctx, userID, templates); err != nil {
		return err
	}
	return s.listHabits(c)
}

func (s *Server) deactivateHabit(c echo.Context) error {
	ctx := c.Request().Context()
	userID, activeID := c.Param("id"), c.Param("activeId")

	plan, err := s.Store.GetActiveHabits(ctx, userID)
	if err != nil {
		return err
	}
	for _, h := range plan {
		if h.ID == activeID {
			if err := s.Store.DeactivateHabit(ctx, activeID); err != nil {
				return err
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
	return apperrors.NotFoundf("active habit %q", activeID)
}

type completeRequest struct {
	HabitID string   `json:"habit_id"`
	Value   *float64 `json:"value"`
}

func (s *Server) completeHabit(c echo.Context) error {
	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.HabitID == "" {
		return apperrors.Invalidf("habit_id is required")
	}
	res, err := s.Tracker.CompleteHabit(c.Request().Context(), c.Param("id"), req.HabitID, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (s *Server) getSuggestion(c echo.Context) error {
	sug, err := s.Engine.EvaluatePlan(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if sug == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, sug)
}

func (s *Server) applySuggestion(c echo.Context) error {
	var sug models.Suggestion
	if err := c.Bind(&sug); err != nil {
		return err
	}
	if sug.IsEmpty() {
		return apperrors.Invalidf("suggestion has no changes")
	}
	if err := s.Lifecycle.Apply(c.Request().Context(), c.Param("id"), sug); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) dismissSuggestion(c echo.Context) error {
	if err := s.Lifecycle.Dismiss(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
