package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"taskkeeper/internal/common"
	"taskkeeper/internal/server/models"
	"taskkeeper/internal/server/services"
)

// --- auth handlers ---

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid registration details"})
	}

	result, err := s.users.Register(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid registration details"})
		case errors.Is(err, common.ErrAlreadyExists):
			return c.JSON(http.StatusConflict, echo.Map{"message": "username already exists"})
		default:
			s.logger.Error(c.Request().Context(), "registration failed", "error", err.Error())
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "registration failed"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"username":     result.Username,
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
	})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid login details"})
	}

	pair, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
		}
		s.logger.Error(c.Request().Context(), "login failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (s *Server) refreshToken(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid refresh token request"})
	}

	pair, err := s.users.RefreshToken(c.Request().Context(), req.Username, req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid refresh token"})
		}
		s.logger.Error(c.Request().Context(), "token refresh failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "token refresh failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (s *Server) validateToken(c echo.Context) error {
	var req tokenValidationRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid token"})
	}

	username, err := s.users.ValidateToken(c.Request().Context(), req.Token)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "token is valid",
		"username": username,
	})
}

// --- todo handlers ---

func (s *Server) listTodos(c echo.Context) error {
	claims := claimsFrom(c)

	descending, _ := strconv.ParseBool(c.QueryParam("descending"))
	query := services.ListQuery{
		Completed:   c.QueryParam("completed"),
		DueDate:     c.QueryParam("dueDate"),
		SortBy:      c.QueryParam("sortBy"),
		Descending:  descending,
		TitleFilter: c.QueryParam("titleFilter"),
		UserID:      c.QueryParam("userId"),
	}

	items, err := s.todos.List(c.Request().Context(), query, claims.Subject, isAdmin(claims))
	if err != nil {
		s.logger.Error(c.Request().Context(), "listing todos failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "an error occurred while retrieving the items"})
	}
	if len(items) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "no to-do items found"})
	}

	return c.JSON(http.StatusOK, items)
}

func (s *Server) getTodoByID(c echo.Context) error {
	claims := claimsFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	item, err := s.todos.GetByID(c.Request().Context(), id, claims.Subject)
	if err != nil {
		return s.todoError(c, err, "an error occurred while retrieving the item")
	}

	return c.JSON(http.StatusOK, item)
}

func (s *Server) createTodo(c echo.Context) error {
	claims := claimsFrom(c)

	var req todoRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title is required"})
	}

	item := &models.TodoItem{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	}

	created, err := s.todos.Create(c.Request().Context(), item, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item"})
		}
		s.logger.Error(c.Request().Context(), "creating todo failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "an error occurred while creating the item"})
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateTodo(c echo.Context) error {
	claims := claimsFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	var req todoRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title is required"})
	}

	patch := &models.TodoItem{
		Title:     req.Title,
		DueDate:   req.DueDate,
		Completed: req.Completed,
	}

	updated, err := s.todos.Update(c.Request().Context(), id, patch, claims.Subject)
	if err != nil {
		return s.todoError(c, err, "an error occurred while updating the item")
	}

	return c.JSON(http.StatusOK, updated)
}

func (s *Server) completeTodo(c echo.Context) error {
	claims := claimsFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	item, err := s.todos.Complete(c.Request().Context(), id, claims.Subject)
	if err != nil {
		return s.todoError(c, err, "an error occurred while completing the item")
	}

	return c.JSON(http.StatusOK, item)
}

func (s *Server) adminSearchTodos(c echo.Context) error {
	claims := claimsFrom(c)

	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "user id is required for search"})
	}

	items, err := s.todos.List(c.Request().Context(), services.ListQuery{UserID: userID}, claims.Subject, true)
	if err != nil {
		s.logger.Error(c.Request().Context(), "admin search failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "an error occurred during the search"})
	}
	if len(items) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "no items found for the specified user"})
	}

	return c.JSON(http.StatusOK, items)
}

func (s *Server) deleteTodo(c echo.Context) error {
	claims := claimsFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := s.todos.Delete(c.Request().Context(), id, claims.Subject, isAdmin(claims)); err != nil {
		return s.todoError(c, err, "an error occurred while deleting the item")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "item deleted"})
}

// todoError maps a record-store error to the HTTP taxonomy. Ownership misses
// are deliberately indistinguishable from absence.
func (s *Server) todoError(c echo.Context, err error, internalMsg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "item not found"})
	}
	s.logger.Error(c.Request().Context(), internalMsg, "error", err.Error())
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": internalMsg})
}
