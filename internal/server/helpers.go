// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed page/limit query parameters.
type Pagination struct {
	Page  int
	Limit int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts page and limit query parameters with the given
// default limit. Pages are 1-based.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	page := c.QueryInt("page", 1)
	if page <= 0 {
		page = 1
	}

	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	return Pagination{
		Page:  page,
		Limit: limit,
	}
}

// pagedResult is the shape of every paginated data payload.
type pagedResult struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func paged(items any, total int64, p Pagination) pagedResult {
	return pagedResult{Items: items, Total: total, Page: p.Page, Limit: p.Limit}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "videoId" -> "video ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// fail maps a service or repository error onto the error envelope using the
// status implied by its code.
func fail(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}

// currentUserID returns the authenticated user ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// saveTempFile stores an uploaded multipart file in a temp location and
// returns its path. Callers own the cleanup; pair with defer os.Remove.
func (s *Server) saveTempFile(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	name := uuid.New().String() + filepath.Ext(fh.Filename)
	path := filepath.Join(os.TempDir(), name)
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

// formFileToTemp fetches an optional multipart file field and stages it in a
// temp file. A missing field yields ("", nil).
func (s *Server) formFileToTemp(c *fiber.Ctx, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return s.saveTempFile(c, fh)
}

func removeIfSet(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}
