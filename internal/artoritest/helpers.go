package artoritest

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models"
	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	tokenTTL        = time.Hour
)

const userContextKey = "artoritest.user"

// abortDetail writes the backend's error envelope with a plain message.
func abortDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// abortFields writes a 422 with per-field validation detail.
func abortFields(c *gin.Context, fields []dto.FieldError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": fields})
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(userID string, role models.Role) (string, error) {
	claims := &tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "artoritest",
			ID:        uuid.New().String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *Server) parseToken(raw string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// requireAuth validates the bearer token and stashes the matching user on
// the context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortDetail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		claims, err := s.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortDetail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		s.mu.Lock()
		rec, ok := s.users[claims.Subject]
		s.mu.Unlock()
		if !ok || !rec.IsActive {
			abortDetail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		c.Set(userContextKey, rec)
		c.Next()
	}
}

// requireAdmin allows admin and super_admin roles through.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := currentUser(c)
		if rec == nil || (rec.Role != models.RoleAdmin && rec.Role != models.RoleSuperAdmin) {
			abortDetail(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *userRecord {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	rec, _ := v.(*userRecord)
	return rec
}

// parseListParams reads the shared pagination/filter query parameters.
func parseListParams(c *gin.Context) (page, size int, search string) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	search = strings.ToLower(strings.TrimSpace(c.Query("search")))
	return page, size, search
}

// sliceBounds converts a 1-based page to slice indices, clamped to the
// dataset.
func sliceBounds(page, size, total int) (start, end int) {
	start = (page - 1) * size
	if start >= total {
		return total, total
	}
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}

func paginationInfo(total int64, page, size int) dto.PaginationInfo {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}
	current := page
	if totalPages > 0 && current > totalPages {
		current = totalPages
	}
	return dto.PaginationInfo{
		CurrentPage: current,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  total,
	}
}

// record appends an audit entry; callers hold s.mu.
func (s *Server) record(actor, action, target string) {
	s.activity = append(s.activity, models.ActivityLogEntry{
		ID:        uuid.New().String(),
		Actor:     actor,
		Action:    action,
		Target:    target,
		CreatedAt: time.Now().UTC(),
	})
}

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
