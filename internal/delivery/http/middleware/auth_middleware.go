package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/harisha-viswa/hiring-system/internal/delivery/http/response"
	"github.com/harisha-viswa/hiring-system/internal/domain"
)

// AuthMiddleware verifies the bearer token issued by the identity provider
// and exposes the resolved principal on the context. The engine trusts the
// resolved (principal id, role) pair but performs its own ownership checks
// downstream; it never trusts client-supplied candidate or recruiter ids.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "Bearer token required", nil)
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			if jwtSecret == "" {
				return nil, fmt.Errorf("JWT_SECRET is not configured")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token carries no principal", nil)
			c.Abort()
			return
		}
		if role != domain.RoleCandidate && role != domain.RoleRecruiter {
			response.Error(c, http.StatusUnauthorized, "Token carries no recognized role", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyPrincipalID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), role)

		c.Next()
	}
}

// RequireRole guards a route group to a single role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeyUserRole)) != role {
			response.Error(c, http.StatusForbidden, "This operation requires the "+role+" role", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
