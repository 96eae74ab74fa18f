package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/StudioAgenda/salon-scheduler/internal/config"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
)

const (
	ContextUserID         = "userID"
	ContextUserRole       = "userRole"
	ContextProfessionalID = "professionalID"
)

func parseToken(cfg *config.Config, tokenString string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) bool {
	userID, ok := claims["sub"].(float64)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)

	c.Set(ContextUserID, uint(userID))
	c.Set(ContextUserRole, role)

	// vínculo explícito com o profissional, quando houver
	if proID, ok := claims["professionalId"].(float64); ok && proID > 0 {
		c.Set(ContextProfessionalID, uint(proID))
	}

	return true
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		claims, ok := parseToken(cfg, tokenString)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		if !setIdentity(c, claims) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Next()
	}
}

// OptionalAuth popula a identidade se houver token válido, mas nunca
// bloqueia, a reserva pública aceita anônimos.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, ok := parseToken(cfg, tokenString); ok {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin fecha o catálogo e a trilha de auditoria
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_only"})
			return
		}
		c.Next()
	}
}

// RequireProfessional fecha as rotas de agenda: papel explícito +
// vínculo obrigatório com um Professional (nada de sondar atributos)
func RequireProfessional() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		if role != models.RoleProfessional {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "professional_only"})
			return
		}

		if _, ok := c.Get(ContextProfessionalID); !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "professional_only"})
			return
		}

		c.Next()
	}
}
