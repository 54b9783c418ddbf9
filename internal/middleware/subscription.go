package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/models"
	"github.com/marcou-app/marcou/internal/timezone"
)

const ContextCompany = "company"

// SubscriptionGate resolve a empresa pelo slug e bloqueia a superfície
// pública quando a assinatura não está ativa (ou expirou).
func SubscriptionGate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var company models.Company
		if err := db.Where("slug = ?", slug).First(&company).Error; err != nil {
			httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
			c.Abort()
			return
		}

		if !company.SubscriptionOK(timezone.Now()) {
			httperr.Forbidden(c, "company_unavailable", "Empresa indisponível para agendamentos.")
			c.Abort()
			return
		}

		c.Set(ContextCompany, &company)
		c.Next()
	}
}
