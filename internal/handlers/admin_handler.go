package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/httpresp"
	"github.com/marcou-app/marcou/internal/models"
	"github.com/marcou-app/marcou/internal/timezone"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type AdminUpdateCompanyRequest struct {
	Plan               *string `json:"plan"`
	SubscriptionStatus *string `json:"subscription_status"`
	ExpiresAt          *string `json:"expires_at"`
}

////////////////////////////////////////////////////////
// LIST
////////////////////////////////////////////////////////

func (h *AdminHandler) ListCompanies(c *gin.Context) {
	status := strings.TrimSpace(c.Query("subscription_status"))

	q := h.db.Model(&models.Company{})
	if status != "" {
		q = q.Where("subscription_status = ?", status)
	}

	var companies []models.Company
	if err := q.Order("id ASC").Find(&companies).Error; err != nil {
		httperr.Internal(c, "failed_to_list_companies", "Erro ao listar empresas.")
		return
	}

	httpresp.OK(c, companies)
}

////////////////////////////////////////////////////////
// UPDATE
////////////////////////////////////////////////////////

func (h *AdminHandler) UpdateCompany(c *gin.Context) {
	var company models.Company
	if err := h.db.First(&company, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "Empresa não encontrada.")
		return
	}

	var req AdminUpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Plan != nil {
		switch *req.Plan {
		case models.PlanFree, models.PlanPro:
			company.Plan = *req.Plan
		default:
			httperr.BadRequest(c, "invalid_plan", "Plano inválido.")
			return
		}
	}

	if req.SubscriptionStatus != nil {
		switch *req.SubscriptionStatus {
		case models.SubscriptionActive, models.SubscriptionBlocked, models.SubscriptionCancelled:
			company.SubscriptionStatus = *req.SubscriptionStatus
		default:
			httperr.BadRequest(c, "invalid_subscription_status", "Status de assinatura inválido.")
			return
		}
	}

	if req.ExpiresAt != nil {
		if *req.ExpiresAt == "" {
			company.ExpiresAt = nil
		} else {
			t, err := time.ParseInLocation("2006-01-02", *req.ExpiresAt, timezone.Location())
			if err != nil {
				httperr.BadRequest(c, "invalid_expires_at", "Data de expiração inválida.")
				return
			}
			company.ExpiresAt = &t
		}
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", "Erro ao atualizar empresa.")
		return
	}

	c.JSON(http.StatusOK, company)
}
