package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marcou-app/marcou/internal/dto"
	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/middleware"
	"github.com/marcou-app/marcou/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// ClientAreaHandler atende o usuário logado com papel client: os
// agendamentos dele em qualquer empresa onde exista um cadastro de
// cliente vinculado ao login.
type ClientAreaHandler struct {
	db *gorm.DB
}

func NewClientAreaHandler(db *gorm.DB) *ClientAreaHandler {
	return &ClientAreaHandler{db: db}
}

func (h *ClientAreaHandler) ListMyAppointments(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var appointments []models.Appointment
	err := h.db.
		Preload("Services").
		Preload("Client").
		Where(
			"client_id IN (?)",
			h.db.Model(&models.Client{}).Select("id").Where("user_id = ?", userID),
		).
		Order("start_time DESC").
		Find(&appointments).Error

	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.FromAppointment(ap))
	}

	c.JSON(http.StatusOK, out)
}
