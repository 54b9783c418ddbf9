package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/marcou-app/marcou/internal/domain/appointment"
	"github.com/marcou-app/marcou/internal/domain/role"
	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/middleware"
	"github.com/marcou-app/marcou/internal/models"
	ucAppointment "github.com/marcou-app/marcou/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`
	StaffID    uint   `json:"staff_id" binding:"required"`

	Start string `json:"start"`
	Date  string `json:"date"`
	Time  string `json:"time"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// PROFILE
////////////////////////////////////////////////////////

func (h *PublicHandler) GetCompanyPage(c *gin.Context) {
	company := c.MustGet(middleware.ContextCompany).(*models.Company)

	var services []models.Service
	h.db.
		Where("company_id = ? AND active = true", company.ID).
		Order("id ASC").
		Find(&services)

	staff, err := h.bookableStaff(company.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_company_page", "Erro ao carregar página da empresa.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company":  company,
		"services": services,
		"staff":    staff,
	})
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	company := c.MustGet(middleware.ContextCompany).(*models.Company)

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))
	minPriceStr := c.Query("min_price")
	maxPriceStr := c.Query("max_price")

	q := h.db.
		Where("company_id = ? AND active = true", company.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if minPriceStr != "" {
		if minPrice, err := strconv.ParseInt(minPriceStr, 10, 64); err == nil {
			q = q.Where("price_cents >= ?", minPrice)
		}
	}

	if maxPriceStr != "" {
		if maxPrice, err := strconv.ParseInt(maxPriceStr, 10, 64); err == nil {
			q = q.Where("price_cents <= ?", maxPrice)
		}
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company":  company,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// STAFF PICKER
////////////////////////////////////////////////////////

func (h *PublicHandler) ListStaff(c *gin.Context) {
	company := c.MustGet(middleware.ContextCompany).(*models.Company)

	staff, err := h.bookableStaff(company.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, staff)
}

type publicStaffDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

func (h *PublicHandler) bookableStaff(companyID uint) ([]publicStaffDTO, error) {
	var users []models.User
	err := h.db.
		Where(
			"company_id = ? AND role IN ? AND accepts_bookings = true",
			companyID,
			[]string{string(role.Owner), string(role.Staff)},
		).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	out := make([]publicStaffDTO, 0, len(users))
	for _, u := range users {
		out = append(out, publicStaffDTO{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL})
	}
	return out, nil
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	company := c.MustGet(middleware.ContextCompany).(*models.Company)

	dateStr := c.Query("date")
	serviceIDsStr := c.Query("service_ids")
	staffIDStr := c.Query("staff_id")

	if dateStr == "" || serviceIDsStr == "" || staffIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, serviços e profissional são obrigatórios.")
		return
	}

	serviceIDs, err := parseServiceIDs(serviceIDsStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_ids", "Serviços inválidos.")
		return
	}

	staffID, err := strconv.ParseUint(staffIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
		return
	}

	if !h.staffBookable(company.ID, uint(staffID)) {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			CompanyID:  company.ID,
			StaffID:    uint(staffID),
			ServiceIDs: serviceIDs,
			Date:       date,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "missing_services") {
			httperr.BadRequest(c, "missing_services", "Serviços obrigatórios.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	company := c.MustGet(middleware.ContextCompany).(*models.Company)

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if !h.staffBookable(company.ID, req.StaffID) {
		httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	start, err := parseStart(req.Start, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateAppointmentInput{
			CompanyID:  company.ID,
			StaffID:    req.StaffID,
			ServiceIDs: req.ServiceIDs,
			Start:      start,
			ClientContact: &ucAppointment.ClientContact{
				Name:  req.ClientName,
				Phone: req.ClientPhone,
				Email: req.ClientEmail,
			},
			Notes: req.Notes,
		},
	)

	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) staffBookable(companyID, staffID uint) bool {
	var count int64
	h.db.Model(&models.User{}).
		Where(
			"id = ? AND company_id = ? AND role IN ? AND accepts_bookings = true",
			staffID,
			companyID,
			[]string{string(role.Owner), string(role.Staff)},
		).
		Count(&count)
	return count > 0
}

func parseServiceIDs(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
