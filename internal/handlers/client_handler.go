package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marcou-app/marcou/internal/domain/role"
	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/httpresp"
	"github.com/marcou-app/marcou/internal/middleware"
	"github.com/marcou-app/marcou/internal/models"
	ucAppointment "github.com/marcou-app/marcou/internal/usecase/appointment"
)

type ClientHandler struct {
	db        *gorm.DB
	historyUC *ucAppointment.ListClientHistory
}

func NewClientHandler(db *gorm.DB, historyUC *ucAppointment.ListClientHistory) *ClientHandler {
	return &ClientHandler{db: db, historyUC: historyUC}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`

	// Opcional: cria um login de cliente para consultar o histórico.
	Password string `json:"password"`
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("company_id = ?", companyID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	c.JSON(http.StatusOK, clients)
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var count int64
	h.db.Model(&models.Client{}).
		Where("company_id = ? AND phone = ?", companyID, req.Phone).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "client_already_exists", "Telefone já cadastrado.")
		return
	}

	client := models.Client{
		CompanyID: companyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if req.Password != "" {
		if client.Email == "" {
			httperr.BadRequest(c, "missing_email", "E-mail obrigatório para criar login.")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Erro ao cadastrar cliente.")
			return
		}

		user := models.User{
			CompanyID:       companyID,
			Name:            req.Name,
			Email:           client.Email,
			PasswordHash:    string(hashed),
			Phone:           req.Phone,
			Role:            string(role.Client),
			AcceptsBookings: false,
		}
		if err := h.db.Create(&user).Error; err != nil {
			httperr.Internal(c, "failed_to_create_client_login", "Erro ao criar login do cliente.")
			return
		}
		client.UserID = &user.ID
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Erro ao cadastrar cliente.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ======================================================
// HISTORY (mais recente primeiro)
// ======================================================

func (h *ClientHandler) History(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	clientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_client_id", "Cliente inválido.")
		return
	}

	history, err := h.historyUC.Execute(c.Request.Context(), companyID, uint(clientID))
	if err != nil {
		if httperr.IsBusiness(err, "client_not_found") {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_list_history", "Erro ao listar histórico.")
		return
	}

	httpresp.List(c, history)
}
