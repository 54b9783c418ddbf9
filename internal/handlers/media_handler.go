package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/infra/media"
	"github.com/marcou-app/marcou/internal/middleware"
	"github.com/marcou-app/marcou/internal/models"
)

// Limite do corpo multipart aceito nos uploads.
const maxUploadBytes = 5 << 20

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type MediaHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewMediaHandler(db *gorm.DB, uploader *media.Uploader) *MediaHandler {
	return &MediaHandler{db: db, uploader: uploader}
}

////////////////////////////////////////////////////////
// LOGO DA EMPRESA
////////////////////////////////////////////////////////

func (h *MediaHandler) UploadCompanyLogo(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "media_disabled",
			"message": "Upload de mídia não está configurado.",
		})
		return
	}

	companyID := c.MustGet(middleware.ContextCompanyID).(uint)

	url, ok := h.uploadFromForm(c, "logos")
	if !ok {
		return
	}

	if err := h.db.Model(&models.Company{}).
		Where("id = ?", companyID).
		Update("logo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_logo", "Erro ao salvar logo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}

////////////////////////////////////////////////////////
// AVATAR DO USUÁRIO
////////////////////////////////////////////////////////

func (h *MediaHandler) UploadAvatar(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "media_disabled",
			"message": "Upload de mídia não está configurado.",
		})
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	url, ok := h.uploadFromForm(c, "avatars")
	if !ok {
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_avatar", "Erro ao salvar avatar.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *MediaHandler) uploadFromForm(c *gin.Context, prefix string) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo de imagem é obrigatório.")
		return "", false
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler arquivo.")
		return "", false
	}
	defer f.Close()

	url, err := h.uploader.UploadImage(c.Request.Context(), f, prefix)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida ou não suportada.")
		return "", false
	}

	return url, true
}
