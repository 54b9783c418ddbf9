package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/marcou-app/marcou/internal/httperr"
)

// mapBookingError traduz os códigos de negócio da criação de
// agendamento para o status HTTP da borda.
func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "missing_services"),
		httperr.IsBusiness(err, "missing_start"),
		httperr.IsBusiness(err, "invalid_client_ref"):
		httperr.BadRequest(c, "invalid_request", "Dados obrigatórios ausentes.")

	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Horário inválido.")

	case httperr.IsBusiness(err, "outside_operating_hours"):
		httperr.BadRequest(c, "outside_operating_hours", "Fora do horário de atendimento.")

	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")

	case httperr.IsBusiness(err, "client_not_found"):
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")

	case httperr.IsBusiness(err, "time_conflict"), httperr.IsExclusionConflict(err):
		httperr.Conflict(c, "time_conflict", "Horário indisponível.")

	default:
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
	}
}
