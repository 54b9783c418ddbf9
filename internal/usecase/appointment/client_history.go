package appointment

import (
	"context"

	domain "github.com/marcou-app/marcou/internal/domain/appointment"
	"github.com/marcou-app/marcou/internal/dto"
	"github.com/marcou-app/marcou/internal/httperr"
)

type ListClientHistory struct {
	repo domain.Repository
}

func NewListClientHistory(
	repo domain.Repository,
) *ListClientHistory {
	return &ListClientHistory{
		repo: repo,
	}
}

// Histórico do cliente, mais recente primeiro.
func (uc *ListClientHistory) Execute(
	ctx context.Context,
	companyID uint,
	clientID uint,
) ([]dto.AppointmentListDTO, error) {

	client, err := uc.repo.GetClient(ctx, companyID, clientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	appointments, err := uc.repo.ListAppointmentsForClient(
		ctx,
		companyID,
		client.ID,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		d := dto.FromAppointment(ap)
		d.ClientName = client.Name
		out = append(out, d)
	}

	return out, nil
}
