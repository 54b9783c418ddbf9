package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/marcou-app/marcou/internal/audit"
	domain "github.com/marcou-app/marcou/internal/domain/appointment"
	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/models"
	"github.com/marcou-app/marcou/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// ClientContact é o caminho público: o cliente informa os dados e o
// registro é criado (ou reaproveitado) pelo telefone.
type ClientContact struct {
	Name  string
	Phone string
	Email string
}

type CreateAppointmentInput struct {
	CompanyID uint
	StaffID   uint

	ServiceIDs []uint
	Start      time.Time

	// Exatamente uma das três referências de cliente deve vir
	// preenchida: cliente existente, contato público ou walk-in.
	ClientID      *uint
	ClientContact *ClientContact
	WalkInName    string

	Notes string

	// RequestedBy aparece na trilha de auditoria (nil em agendamento público).
	RequestedBy *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: auditDispatcher,
		now:   timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Forma da requisição
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("missing_services")
	}
	if in.Start.IsZero() {
		return nil, httperr.ErrBusiness("missing_start")
	}
	if err := validateClientRef(in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Empresa
	// --------------------------------------------------
	company, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Serviços — todos os ids precisam resolver no escopo da empresa
	// --------------------------------------------------
	serviceIDs := dedupeIDs(in.ServiceIDs)

	services, err := uc.repo.GetServices(ctx, in.CompanyID, serviceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(serviceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	totalMin := 0
	var totalPrice int64
	names := make([]string, 0, len(services))
	for _, s := range services {
		totalMin += s.DurationMin
		totalPrice += s.PriceCents
		names = append(names, s.Name)
	}

	end := in.Start.Add(time.Duration(totalMin) * time.Minute)

	// --------------------------------------------------
	// 4. Antecedência
	// --------------------------------------------------
	minAllowed := uc.now()
	if company.MinAdvanceMinutes > 0 {
		minAllowed = minAllowed.Add(time.Duration(company.MinAdvanceMinutes) * time.Minute)
	}
	if in.Start.Before(minAllowed) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 5. Janela de funcionamento
	// --------------------------------------------------
	ok, err := uc.repo.IsWithinOperatingHours(ctx, in.CompanyID, in.Start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_operating_hours")
	}

	// --------------------------------------------------
	// 6. Cliente
	// --------------------------------------------------
	var clientID *uint
	switch {
	case in.ClientID != nil:
		client, err := uc.repo.GetClient(ctx, in.CompanyID, *in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		clientID = &client.ID

	case in.ClientContact != nil:
		client, err := uc.repo.GetOrCreateClient(
			ctx,
			in.CompanyID,
			in.ClientContact.Name,
			in.ClientContact.Phone,
			in.ClientContact.Email,
		)
		if err != nil {
			return nil, err
		}
		clientID = &client.ID
	}
	// walk-in: clientID fica nulo e o nome livre identifica o agendamento

	// --------------------------------------------------
	// 7. Reserva atômica (checagem + insert)
	// --------------------------------------------------
	ap := &models.Appointment{
		CompanyID:       in.CompanyID,
		StaffID:         in.StaffID,
		ClientID:        clientID,
		WalkInName:      in.WalkInName,
		Services:        services,
		ServiceLabel:    strings.Join(names, " + "),
		TotalPriceCents: totalPrice,
		StartTime:       in.Start,
		EndTime:         end,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.ReserveAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		CompanyID: in.CompanyID,
		UserID:    in.RequestedBy,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

func validateClientRef(in CreateAppointmentInput) error {
	refs := 0
	if in.ClientID != nil {
		refs++
	}
	if in.ClientContact != nil {
		refs++
	}
	if in.WalkInName != "" {
		refs++
	}
	if refs != 1 {
		return httperr.ErrBusiness("invalid_client_ref")
	}
	return nil
}
