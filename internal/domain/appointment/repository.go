package appointment

import (
	"context"
	"time"

	"github.com/marcou-app/marcou/internal/models"
)

type Repository interface {
	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id uint,
	) (*models.Company, error)

	// -------- Services --------
	// GetServices devolve os serviços encontrados dentro do escopo da
	// empresa; ids inexistentes simplesmente não aparecem no resultado.
	GetServices(
		ctx context.Context,
		companyID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		companyID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	GetClient(
		ctx context.Context,
		companyID uint,
		clientID uint,
	) (*models.Client, error)

	// -------- Appointment (reserve) --------
	// ReserveAppointment executa a checagem de conflito e o insert como
	// uma unidade atômica por (empresa, profissional). Conflito vira
	// httperr.ErrBusiness("time_conflict") e nada é gravado.
	ReserveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForStaff(
		ctx context.Context,
		appointmentID uint,
		staffID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	GetOperatingHours(
		ctx context.Context,
		companyID uint,
		weekday int,
	) (*models.OperatingHours, error)

	ListAppointmentsForDay(
		ctx context.Context,
		companyID uint,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	IsWithinOperatingHours(
		ctx context.Context,
		companyID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		companyID uint,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForClient(
		ctx context.Context,
		companyID uint,
		clientID uint,
	) ([]models.Appointment, error)
}
