package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/marcou-app/marcou/internal/domain/appointment"
	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/infra/lock"
	"github.com/marcou-app/marcou/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB

	// locker é opcional; sem ele a transação + constraint de exclusão
	// continuam garantindo a invariante de não sobreposição.
	locker lock.StaffLocker
}

func NewAppointmentGormRepository(db *gorm.DB, locker lock.StaffLocker) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, locker: locker}
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCompanyByID(
	ctx context.Context,
	id uint,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServices(
	ctx context.Context,
	companyID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND company_id = ?", serviceIDs, companyID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	companyID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND phone = ?", companyID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		CompanyID: companyID,
		Name:      name,
		Phone:     phone,
		Email:     email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	companyID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", clientID, companyID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment (reserve)
// --------------------------------------------------

// ReserveAppointment serializa a checagem de conflito e o insert.
// Camadas, da mais externa para a mais interna: lock por profissional
// (opcional, multi-instância), SELECT ... FOR UPDATE na transação e a
// constraint de exclusão do Postgres como autoridade final.
func (r *AppointmentGormRepository) ReserveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if r.locker != nil {
		release, err := r.locker.Acquire(ctx, ap.CompanyID, ap.StaffID)
		if err != nil {
			return err
		}
		defer release()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where(
				"company_id = ? AND staff_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				ap.CompanyID, ap.StaffID, string(domain.StatusCancelled), ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}

	return err
}

// --------------------------------------------------
// Appointment (Cancel / Complete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForStaff(
	ctx context.Context,
	appointmentID uint,
	staffID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND staff_id = ?", appointmentID, staffID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOperatingHours(
	ctx context.Context,
	companyID uint,
	weekday int,
) (*models.OperatingHours, error) {

	var oh models.OperatingHours
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND weekday = ?", companyID, weekday).
		First(&oh).Error; err != nil {
		return nil, err
	}

	return &oh, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	companyID uint,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"company_id = ? AND staff_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			companyID, staffID, string(domain.StatusCancelled), start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) IsWithinOperatingHours(
	ctx context.Context,
	companyID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	weekday := int(start.Weekday())
	loc := start.Location()

	var oh models.OperatingHours
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND weekday = ?", companyID, weekday).
		First(&oh).Error; err != nil {
		return false, nil
	}

	if !oh.Active || oh.StartTime == "" || oh.EndTime == "" {
		return false, nil
	}

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	workStart := parseHM(oh.StartTime)
	workEnd := parseHM(oh.EndTime)

	if start.Before(workStart) || end.After(workEnd) {
		return false, nil
	}

	return true, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	companyID uint,
	staffID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Where(
			"company_id = ? AND staff_id = ? AND start_time >= ? AND start_time < ?",
			companyID, staffID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	companyID uint,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Services").
		Where(
			"company_id = ? AND client_id = ?",
			companyID, clientID,
		).
		Order("start_time DESC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
