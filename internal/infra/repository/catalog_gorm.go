package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appointment "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) SavePractitioner(
	ctx context.Context,
	p *models.Practitioner,
) error {

	return r.db.WithContext(ctx).
		Omit("Schedule").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "specialization", "consultation_fee", "updated_at"}),
		}).
		Create(p).Error
}

func (r *CatalogGormRepository) ReplaceSchedule(
	ctx context.Context,
	practitionerID string,
	windows []models.PractitionerSchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Practitioner{}).
			Where("id = ?", practitionerID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return appointment.ErrPractitionerNotFound
		}

		if err := tx.
			Where("practitioner_id = ?", practitionerID).
			Delete(&models.PractitionerSchedule{}).Error; err != nil {
			return err
		}

		if len(windows) == 0 {
			return nil
		}
		for i := range windows {
			windows[i].ID = 0
			windows[i].PractitionerID = practitionerID
		}
		return tx.Create(&windows).Error
	})
}

func (r *CatalogGormRepository) CreateAppointmentType(
	ctx context.Context,
	at *models.AppointmentType,
) error {

	if err := r.db.WithContext(ctx).Create(at).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return catalog.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *CatalogGormRepository) CreatePatient(
	ctx context.Context,
	p *models.Patient,
) error {

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return catalog.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *CatalogGormRepository) ListPatients(
	ctx context.Context,
	query string,
) ([]models.Patient, error) {

	q := r.db.WithContext(ctx).Model(&models.Patient{})

	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var out []models.Patient
	if err := q.Order("full_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) SaveItem(
	ctx context.Context,
	item *models.Item,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"item_name", "valuation_rate"}),
		}).
		Create(item).Error
}

// CreateEncounter inserts the encounter with its prescriptions and
// performed services.
func (r *CatalogGormRepository) CreateEncounter(
	ctx context.Context,
	enc *models.PatientEncounter,
) error {

	if err := r.db.WithContext(ctx).Create(enc).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return catalog.ErrAlreadyExists
		}
		return err
	}
	return nil
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
