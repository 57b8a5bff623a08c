package repository

import (
	"errors"
	"worklog-service/internal/models"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) (*EmployeeRepository, error) {
	err := db.AutoMigrate(&models.Employee{})
	if err != nil {
		return nil, err
	}

	return &EmployeeRepository{db: db}, nil
}

func (r *EmployeeRepository) Create(employee *models.Employee) error {
	if !employee.IsValid() {
		return errors.New("invalid employee data")
	}

	var existing models.Employee
	result := r.db.Where("email = ?", employee.Email).First(&existing)
	if result.Error == nil {
		return errors.New("employee already exists")
	}

	result = r.db.Create(employee)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *EmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.First(&employee, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &employee, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.Where("email = ?", email).First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &employee, nil
}

// ListByManager returns the direct reports of a manager.
func (r *EmployeeRepository) ListByManager(managerID uint) ([]*models.Employee, error) {
	var reports []*models.Employee
	result := r.db.Where("manager_id = ?", managerID).Find(&reports)

	if result.Error != nil {
		return nil, result.Error
	}

	return reports, nil
}

func (r *EmployeeRepository) ListAll() ([]*models.Employee, error) {
	var employees []*models.Employee
	result := r.db.Find(&employees)

	if result.Error != nil {
		return nil, result.Error
	}

	return employees, nil
}

func (r *EmployeeRepository) UpdateRole(id uint, role models.Role) error {
	result := r.db.Model(&models.Employee{}).
		Where("id = ?", id).
		Update("role", role)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("employee not found")
	}

	return nil
}

// EnsureAdmin promotes the employee with the given email to admin, creating
// the row first if it does not exist. Used to seed the base admin from config.
func (r *EmployeeRepository) EnsureAdmin(email, fullName string) (*models.Employee, error) {
	if email == "" {
		return nil, nil
	}

	existing, err := r.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if existing.IsAdmin() {
			return existing, nil
		}
		if err := r.UpdateRole(existing.ID, models.Role(models.RoleAdmin)); err != nil {
			return nil, err
		}
		existing.Role = models.RoleAdmin
		return existing, nil
	}

	admin := &models.Employee{
		Email:    email,
		FullName: fullName,
		Role:     models.RoleAdmin,
	}
	if err := r.Create(admin); err != nil {
		return nil, err
	}

	return admin, nil
}
