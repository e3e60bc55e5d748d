package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clinicflow/clinic-api/db"
	"github.com/clinicflow/clinic-api/models"
	"github.com/clinicflow/clinic-api/utils"
)

// DoctorRequest is the write shape for doctors. The weekly template is
// replaced wholesale on every write, never patched per-day.
type DoctorRequest struct {
	Name           string                `json:"name" validate:"required"`
	Email          string                `json:"email" validate:"required,email"`
	Phone          string                `json:"phone"`
	DepartmentID   uint                  `json:"department_id" validate:"required"`
	ProcedureIDs   []uint                `json:"procedure_ids"`
	WeeklyTemplate models.WeeklyTemplate `json:"weekly_template"`
}

// GetAllDoctors returns all doctors with their department
func GetAllDoctors(c *fiber.Ctx) error {
	var doctors []models.Doctor
	if err := db.DB.Preload("Department").Preload("Procedures").Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctors)
}

// GetDoctor returns one doctor by ID
func GetDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.Preload("Department").Preload("Procedures").First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctor)
}

// CreateDoctor creates a doctor with a validated weekly template
func CreateDoctor(c *fiber.Ctx) error {
	req := new(DoctorRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor payload",
			Error:   err.Error(),
		})
	}
	if err := req.WeeklyTemplate.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid weekly template",
			Error:   err.Error(),
		})
	}

	doctor := models.Doctor{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		DepartmentID:   req.DepartmentID,
		WeeklyTemplate: req.WeeklyTemplate,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doctor).Error; err != nil {
			return err
		}
		return replaceProcedures(tx, &doctor, req.ProcedureIDs)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create doctor",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// UpdateDoctor updates a doctor, swapping the whole weekly template
func UpdateDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	req := new(DoctorRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if req.WeeklyTemplate != nil {
		if err := req.WeeklyTemplate.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid weekly template",
				Error:   err.Error(),
			})
		}
		doctor.WeeklyTemplate = req.WeeklyTemplate
	}
	if req.Name != "" {
		doctor.Name = req.Name
	}
	if req.Email != "" {
		doctor.Email = req.Email
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.DepartmentID != 0 {
		doctor.DepartmentID = req.DepartmentID
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&doctor).Error; err != nil {
			return err
		}
		if req.ProcedureIDs != nil {
			return replaceProcedures(tx, &doctor, req.ProcedureIDs)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update doctor",
			Error:   err.Error(),
		})
	}

	return c.JSON(doctor)
}

// DeleteDoctor deletes a doctor by ID
func DeleteDoctor(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Delete(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete doctor",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetDoctorSchedule echoes the doctor's weekly template. ?format=detail adds
// metadata; the default returns the bare template. Computed availability lives
// under the slots endpoints, not here.
func GetDoctorSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	var doctor models.Doctor
	if err := db.DB.First(&doctor, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
			Error:   err.Error(),
		})
	}

	switch c.Query("format", "week") {
	case "week":
		return c.JSON(doctor.WeeklyTemplate)
	case "detail":
		workingDays := 0
		for _, day := range doctor.WeeklyTemplate {
			if day.Available {
				workingDays++
			}
		}
		return c.JSON(fiber.Map{
			"doctor_id":       doctor.ID,
			"weekly_template": doctor.WeeklyTemplate,
			"working_days":    workingDays,
			"updated_at":      doctor.UpdatedAt,
		})
	default:
		return c.JSON(fiber.Map{
			"message": "Use /doctors/:id/slots for computed availability",
		})
	}
}

func replaceProcedures(tx *gorm.DB, doctor *models.Doctor, procedureIDs []uint) error {
	if procedureIDs == nil {
		return nil
	}
	var procedures []models.Procedure
	if err := tx.Find(&procedures, procedureIDs).Error; err != nil {
		return err
	}
	if len(procedures) != len(procedureIDs) {
		return errors.New("one or more procedures not found")
	}
	return tx.Model(doctor).Association("Procedures").Replace(procedures)
}
