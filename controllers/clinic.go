package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicflow/clinic-api/db"
	"github.com/clinicflow/clinic-api/models"
	"github.com/clinicflow/clinic-api/utils"
)

// Reference-data CRUD consumed by the availability filters and bookings.

func GetAllDepartments(c *fiber.Ctx) error {
	var departments []models.Department
	if err := db.DB.Find(&departments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch departments",
			Error:   err.Error(),
		})
	}
	return c.JSON(departments)
}

func CreateDepartment(c *fiber.Ctx) error {
	department := new(models.Department)
	if err := c.BodyParser(department); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Create(department).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create department",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(department)
}

func DeleteDepartment(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Delete(&models.Department{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete department",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func GetAllProcedures(c *fiber.Ctx) error {
	var procedures []models.Procedure
	if err := db.DB.Find(&procedures).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch procedures",
			Error:   err.Error(),
		})
	}
	return c.JSON(procedures)
}

func CreateProcedure(c *fiber.Ctx) error {
	procedure := new(models.Procedure)
	if err := c.BodyParser(procedure); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Create(procedure).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create procedure",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(procedure)
}

func DeleteProcedure(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Delete(&models.Procedure{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete procedure",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func GetAllPatients(c *fiber.Ctx) error {
	var patients []models.Patient
	if err := db.DB.Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
			Error:   err.Error(),
		})
	}
	return c.JSON(patients)
}

func GetPatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.Preload("Appointments").First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

func CreatePatient(c *fiber.Ctx) error {
	patient := new(models.Patient)
	if err := c.BodyParser(patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Create(patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create patient",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(patient)
}

func UpdatePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
			Error:   err.Error(),
		})
	}
	if err := c.BodyParser(&patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Save(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update patient",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

func DeletePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Delete(&models.Patient{}, id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete patient",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
