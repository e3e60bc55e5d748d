package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinicflow/clinic-api/db"
	"github.com/clinicflow/clinic-api/models"
	"github.com/clinicflow/clinic-api/redis"
	"github.com/clinicflow/clinic-api/scheduler"
	"github.com/clinicflow/clinic-api/utils"
)

func availabilityEngine() *scheduler.Engine {
	return scheduler.NewEngine(
		scheduler.NewGormDoctorSource(db.DB),
		scheduler.NewGormAppointmentSource(db.DB),
		scheduler.SystemClock(),
	)
}

func parseDuration(c *fiber.Ctx) (time.Duration, error) {
	minutes, err := strconv.Atoi(c.Query("duration", "30"))
	if err != nil || minutes <= 0 {
		return 0, errors.New("duration must be a positive number of minutes")
	}
	return time.Duration(minutes) * time.Minute, nil
}

// GetDoctorSlots returns the generated slots for one doctor across a date
// range. Dates the doctor's template marks unavailable are omitted from the
// result. Responses are cached per doctor and invalidated on booking writes.
func GetDoctorSlots(c *fiber.Ctx) error {
	doctorID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor id",
		})
	}

	fromStr := c.Query("from", c.Query("date"))
	toStr := c.Query("to", fromStr)
	if fromStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "A date or from/to range is required",
		})
	}

	from, err := parseDate(fromStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid from date, use YYYY-MM-DD",
		})
	}
	to, err := parseDate(toStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid to date, use YYYY-MM-DD",
		})
	}

	duration, err := parseDuration(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	cacheKey := redis.SlotsKey(uint(doctorID), fromStr, toStr, duration)
	var cached map[string][]scheduler.Slot
	if redis.GetJSON(cacheKey, &cached) {
		return c.JSON(fiber.Map{
			"doctor_id": doctorID,
			"duration":  int(duration.Minutes()),
			"days":      cached,
		})
	}

	days, err := availabilityEngine().SlotsForRange(c.Context(), uint(doctorID), from, to, duration)
	if errors.Is(err, scheduler.ErrDoctorNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute slots",
			Error:   err.Error(),
		})
	}

	redis.SetJSON(cacheKey, days)

	return c.JSON(fiber.Map{
		"doctor_id": doctorID,
		"duration":  int(duration.Minutes()),
		"days":      days,
	})
}

// GetAvailableDoctors lists doctors matching the department/procedure filters
// who are free for the requested date/time/duration. Without a date or time
// it simply lists doctors with a non-empty weekly template.
func GetAvailableDoctors(c *fiber.Ctx) error {
	filter := scheduler.AvailabilityFilter{}

	if v := c.Query("department_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid department_id",
			})
		}
		filter.DepartmentID = uint(id)
	}
	if v := c.Query("procedure_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid procedure_id",
			})
		}
		filter.ProcedureID = uint(id)
	}
	if v := c.Query("date"); v != "" {
		date, err := parseDate(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid date format, use YYYY-MM-DD",
			})
		}
		filter.Date = &date
	}
	if v := c.Query("time"); v != "" {
		at, err := models.ParseTimeOfDay(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid time, use HH:MM",
			})
		}
		filter.Time = &at
	}

	if filter.Date != nil || filter.Time != nil {
		duration, err := parseDuration(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		}
		filter.Duration = duration
	}

	doctors, err := availabilityEngine().DoctorsAvailableFor(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to query available doctors",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"doctors": doctors,
		"count":   len(doctors),
	})
}
