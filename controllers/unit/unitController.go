package unitController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListUnits lists units, optionally filtered by phase
func ListUnits(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Unit{}).Where("is_deleted = ?", false)
	if phase := c.Query("phase"); phase != "" {
		db = db.Where("phase = ?", phase)
	}

	var units []models.Unit
	if err := db.Order("code asc").Find(&units).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch units!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Units fetched successfully!", units)
}

// UpsertUnitFromMatriz creates or updates a unit from the headquarters
// reference feed, keyed by the unit code. Phase and contact data follow the
// matriz; local soft-deletes are not resurrected.
func UpsertUnitFromMatriz(db *gorm.DB, incoming models.Unit) (*models.Unit, bool, error) {
	var existing models.Unit
	err := db.Where("code = ?", incoming.Code).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, false, err
		}
		if createErr := db.Create(&incoming).Error; createErr != nil {
			return nil, false, createErr
		}
		return &incoming, true, nil
	}

	if existing.IsDeleted {
		return &existing, false, nil
	}

	updates := map[string]interface{}{
		"name":  incoming.Name,
		"email": incoming.Email,
		"phone": incoming.Phone,
		"city":  incoming.City,
		"state": incoming.State,
		"cep":   incoming.CEP,
		"phase": incoming.Phase,
	}
	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return nil, false, err
	}

	return &existing, false, nil
}

// MatrizUpsertHandler is the inbound endpoint the matriz sync calls.
func MatrizUpsertHandler(c *fiber.Ctx) error {
	reqData := c.Locals("validatedMatrizUnit").(*models.Unit)

	unit, created, err := UpsertUnitFromMatriz(database.Database.Db, *reqData)
	if err != nil {
		log.Printf("[MATRIZ] Upsert failed for unit %s: %v", reqData.Code, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upsert unit!", nil)
	}

	message := "Unit updated from matriz."
	if created {
		message = "Unit created from matriz."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, unit)
}

// UpdateUnitPhase changes a unit's operational phase
func UpdateUnitPhase(c *fiber.Ctx) error {
	unitID := c.Locals("unitID").(int)

	reqData := new(struct {
		Phase string `json:"phase"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	valid := map[string]bool{
		models.UnitPhaseImplantacao: true,
		models.UnitPhaseOperacao:    true,
		models.UnitPhaseSuspensa:    true,
		models.UnitPhaseCancelada:   true,
	}
	if !valid[reqData.Phase] {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown unit phase!", nil)
	}

	var unit models.Unit
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", unitID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	if err := database.Database.Db.Model(&unit).Update("phase", reqData.Phase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update unit phase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unit phase updated successfully!", unit)
}
