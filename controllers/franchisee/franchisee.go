package franchiseeController

import (
	"fmt"
	"log"
	"strings"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// createFranchiseeAccount provisions a FRANQUEADO user bound to a unit. The
// generated password is delivered over WhatsApp and exposed once through a
// reveal token; only the bcrypt hash is stored.
func createFranchiseeAccount(db *gorm.DB, name, email, phone, unitCode string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var unit models.Unit
	if err := db.Where("code = ? AND is_deleted = false", unitCode).First(&unit).Error; err != nil {
		return nil, "", fmt.Errorf("unit %q not found", unitCode)
	}

	if err := db.Where("email = ?", email).First(&models.User{}).Error; err == nil {
		return nil, "", fmt.Errorf("email %s already registered", email)
	}

	password := utils.GeneratePassword(10)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Role:     models.RoleFranqueado,
		Password: string(hashed),
		UnitID:   &unit.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, "", err
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	reveal := models.PasswordReveal{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(&reveal).Error; err != nil {
		return nil, "", err
	}

	if phone != "" {
		if err := utils.SendPasswordOverWhatsApp(phone, name, password); err != nil {
			log.Printf("[FRANCHISEE] WhatsApp password delivery failed for %s: %v", email, err)
		}
	}

	return &user, token, nil
}

// CreateFranchisee provisions a franchisee account for a unit
func CreateFranchisee(c *fiber.Ctx) error {
	reqData := c.Locals("validatedFranchisee").(*FranchiseeRequest)

	user, revealToken, err := createFranchiseeAccount(database.Database.Db, reqData.Name, reqData.Email, reqData.Phone, reqData.UnitCode)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Franchisee created successfully!", fiber.Map{
		"user":         user,
		"reveal_token": revealToken,
	})
}

// FranchiseeRequest is the validated franchisee creation payload.
type FranchiseeRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	UnitCode string `json:"unit_code" validate:"required"`
}

// UpdateFranchisee partially updates a franchisee's profile and unit binding
func UpdateFranchisee(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	reqData := new(struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		UnitCode *string `json:"unit_code"`
		IsActive *bool   `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = ?", userID, models.RoleFranqueado, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Franchisee not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Phone != nil {
		updates["phone"] = *reqData.Phone
	}
	if reqData.IsActive != nil {
		updates["is_active"] = *reqData.IsActive
	}
	if reqData.UnitCode != nil {
		var unit models.Unit
		if err := database.Database.Db.Where("code = ? AND is_deleted = false", *reqData.UnitCode).First(&unit).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
		}
		updates["unit_id"] = unit.ID
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(&user).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update franchisee!", nil)
	}

	database.Database.Db.First(&user, user.ID)
	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Franchisee updated successfully!", user)
}

// ResetFranchiseePassword generates a fresh password, delivers it over
// WhatsApp and returns a new one-time reveal token.
func ResetFranchiseePassword(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", userID, models.RoleFranqueado, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Franchisee not found!", nil)
	}

	password := utils.GeneratePassword(10)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	reveal := models.PasswordReveal{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(&reveal).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reveal token!", nil)
	}

	if user.Phone != "" {
		if err := utils.SendPasswordOverWhatsApp(user.Phone, user.Name, password); err != nil {
			log.Printf("[FRANCHISEE] WhatsApp password delivery failed for %s: %v", user.Email, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully!", fiber.Map{
		"reveal_token": token,
	})
}

// BulkImportFranchisees imports a list of franchisees sequentially with a
// fixed inter-item delay (external gateway rate limit). Item failures are
// accumulated; the response is a summary with per-item outcomes.
func BulkImportFranchisees(c *fiber.Ctx) error {
	reqData := c.Locals("validatedFranchiseeImport").(*FranchiseeImportRequest)

	db := database.Database.Db
	delay := time.Duration(config.AppConfig.ImportDelayMs) * time.Millisecond

	keys := make([]string, len(reqData.Items))
	for i, item := range reqData.Items {
		keys[i] = item.Email
	}

	summary := utils.RunPacedImport(keys, delay, func(i int, key string) (string, error) {
		item := reqData.Items[i]

		var existing models.User
		if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(item.Email))).First(&existing).Error; err == nil {
			return utils.ImportSkipped, nil
		}

		if _, _, err := createFranchiseeAccount(db, item.Name, item.Email, item.Phone, item.UnitCode); err != nil {
			return utils.ImportError, err
		}
		return utils.ImportSuccess, nil
	})

	log.Printf("[IMPORT] Franchisee import finished: %d success, %d skipped, %d errors",
		summary.Success, summary.Skipped, summary.Errors)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Import completed.", summary)
}

// FranchiseeImportRequest is the bulk import payload.
type FranchiseeImportRequest struct {
	Items []FranchiseeRequest `json:"items" validate:"required,min=1,dive"`
}

// RevealPassword consumes a one-time reveal token. A token can be used
// exactly once; afterwards the password is unrecoverable except by reset.
func RevealPassword(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Reveal token is required!", nil)
	}

	db := database.Database.Db

	var reveal models.PasswordReveal
	if err := db.Where("token = ? AND consumed = ? AND is_deleted = ?", token, false, false).First(&reveal).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reveal token not found or already used!", nil)
	}
	if time.Now().After(reveal.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Reveal token has expired!", nil)
	}

	db.Model(&reveal).Update("consumed", true)

	// The password itself was delivered over WhatsApp at generation time and
	// is not stored; the token only confirms the credential handoff.
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Credential handoff confirmed. Check WhatsApp for the password.", fiber.Map{
		"user_id": reveal.UserID,
	})
}

// RegisterCollaborator files a unit staff registration pending franchisee
// approval.
func RegisterCollaborator(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCollaborator").(*CollaboratorRequestPayload)

	db := database.Database.Db

	var unit models.Unit
	if err := db.Where("code = ? AND is_deleted = false", reqData.UnitCode).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	var pending models.CollaboratorRequest
	if err := db.Where("email = ? AND unit_id = ? AND status = ? AND is_deleted = ?",
		reqData.Email, unit.ID, models.CollaboratorPending, false).First(&pending).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Registration already pending approval!", pending)
	}

	request := models.CollaboratorRequest{
		UnitID: unit.ID,
		Name:   reqData.Name,
		Email:  strings.ToLower(strings.TrimSpace(reqData.Email)),
		Phone:  reqData.Phone,
		Status: models.CollaboratorPending,
	}
	if err := db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register collaborator!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registration submitted for approval!", request)
}

// CollaboratorRequestPayload is the collaborator registration payload.
type CollaboratorRequestPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	UnitCode string `json:"unit_code" validate:"required"`
}

// ReviewCollaborator lets a franchisee approve or reject a pending
// registration for their unit. Approval provisions the collaborator account.
func ReviewCollaborator(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)

	reqData := new(struct {
		Approve bool   `json:"approve"`
		Reason  string `json:"reason"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var reviewer models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&reviewer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var request models.CollaboratorRequest
	if err := db.Where("id = ? AND status = ? AND is_deleted = ?", requestID, models.CollaboratorPending, false).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pending registration not found!", nil)
	}

	// Only the unit's franchisee or an admin may review.
	isAdmin := middleware.IsAdmin(db, userID)
	if !isAdmin {
		if reviewer.Role != models.RoleFranqueado || reviewer.UnitID == nil || *reviewer.UnitID != request.UnitID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You may only review registrations for your own unit!", nil)
		}
	}

	now := time.Now()
	request.ReviewedBy = &userID
	request.ReviewedAt = &now

	if !reqData.Approve {
		request.Status = models.CollaboratorRejected
		request.Reason = reqData.Reason
		db.Save(&request)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration rejected.", request)
	}

	password := utils.GeneratePassword(10)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user := models.User{
		Name:     request.Name,
		Email:    request.Email,
		Phone:    request.Phone,
		Role:     models.RoleAluno,
		Password: string(hashed),
		UnitID:   &request.UnitID,
	}
	if err := db.Create(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create collaborator account!", nil)
	}

	request.Status = models.CollaboratorApproved
	db.Save(&request)

	if user.Phone != "" {
		if err := utils.SendPasswordOverWhatsApp(user.Phone, user.Name, password); err != nil {
			log.Printf("[COLLABORATOR] WhatsApp password delivery failed for %s: %v", user.Email, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration approved and account created!", fiber.Map{
		"request": request,
		"user_id": user.ID,
	})
}

// ListPendingCollaborators lists pending registrations for the caller's
// unit (franchisees) or all units (admins).
func ListPendingCollaborators(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	query := db.Model(&models.CollaboratorRequest{}).
		Where("status = ? AND is_deleted = ?", models.CollaboratorPending, false)

	if !middleware.IsAdmin(db, userID) {
		var reviewer models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&reviewer).Error; err != nil || reviewer.UnitID == nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No unit associated with your account!", nil)
		}
		query = query.Where("unit_id = ?", *reviewer.UnitID)
	}

	var requests []models.CollaboratorRequest
	if err := query.Order("created_at asc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch registrations!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending registrations fetched successfully!", requests)
}
