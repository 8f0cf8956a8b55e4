package hydration

import (
	"github.com/nexuite/sync-backend/internal/models"
	"github.com/nexuite/sync-backend/pkg/logger"
	"gorm.io/gorm"
)

// processUserCreation mirrors a client-created account. The password
// hash arrives pre-computed and is stored opaquely; events missing
// either field are ignored.
func processUserCreation(tx *gorm.DB, payload map[string]interface{}) {
	username, _ := payload["username"].(string)
	passwordHash, _ := payload["password_hash"].(string)
	if username == "" || passwordHash == "" {
		return
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		logger.Error("hydration_user_lookup_failed", err, map[string]interface{}{
			"username": username,
		})
		return
	}
	if count > 0 {
		return
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         models.DefaultUserRole,
	}
	if err := tx.Create(&user).Error; err != nil {
		logger.Error("hydration_user_insert_failed", err, map[string]interface{}{
			"username": username,
		})
		return
	}

	logger.Info("hydration_user_created", map[string]interface{}{
		"username": username,
	})
}
