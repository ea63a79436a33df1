package migration

import (
	"boaz/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.HousingUnitModel{},
		&models.SubscriptionModel{},
	}
}
