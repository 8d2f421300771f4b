package filter

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
)

// storageNamespace prefixes every persisted filter key, mirroring the single
// namespaced local-storage key the web client used.
const storageNamespace = "talentbrains.filters"

// Save upserts the filter state for (user, kind). The payload is the
// serialized filter object, versionless.
func Save(db *gorm.DB, userID uuid.UUID, kind string, state interface{}) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	row := model.SavedFilter{
		UserID:    userID,
		Kind:      kind,
		Key:       storageNamespace + "." + kind,
		Payload:   datatypes.JSON(raw),
		UpdatedAt: time.Now(),
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}

// Load reads the saved filter state for (user, kind) into out.
// It reports whether a saved state existed; when none does, out is left at
// its defaults.
func Load(db *gorm.DB, userID uuid.UUID, kind string, out interface{}) (bool, error) {
	var row model.SavedFilter
	err := db.Where("user_id = ? AND kind = ?", userID, kind).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(row.Payload, out); err != nil {
		return false, err
	}
	return true, nil
}
