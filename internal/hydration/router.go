package hydration

import (
	"fmt"

	"github.com/nexuite/sync-backend/pkg/logger"
	"gorm.io/gorm"
)

// Action types understood by the hydration pipeline. They are emitted
// by the desktop client and must not be renamed.
const (
	ActionCreateUser       = "CREAR_USUARIO"
	ActionCreateReference  = "CREAR_REFERENCIA"
	ActionRegisterPurchase = "REGISTRAR_COMPRA"
)

// Dispatch routes a decoded audit payload to the processor for its
// action type. Unknown actions are ignored so newer clients can emit
// action types this server does not understand yet.
//
// Dispatch never propagates a failure: hydration is a best-effort
// projection of the audit log, and a broken payload must not take the
// audit record (or the rest of the batch) down with it. Processor
// failures end up in the log, nowhere else.
func Dispatch(tx *gorm.DB, action string, payload map[string]interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("hydration_panic", fmt.Errorf("%v", r), map[string]interface{}{
				"action_type": action,
			})
		}
	}()

	switch action {
	case ActionCreateUser:
		processUserCreation(tx, payload)
	case ActionCreateReference:
		processReferenceCreation(tx, payload)
	case ActionRegisterPurchase:
		processPurchase(tx, payload)
	}
}
