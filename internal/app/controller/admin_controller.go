package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jshin/cookshare-backend/internal/errors"
	"github.com/jshin/cookshare-backend/internal/middleware"
	"github.com/jshin/cookshare-backend/internal/scheduler"
)

// AdminController exposes maintenance operations that are normally driven by
// the scheduler but occasionally need to run on demand.
type AdminController struct {
	retention *scheduler.RetentionScheduler
}

func NewAdminController(retention *scheduler.RetentionScheduler) *AdminController {
	return &AdminController{
		retention: retention,
	}
}

// PurgeDeletedRecipes runs the retention purge immediately
// POST /api/v1/admin/purge_deleted_recipes
func (ctrl *AdminController) PurgeDeletedRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	purged, err := ctrl.retention.PurgeDeletedRecipes()
	if err != nil {
		log.Error("Manual recipe purge failed", err, nil)
		apperrors.InternalError(c, "Failed to purge deleted recipes")
		return
	}

	log.Info("Manual recipe purge completed", map[string]interface{}{
		"purged": purged,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Purge completed",
		"purged":  purged,
	})
}
