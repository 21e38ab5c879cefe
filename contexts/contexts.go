package contexts

import (
	"gavin/api/models"
	"gavin/api/services/ingestion"
	runsService "gavin/api/services/runs"
	"gavin/api/services/storage"

	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  the configuration and global service singletons
	GavinContext struct {
		echo.Context
		Config           *models.Config
		IngestionService *ingestion.IngestionService
		RunService       *runsService.RunService
		FileStore        storage.FileStore
	}
)
