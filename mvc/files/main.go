package files

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gavin/api/contexts"
	dtoErrors "gavin/api/models/dtos/errors"
	"gavin/api/services/storage"

	"github.com/labstack/echo"
)

// Download streams a stored blob by its id, without going through a run.
func Download(c echo.Context) error {
	fmt.Printf("[%s] - Download hit!\n", time.Now())
	gc := c.(*contexts.GavinContext)

	fileId := c.Param("id")
	if fileId == "" {
		return c.JSON(http.StatusBadRequest,
			dtoErrors.CreateSimpleBadRequest("Missing file id!"))
	}

	blob, err := gc.FileStore.Open(fileId)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return c.JSON(http.StatusNotFound,
				dtoErrors.CreateSimpleNotFound("No file with that id was found!"))
		}
		return c.JSON(http.StatusInternalServerError,
			dtoErrors.CreateSimpleInternalServerError("The stored file could not be opened!"))
	}
	defer blob.Close()

	return c.Stream(http.StatusOK, "application/octet-stream", blob)
}
