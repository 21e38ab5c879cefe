package serviceInfo

import (
	"gavin/api/contexts"
	serviceInfo "gavin/api/models/constants/service-info"

	"net/http"

	"github.com/labstack/echo"
)

// Spec: https://github.com/ga4gh-discovery/ga4gh-service-info
func GetServiceInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"type": map[string]interface{}{
			"artifact": serviceInfo.SERVICE_ARTIFACT,
			"group":    serviceInfo.SERVICE_TYPE_NO_VER,
			"version":  c.(*contexts.GavinContext).Config.SemVer,
		},
		"id":          serviceInfo.SERVICE_ID,
		"name":        serviceInfo.SERVICE_NAME,
		"description": serviceInfo.SERVICE_DESCRIPTION,
		"organization": map[string]string{
			"name": "MOLGENIS",
			"url":  "https://www.molgenis.org",
		},
		"contactUrl": c.(*contexts.GavinContext).Config.ServiceContact,
		"version":    c.(*contexts.GavinContext).Config.SemVer,
	})
}
