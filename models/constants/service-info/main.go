package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "Gavin Run Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the Gavin variant filtering API!"
	SERVICE_DESCRIPTION ServiceInfo = "Upload, filtering and run tracking for genomic variant files."

	SERVICE_ARTIFACT    ServiceInfo = "gavin"
	SERVICE_VERSION     ServiceInfo = "0.0.1"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.molgenis:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
