package initializers

import (
	"site-qhse-backend/config"
	"site-qhse-backend/fiberlog"
	authhandler "site-qhse-backend/lib/auth"
	inspectionhandler "site-qhse-backend/lib/inspection"
	manpowerhandler "site-qhse-backend/lib/manpower"
	"site-qhse-backend/lib/permissions"
	ptwhandler "site-qhse-backend/lib/ptw"
	safetyobservationhandler "site-qhse-backend/lib/safety-observation"
	tbthandler "site-qhse-backend/lib/tbt"
	workerhandler "site-qhse-backend/lib/worker"
	worksitehandler "site-qhse-backend/lib/worksite"
	worksiteroles "site-qhse-backend/lib/worksite/roles"
)

var LoggerConfig *fiberlog.Config

func InitAllServices() {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	InitS3()
	InitSmtp()
	authhandler.NewHandler()
	permissions.NewHandler()
	worksitehandler.NewHandler()
	worksiteroles.NewHandler()
	inspectionhandler.NewHandler()
	ptwhandler.NewHandler()
	safetyobservationhandler.NewHandler()
	manpowerhandler.NewHandler()
	tbthandler.NewHandler()
	workerhandler.NewHandler()
}
