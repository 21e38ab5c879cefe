package main

import (
	"gavin/api/contexts"
	gam "gavin/api/middleware"
	"gavin/api/models"
	serviceInfo "gavin/api/models/constants/service-info"
	"gavin/api/mvc/files"
	"gavin/api/mvc/runs"
	serviceInfoMvc "gavin/api/mvc/service-info"
	"gavin/api/repositories"
	esRepository "gavin/api/repositories/elasticsearch"
	memoryRepository "gavin/api/repositories/memory"
	"gavin/api/services/cleanup"
	"gavin/api/services/ingestion"
	runsService "gavin/api/services/runs"
	"gavin/api/services/storage"
	drsStore "gavin/api/services/storage/drs"
	localStore "gavin/api/services/storage/local"
	objectStore "gavin/api/services/storage/objectstore"
	"gavin/api/utils"
	"time"

	"fmt"
	"net/http"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Printf("Using : \n"+

		"\tDebug : %t \n\n"+

		"\tRun Repository Kind : %s \n"+
		"\tElasticsearch Url : %s \n"+
		"\tElasticsearch Username : %s\n\n"+

		"\tFile Storage Kind : %s\n"+
		"\tLocal Storage Path : %s\n"+
		"\tDRS Url : %s\n"+
		"\tDRS Username : %s\n"+
		"\tObject Store Endpoint : %s\n"+
		"\tObject Store Bucket : %s\n\n"+

		"\tRun Retention : %d hours\n"+
		"\tSweep Interval : %d minutes\n\n"+

		"Running on Port : %s\n",

		cfg.Debug,
		cfg.Api.RepositoryKind,
		cfg.Elasticsearch.Url, cfg.Elasticsearch.Username,
		cfg.Storage.Kind,
		cfg.Storage.Path,
		cfg.Drs.Url, cfg.Drs.Username,
		cfg.ObjectStore.Endpoint, cfg.ObjectStore.Bucket,
		cfg.Cleanup.RetentionHours,
		cfg.Cleanup.SweepIntervalMinutes,
		cfg.Api.Port)
	// --

	// Instantiate Server
	e := echo.New()

	// Service Connections:
	// -- Run Repository
	var repository repositories.RunRepository
	switch cfg.Api.RepositoryKind {
	case "elasticsearch":
		es := utils.CreateEsConnection(cfg.Elasticsearch.Url, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		repository = esRepository.NewRunRepository(es)
	case "memory":
		repository = memoryRepository.NewRunRepository()
	default:
		fmt.Printf("Unknown run repository kind '%s'\n", cfg.Api.RepositoryKind)
		os.Exit(2)
	}

	// -- File Storage
	var fileStore storage.FileStore
	switch cfg.Storage.Kind {
	case "drs":
		fileStore = drsStore.NewFileStore(cfg.Drs.Url, cfg.Drs.Username, cfg.Drs.Password)
	case "objectstore":
		fileStore, err = objectStore.NewFileStore(&cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	case "local":
		fileStore, err = localStore.NewFileStore(cfg.Storage.Path)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	default:
		fmt.Printf("Unknown file storage kind '%s'\n", cfg.Storage.Kind)
		os.Exit(2)
	}

	// Service Singletons
	rs := runsService.NewRunService(repository)
	iz := ingestion.NewIngestionService(fileStore, rs)
	cs := cleanup.NewCleanupService(rs, fileStore, time.Duration(cfg.Cleanup.RetentionHours)*time.Hour)
	cs.Init(time.Duration(cfg.Cleanup.SweepIntervalMinutes) * time.Minute)

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with "custom Gavin" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.GavinContext{
				Context:          c,
				Config:           &cfg,
				IngestionService: iz,
				RunService:       rs,
				FileStore:        fileStore,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		fmt.Printf("[%s] - Root hit!\n", time.Now())
		return c.JSON(http.StatusOK, serviceInfo.SERVICE_WELCOME)
	})

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Runs
	e.POST("/runs/upload", runs.Upload)
	e.GET("/runs/:id", runs.GetRun,
		// middleware
		gam.MandateRunIdAttribute)
	e.POST("/runs/:id/start", runs.Start,
		// middleware
		gam.MandateRunIdAttribute)
	e.POST("/runs/:id/finish", runs.Finish,
		// middleware
		gam.MandateRunIdAttribute)
	e.POST("/runs/:id/fail", runs.Fail,
		// middleware
		gam.MandateRunIdAttribute)

	e.GET("/runs/:id/download/output", runs.DownloadOutputFile,
		// middleware
		gam.MandateRunIdAttribute)
	e.GET("/runs/:id/download/input", runs.DownloadInputFile,
		// middleware
		gam.MandateRunIdAttribute)
	e.GET("/runs/:id/download/error", runs.DownloadErrorFile,
		// middleware
		gam.MandateRunIdAttribute)

	// -- Files
	e.GET("/files/:id", files.Download)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}
