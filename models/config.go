package models

type Config struct {
	Debug          bool   `yaml:"debug" envconfig:"GAVIN_DEBUG"`
	SemVer         string `yaml:"semVer" envconfig:"GAVIN_SEMVER"`
	ServiceContact string `yaml:"serviceContact" envconfig:"GAVIN_SERVICE_CONTACT"`

	Api struct {
		Url            string `yaml:"url" envconfig:"GAVIN_API_URL"`
		Port           string `yaml:"port" envconfig:"GAVIN_API_INTERNAL_PORT"`
		RepositoryKind string `yaml:"repositoryKind" envconfig:"GAVIN_API_REPOSITORY_KIND" default:"memory"`
	} `yaml:"api"`

	Storage struct {
		Kind string `yaml:"kind" envconfig:"GAVIN_STORAGE_KIND" default:"local"`
		Path string `yaml:"path" envconfig:"GAVIN_STORAGE_PATH" default:"/data/gavin/files"`
	} `yaml:"storage"`

	Elasticsearch struct {
		Url      string `yaml:"url" envconfig:"GAVIN_ES_URL"`
		Username string `yaml:"username" envconfig:"GAVIN_ES_USERNAME"`
		Password string `yaml:"password" envconfig:"GAVIN_ES_PASSWORD"`
	} `yaml:"elasticsearch"`

	Drs struct {
		Url      string `yaml:"url" envconfig:"GAVIN_DRS_URL"`
		Username string `yaml:"username" envconfig:"GAVIN_DRS_BASIC_AUTH_USERNAME"`
		Password string `yaml:"password" envconfig:"GAVIN_DRS_BASIC_AUTH_PASSWORD"`
	} `yaml:"drs"`

	ObjectStore struct {
		Endpoint  string `yaml:"endpoint" envconfig:"GAVIN_OBJECT_STORE_ENDPOINT"`
		AccessKey string `yaml:"accessKey" envconfig:"GAVIN_OBJECT_STORE_ACCESS_KEY"`
		SecretKey string `yaml:"secretKey" envconfig:"GAVIN_OBJECT_STORE_SECRET_KEY"`
		Bucket    string `yaml:"bucket" envconfig:"GAVIN_OBJECT_STORE_BUCKET" default:"gavin-runs"`
		UseSSL    bool   `yaml:"useSsl" envconfig:"GAVIN_OBJECT_STORE_USE_SSL"`
	} `yaml:"objectStore"`

	Cleanup struct {
		RetentionHours       int `yaml:"retentionHours" envconfig:"GAVIN_CLEANUP_RETENTION_HOURS" default:"24"`
		SweepIntervalMinutes int `yaml:"sweepIntervalMinutes" envconfig:"GAVIN_CLEANUP_SWEEP_INTERVAL_MINUTES" default:"5"`
	} `yaml:"cleanup"`
}
