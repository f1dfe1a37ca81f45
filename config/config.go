package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/libtrack/borrowing-service/pkg/kafka"
	"github.com/libtrack/borrowing-service/pkg/logger"
	"github.com/libtrack/borrowing-service/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"BORROWING_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"BORROWING_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration
}

type MemberHTTPServer struct {
	Host string `envconfig:"MEMBER_HTTP_HOST" default:"localhost"`
	Port string `envconfig:"MEMBER_HTTP_PORT" default:"8061"`
}

type CatalogHTTPServer struct {
	Host string `envconfig:"CATALOG_HTTP_HOST" default:"localhost"`
	Port string `envconfig:"CATALOG_HTTP_PORT" default:"8062"`
}

// Borrowing holds the lending policy knobs. Defaults follow the standard
// library rules; deployments override them through the environment.
type Borrowing struct {
	LoanTermDays               int  `yaml:"loanTermDays" envconfig:"LOAN_TERM_DAYS" default:"14"`
	MaxActiveLoans             int  `yaml:"maxActiveLoans" envconfig:"MAX_ACTIVE_LOANS" default:"5"`
	ReturnRestrictedToBorrower bool `yaml:"returnRestrictedToBorrower" envconfig:"RETURN_RESTRICTED_TO_BORROWER" default:"true"`
}

type Config struct {
	Server            HTTPServer   `yaml:"server"`
	Database          postgres.DB  `yaml:"db"`
	Kafka             kafka.Config `yaml:"kafka"`
	Borrowing         Borrowing    `yaml:"borrowing"`
	MemberHTTPServer  MemberHTTPServer
	CatalogHTTPServer CatalogHTTPServer
	Log               logger.Log `yaml:"log"`
	// Standalone keeps everything in process memory: no Postgres, no Kafka.
	// Handy for demos and local runs.
	Standalone bool `yaml:"standalone" envconfig:"STANDALONE"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
