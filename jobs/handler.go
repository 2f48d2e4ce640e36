package jobs

import (
	"context"
	"time"

	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/pkg/log"
)

type Type string

const (
	TransferEntities Type = "transfer_entities"
)

// Config is the free-form config of a single job, decoded by the job itself
type Config map[string]interface{}

// JobConfig is the entry of a job in the config file
type JobConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Schedule is a standard five field cron expression or a descriptor such as @daily
	Schedule string `mapstructure:"schedule"`
	Config   Config `mapstructure:"config"`
}

//go:generate mockery --name=transferService --exported --with-expecter
type transferService interface {
	Run(context.Context, domain.TransferRequest, domain.ProgressFunc) (*domain.TransferResult, error)
}

//go:generate mockery --name=catalogService --exported --with-expecter
type catalogService interface {
	ListApis() []*domain.ApiDefinition
}

type handler struct {
	logger          log.Logger
	transferService transferService
	catalogService  catalogService
	now             func() time.Time
}

func NewHandler(
	logger log.Logger,
	transferService transferService,
	catalogService catalogService,
) *handler {
	return &handler{
		logger:          logger,
		transferService: transferService,
		catalogService:  catalogService,
		now:             time.Now,
	}
}

// Jobs maps every job type to its entry point
func (h *handler) Jobs() map[Type]func(context.Context, Config) error {
	return map[Type]func(context.Context, Config) error{
		TransferEntities: h.TransferEntities,
	}
}
