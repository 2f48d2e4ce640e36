package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goto/siphon/domain"
	"github.com/goto/siphon/jobs/mocks"
	"github.com/goto/siphon/pkg/log"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransferEntitiesTestSuite struct {
	suite.Suite
	transferService *mocks.TransferService
	catalogService  *mocks.CatalogService
	handler         *handler
}

func (s *TransferEntitiesTestSuite) SetupTest() {
	s.transferService = new(mocks.TransferService)
	s.catalogService = new(mocks.CatalogService)
	s.handler = NewHandler(log.NewNoop(), s.transferService, s.catalogService)
	s.handler.now = func() time.Time { return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC) }
}

func (s *TransferEntitiesTestSuite) TearDownTest() {
	s.transferService.AssertExpectations(s.T())
	s.catalogService.AssertExpectations(s.T())
}

func (s *TransferEntitiesTestSuite) TestConfiguredEntities() {
	expectedStart := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	expectedEnd := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	s.transferService.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(req domain.TransferRequest) bool {
			return req.ApiName == "d365" && req.EndpointName == "customers" &&
				req.StartDate.Equal(expectedStart) && req.EndDate.Equal(expectedEnd) && req.MaxRecords == 50
		}), mock.Anything).
		Return(&domain.TransferResult{Written: 3}, nil).Once()

	err := s.handler.TransferEntities(context.Background(), Config{
		"entities":      []interface{}{"d365/customers"},
		"lookback_days": 2,
		"max_records":   50,
	})

	s.NoError(err)
}

func (s *TransferEntitiesTestSuite) TestAllEndpointsKeepGoingOnFailure() {
	s.catalogService.EXPECT().ListApis().Return([]*domain.ApiDefinition{
		{Name: "d365", Endpoints: []*domain.ApiEndpoint{{Name: "customers"}, {Name: "prices"}}},
		{Name: "pom", Endpoints: []*domain.ApiEndpoint{{Name: "orders"}}},
	}).Once()

	expectedStart := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	s.transferService.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(req domain.TransferRequest) bool {
			return req.EndpointName == "customers" && req.StartDate.Equal(expectedStart)
		}), mock.Anything).
		Return(&domain.TransferResult{}, nil).Once()
	s.transferService.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(req domain.TransferRequest) bool { return req.EndpointName == "prices" }), mock.Anything).
		Return(nil, domain.ErrTransport).Once()
	s.transferService.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(req domain.TransferRequest) bool { return req.EndpointName == "orders" }), mock.Anything).
		Return(&domain.TransferResult{}, nil).Once()

	err := s.handler.TransferEntities(context.Background(), nil)

	s.ErrorIs(err, domain.ErrTransport)
	s.ErrorContains(err, "d365/prices")
}

func (s *TransferEntitiesTestSuite) TestInvalidEntityKey() {
	s.transferService.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(req domain.TransferRequest) bool { return req.ApiName == "pom" }), mock.Anything).
		Return(&domain.TransferResult{}, nil).Once()

	err := s.handler.TransferEntities(context.Background(), Config{
		"entities": []interface{}{"no-separator", "pom/orders"},
	})

	s.ErrorIs(err, domain.ErrConfiguration)
	s.ErrorContains(err, "no-separator")
}

func (s *TransferEntitiesTestSuite) TestInvalidConfig() {
	err := s.handler.TransferEntities(context.Background(), Config{"lookback_days": "yesterday"})

	s.True(errors.Is(err, domain.ErrConfiguration))
}

func TestTransferEntities(t *testing.T) {
	suite.Run(t, new(TransferEntitiesTestSuite))
}
