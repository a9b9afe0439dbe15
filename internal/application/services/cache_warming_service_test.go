package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chandrabs25/Andaman-travel-website/internal/application/services"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

func TestCacheWarmingService_ReadsEveryCatalogList(t *testing.T) {
	islands := new(MockIslandRepository)
	serviceRepo := new(MockServiceRepository)
	packages := new(MockPackageRepository)

	islands.On("ListIslands", mock.Anything).Return([]*entities.Island{{ID: 1}, {ID: 2}}, nil)
	islands.On("GetIslandByID", mock.Anything, mock.AnythingOfType("int64")).Return(&entities.Island{}, nil)
	serviceRepo.On("GetServicesByIsland", mock.Anything, mock.AnythingOfType("int64")).Return([]*entities.Service{}, nil)
	serviceRepo.On("ListServices", mock.Anything).Return([]*entities.Service{}, nil)
	packages.On("ListActivePackages", mock.Anything).Return(nil, errors.New("cache down"))

	svc := services.NewCacheWarmingService(islands, serviceRepo, packages)

	assert.NoError(t, svc.WarmCache(context.Background()))
	islands.AssertNumberOfCalls(t, "GetIslandByID", 2)
	serviceRepo.AssertNumberOfCalls(t, "GetServicesByIsland", 2)
	serviceRepo.AssertCalled(t, "ListServices", mock.Anything)
}
