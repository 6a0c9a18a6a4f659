package integration

import (
	"sync"

	"NYCU-SDC/photo-survey-backend/test/testdata/setup"

	"go.uber.org/zap"
)

var (
	initOnce        sync.Once
	resourceManager *setup.ResourceManager
	logger          *zap.Logger
	initErr         error
)

// GetOrInitResource returns the resource manager shared by every integration
// package in this test binary. Containers are started lazily by the
// manager's Setup methods, not here.
func GetOrInitResource() (*setup.ResourceManager, *zap.Logger, error) {
	initOnce.Do(func() {
		logger, initErr = setup.NewTestLogger()
		if initErr != nil {
			return
		}

		resourceManager, initErr = setup.NewResourceManager(logger)
	})

	return resourceManager, logger, initErr
}
