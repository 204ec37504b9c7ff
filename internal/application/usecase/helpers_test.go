package usecase_test

import (
	"context"
	"time"

	"github.com/bnema/dragkit/internal/logging"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}
