package check_admission

import (
	"context"

	checkAdmission "github.com/m04kA/SMC-ReservationService/internal/usecase/check_admission"
)

type CheckAdmissionUseCase interface {
	Execute(ctx context.Context, req *checkAdmission.Request) (*checkAdmission.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
