package commit_reservation

import (
	"context"

	commitReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/commit_reservation"
)

type CommitReservationUseCase interface {
	Execute(ctx context.Context, req *commitReservation.Request) (*commitReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
