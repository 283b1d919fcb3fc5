package leavetypeerrors

import (
	"net/http"

	"github.com/logfretaulnay/hr-zen/internal/shared/apperror"
)

var (
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrNegativeMaxDays = apperror.New(
		apperror.CodeInvalidInput,
		"max_days_per_year cannot be negative",
		http.StatusBadRequest,
	)
)
