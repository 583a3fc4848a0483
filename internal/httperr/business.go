package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// EligibilityError carrega o saldo restante observado no momento da
// recusa, para a mensagem ao cliente.
type EligibilityError struct {
	Code          string
	RemainingCuts int
}

func (e EligibilityError) Error() string {
	return e.Code
}

func ErrEligibility(code string, remaining int) error {
	return EligibilityError{Code: code, RemainingCuts: remaining}
}

func AsEligibility(err error) (EligibilityError, bool) {
	var ee EligibilityError
	if errors.As(err, &ee) {
		return ee, true
	}
	return EligibilityError{}, false
}
