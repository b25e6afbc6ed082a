package httperr

import "errors"

// BusinessError carrega um código estável de falha de negócio.
// Famílias de código:
//   - *_not_found            -> entidade ausente
//   - invalid_state / *_in_use / combo_* -> operação não permitida no estado atual
//   - invalid_*              -> entrada malformada
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

// BusinessCode extrai o código quando err é um BusinessError.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
