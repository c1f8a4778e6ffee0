package credstore

import "errors"

var ErrStorage = errors.New("credential storage failure")
