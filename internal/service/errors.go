package service

import "errors"

var (
	ErrNotLoggedIn         = errors.New("not logged in")
	ErrInvalidIdentity     = errors.New("identity needs an email and a staff id")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
