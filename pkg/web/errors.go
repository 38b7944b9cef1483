package web

import "errors"

var (
	ErrTemplateNotFound = errors.New("web: template not found")
	ErrNoTemplates      = errors.New("web: no templates matched")
)
