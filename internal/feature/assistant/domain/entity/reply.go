package entity

import "tickertalk/internal/shared/figure"

// Reply is the rendered outcome of one question.
//
// Exactly one of Data, Error, Chart or Message carries the result:
// Data holds the structure dump (quote, profile, news, analyst), Error the failure message of a
// gateway call, Chart the line figure, and Message a plain notice such as the prompt to ask again.
type Reply struct {
	Action  ActionName     `json:"action,omitempty"`
	Title   string         `json:"title,omitempty"`
	Data    any            `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Chart   *figure.Figure `json:"chart,omitempty"`
	Message string         `json:"message,omitempty"`
}
