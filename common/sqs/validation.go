package sqs

import "github.com/pkg/errors"

var ErrEventTooLong = errors.New("event body exceeds the queue limit")

func validateEventBody(body string) error {
	if len(body) > MaxEventBodySize {
		return ErrEventTooLong
	}
	return nil
}
