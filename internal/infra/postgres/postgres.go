// Package postgres holds the gorm-backed stores for the domain services.
package postgres

import (
	"errors"

	"gorm.io/gorm"
)

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
