// Package repository translates between stored rows and API records and
// enforces the referential checks between clinics, doctors and queues.
// Every write runs in its own transaction; reads go straight to the pool.
package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"gorm.io/gorm"
)

// Clock returns the current time. Repositories that stamp timestamps take one
// so tests can pin it.
type Clock func() time.Time

func nowOr(c Clock) time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

func timestamp(c Clock) string {
	return nowOr(c).Format(models.TimestampLayout)
}

// translate maps gorm's not-found onto apperr.NotFound and leaves other
// errors untouched.
func translate(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format, args...)
	}
	return err
}

// nextSequentialID returns prefix followed by one more than the largest
// numeric suffix already used in model's table, zero-padded to three digits.
func nextSequentialID(tx *gorm.DB, model any, prefix string) (string, error) {
	var ids []string
	if err := tx.Model(model).Where("id LIKE ?", prefix+"%").Pluck("id", &ids).Error; err != nil {
		return "", fmt.Errorf("scan %s ids: %w", strings.TrimSuffix(prefix, "-"), err)
	}
	last := 0
	for _, id := range ids {
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err == nil && n > last {
			last = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, last+1), nil
}
