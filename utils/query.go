package utils

import (
	"errors"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

func ParseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Pagination clamps page and limit query values and returns the skip count.
func Pagination(pageStr, limitStr string, defaultLimit, maxLimit int) (page, limit int, skip int64) {
	page = ParseIntDefault(pageStr, 1)
	limit = ParseIntDefault(limitStr, defaultLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, int64((page - 1) * limit)
}

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == 11000 || e.Code == 11001 {
				return true
			}
		}
	}

	return strings.Contains(err.Error(), "E11000 duplicate key error")
}
