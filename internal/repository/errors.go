package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// 一意制約違反（同じ行がすでにある）
	ErrDuplicate = errors.New("duplicate")
)
