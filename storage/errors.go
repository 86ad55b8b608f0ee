package storage

import "errors"

var ErrNotFound = errors.New("item not found in storage")
var ErrAlreadyExists = errors.New("item with the same key already exists")
var ErrUnprocessedItems = errors.New("batch write left items unprocessed")
