package models

// Page is the paginated list envelope returned by every list endpoint
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}

// NewPage builds the envelope for one slice of a larger result.
func NewPage[T any](content []T, total int64, number, size int) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        number,
		Size:          size,
		First:         number == 0,
		Last:          number >= totalPages-1,
		Empty:         len(content) == 0,
	}
}

// Paginate slices items into the requested page. Pages past the end are
// empty.
func Paginate[T any](items []T, number, size int) Page[T] {
	total := int64(len(items))
	start := len(items)
	if size > 0 && number >= 0 && number <= len(items)/size {
		start = number * size
	}
	end := len(items)
	if size > 0 && size < end-start {
		end = start + size
	}
	return NewPage(append([]T(nil), items[start:end]...), total, number, size)
}
