package repository

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageWindow normalises page/size into LIMIT and OFFSET values.
func pageWindow(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxPageSize {
		size = defaultPageSize
	}
	return size, (page - 1) * size
}
