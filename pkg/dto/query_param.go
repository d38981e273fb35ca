package dto

type Filter struct {
	Limit     int    `query:"limit"`
	Page      int    `query:"page"`
	Keyword   string `query:"keyword"`
	Condition string `query:"condition"`
	ModelName string `query:"model"`
}

const (
	DefaultLimit = 12
	MaxLimit     = 100
)

// Normalize fills in the first page and the given page size when unset. A
// limit above MaxLimit also falls back to the page size.
func (f *Filter) Normalize(defaultLimit int) {
	if defaultLimit < 1 || defaultLimit > MaxLimit {
		defaultLimit = DefaultLimit
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > MaxLimit {
		f.Limit = defaultLimit
	}
}

func (f Filter) Skip() int64 {
	return int64(f.Page-1) * int64(f.Limit)
}
