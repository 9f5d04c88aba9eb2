package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/bridgescan/bridgenode/internal/db"
)

const maxPageSize = 100

// PaginatedResponse holds the common pagination fields.
type PaginatedResponse[T any] struct {
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Total    int     `json:"total"`
	Prev     *string `json:"prev"`
	Next     *string `json:"next"`
	Data     []*T    `json:"data"`
}

// ReturnPaginatedData populates the total count and constructs absolute URLs
// for prev and next based on the request's scheme, host, and path.
func (p *PaginatedResponse[T]) ReturnPaginatedData(r *http.Request, total int) {
	p.Total = total

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	baseURL := fmt.Sprintf("%s://%s%s", scheme, r.Host, r.URL.Path)

	// keep filters other than paging on the generated links
	query := r.URL.Query()
	query.Del("page")
	query.Del("page_size")
	extra := ""
	if encoded := query.Encode(); encoded != "" {
		extra = "&" + encoded
	}

	if p.Page > 1 {
		prev := fmt.Sprintf("%s?page=%d&page_size=%d%s", baseURL, p.Page-1, p.PageSize, extra)
		p.Prev = &prev
	} else {
		p.Prev = nil
	}

	offsetEnd := (p.Page-1)*p.PageSize + p.PageSize
	if offsetEnd < total {
		next := fmt.Sprintf("%s?page=%d&page_size=%d%s", baseURL, p.Page+1, p.PageSize, extra)
		p.Next = &next
	} else {
		p.Next = nil
	}
}

// ExtractPagination reads the page and page_size from the query string
// and returns them with default fallbacks if they are missing or invalid.
func ExtractPagination(r *http.Request) (int, int, error) {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		pageStr = "1"
	}
	pageSizeStr := r.URL.Query().Get("page_size")
	if pageSizeStr == "" {
		pageSizeStr = "10"
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize, err
}

// ExtractDirection reads "order" (asc|desc); anything else falls back to desc.
func ExtractDirection(r *http.Request) db.QueryDirection {
	if strings.EqualFold(r.URL.Query().Get("order"), "asc") {
		return db.QueryDirectionAsc
	}
	return db.QueryDirectionDesc
}

func PaginatedQueryHandler[T any](
	r *http.Request,
	rq db.QueryRunner,
	querier db.PaginatedQuerier[T],
	query string,
	queryParams []interface{},
) (PaginatedResponse[T], error) {
	page, pageSize, _ := ExtractPagination(r)
	queryOptions := db.QueryOptions{
		Where:     query,
		PageSize:  pageSize,
		Page:      page,
		Direction: ExtractDirection(r),
	}

	total, data, err := querier.GetPaginatedResponseForQuery(rq, queryOptions, queryParams)
	if err != nil {
		return PaginatedResponse[T]{}, err
	}

	resp := PaginatedResponse[T]{
		Page:     page,
		PageSize: pageSize,
		Data:     data,
	}
	resp.ReturnPaginatedData(r, total)
	return resp, nil
}
