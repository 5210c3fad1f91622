// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package news

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page      int  `json:"page"`
	Limit     int  `json:"limit"`
	Total     int  `json:"total"`
	PageCount int  `json:"pageCount"`
	HasNext   bool `json:"hasNext"`
}

// NewPageMeta computes pagination metadata. pageCount is ceil(total/limit),
// zero when the result set is empty; hasNext is page < pageCount.
func NewPageMeta(page, limit, total int) PageMeta {
	pageCount := 0
	if total > 0 {
		pageCount = (total + limit - 1) / limit
	}
	return PageMeta{
		Page:      page,
		Limit:     limit,
		Total:     total,
		PageCount: pageCount,
		HasNext:   page < pageCount,
	}
}
