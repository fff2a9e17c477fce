package pinata

import (
	"net/url"
	"strconv"
)

// SortDirection orders list results by date.
type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// PinJobsFilter narrows the records returned by PinJobs. The zero value
// matches everything and sends no query parameters.
type PinJobsFilter struct {
	Sort        SortDirection
	Status      JobStatus
	IPFSPinHash string
	Limit       *int
	Offset      *int
}

func (f PinJobsFilter) values() url.Values {
	v := url.Values{}
	if f.Sort != "" {
		v.Set("sort", string(f.Sort))
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.IPFSPinHash != "" {
		v.Set("ipfs_pin_hash", f.IPFSPinHash)
	}
	if f.Limit != nil {
		v.Set("limit", strconv.Itoa(*f.Limit))
	}
	if f.Offset != nil {
		v.Set("offset", strconv.Itoa(*f.Offset))
	}
	return v
}

// PinListStatus filters the pin list by pin state.
type PinListStatus string

const (
	PinListAll      PinListStatus = "all"
	PinListPinned   PinListStatus = "pinned"
	PinListUnpinned PinListStatus = "unpinned"
)

// PinListFilter narrows the records returned by PinList. The zero value
// matches everything and sends no query parameters. Date bounds are ISO8601
// timestamps.
type PinListFilter struct {
	HashContains string
	Status       PinListStatus
	PinStart     string
	PinEnd       string
	UnpinStart   string
	UnpinEnd     string
	PinSizeMin   *int64
	PinSizeMax   *int64
	PageLimit    *int
	PageOffset   *int
	MetadataName string
}

func (f PinListFilter) values() url.Values {
	v := url.Values{}
	if f.HashContains != "" {
		v.Set("hashContains", f.HashContains)
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.PinStart != "" {
		v.Set("pinStart", f.PinStart)
	}
	if f.PinEnd != "" {
		v.Set("pinEnd", f.PinEnd)
	}
	if f.UnpinStart != "" {
		v.Set("unpinStart", f.UnpinStart)
	}
	if f.UnpinEnd != "" {
		v.Set("unpinEnd", f.UnpinEnd)
	}
	if f.PinSizeMin != nil {
		v.Set("pinSizeMin", strconv.FormatInt(*f.PinSizeMin, 10))
	}
	if f.PinSizeMax != nil {
		v.Set("pinSizeMax", strconv.FormatInt(*f.PinSizeMax, 10))
	}
	if f.PageLimit != nil {
		v.Set("pageLimit", strconv.Itoa(*f.PageLimit))
	}
	if f.PageOffset != nil {
		v.Set("pageOffset", strconv.Itoa(*f.PageOffset))
	}
	if f.MetadataName != "" {
		v.Set("metadata[name]", f.MetadataName)
	}
	return v
}
