package handler

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"

	"github.com/gamegeeks/gamegeeks"
	"github.com/gamegeeks/gamegeeks/models/platform"
)

// StoreCtxKey is the key under which the platform store is injected in the gin context
const StoreCtxKey = "__platform_store_key"

const (
	pageSizeHeader = "X-Paging-PageSize"
	linkHeader     = "link"
)

func storeFromContext(c *gin.Context) (platform.Store, error) {
	v, ok := c.Get(StoreCtxKey)
	if !ok {
		return nil, errors.New("no platform store in context")
	}
	store, ok := v.(platform.Store)
	if !ok {
		return nil, errors.Errorf("unexpected platform store type %T", v)
	}
	return store, nil
}

func buildPlatformNextLink(pageSize uint64, last string) string {
	values := &url.Values{}
	values.Add("page_size", strconv.FormatUint(pageSize, 10))
	values.Add("last", last)
	return buildLink("next", "/v1/platforms", values.Encode())
}

func buildLink(label, path, query string) string {
	u := &url.URL{
		Path:     path,
		RawQuery: query,
	}
	return fmt.Sprintf("<%s>; rel=%s", u.String(), label)
}

func normalizePageSize(pageSize uint64) uint64 {
	switch {
	case pageSize == 0:
		return gamegeeks.DefaultPageSize
	case pageSize < gamegeeks.MinPageSize:
		return gamegeeks.MinPageSize
	case pageSize > gamegeeks.MaxPageSize:
		return gamegeeks.MaxPageSize
	}
	return pageSize
}
