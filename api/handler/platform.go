package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"

	"github.com/gamegeeks/gamegeeks/models/platform"
)

type listPlatformsIn struct {
	PageSize uint64  `query:"page_size"`
	Last     *string `query:"last"`
}

// ListPlatforms returns a page of platforms ordered by id.
// When the page is full, a link header points to the next one.
func ListPlatforms(c *gin.Context, in *listPlatformsIn) ([]*platform.Platform, error) {
	store, err := storeFromContext(c)
	if err != nil {
		return nil, err
	}

	if in.Last != nil {
		if err := platform.ValidID(*in.Last); err != nil {
			return nil, err
		}
	}
	in.PageSize = normalizePageSize(in.PageSize)

	pp, err := store.List(in.PageSize, in.Last)
	if err != nil {
		return nil, err
	}

	c.Header(pageSizeHeader, strconv.FormatUint(in.PageSize, 10))
	if uint64(len(pp)) == in.PageSize {
		c.Header(linkHeader, buildPlatformNextLink(in.PageSize, pp[len(pp)-1].ID))
	}
	return pp, nil
}

type getPlatformIn struct {
	ID string `path:"id" validate:"required"`
}

// GetPlatform returns a single platform
func GetPlatform(c *gin.Context, in *getPlatformIn) (*platform.Platform, error) {
	store, err := storeFromContext(c)
	if err != nil {
		return nil, err
	}
	if platform.ValidID(in.ID) != nil {
		return nil, errors.NotFoundf("No such platform: %s", in.ID)
	}
	return store.Load(in.ID)
}

type createPlatformIn struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// CreatePlatform registers a new platform. Names are unique, regardless of case.
func CreatePlatform(c *gin.Context, in *createPlatformIn) (*platform.Platform, error) {
	store, err := storeFromContext(c)
	if err != nil {
		return nil, err
	}
	return store.Create(in.Name, in.Description)
}

type updatePlatformIn struct {
	ID          string `path:"id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// UpdatePlatform replaces the name and description of a platform
func UpdatePlatform(c *gin.Context, in *updatePlatformIn) (*platform.Platform, error) {
	store, err := storeFromContext(c)
	if err != nil {
		return nil, err
	}
	if platform.ValidID(in.ID) != nil {
		return nil, errors.NotFoundf("No such platform: %s", in.ID)
	}

	p, err := store.Load(in.ID)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Description = in.Description

	if err := store.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

type deletePlatformIn struct {
	ID string `path:"id" validate:"required"`
}

// DeletePlatform removes a platform
func DeletePlatform(c *gin.Context, in *deletePlatformIn) error {
	store, err := storeFromContext(c)
	if err != nil {
		return err
	}
	if platform.ValidID(in.ID) != nil {
		return errors.NotFoundf("No such platform: %s", in.ID)
	}
	return store.Delete(in.ID)
}
